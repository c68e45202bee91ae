// Package phone validates and normalizes Tanzanian mobile numbers for debtor
// contact info.
package phone

import (
	"regexp"
	"strings"
)

// Tanzanian mobile numbers start with 6, 7 or 8 after the country code or
// leading zero and carry 9 significant digits.
// Accepted forms: 07XXXXXXXX, +2557XXXXXXXX, 2557XXXXXXXX, 7XXXXXXXX.
var tzMobile = regexp.MustCompile(`^(?:\+255|0|255)?(6|7|8)\d{8}$`)

var stripChars = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Valid reports whether input looks like a Tanzanian mobile number.
func Valid(input string) bool {
	return tzMobile.MatchString(strings.TrimSpace(input))
}

// Normalize rewrites a Tanzanian mobile number to +255 form. Inputs it cannot
// interpret are returned trimmed of separators but otherwise unchanged.
func Normalize(input string) string {
	if input == "" {
		return input
	}
	s := stripChars.Replace(strings.TrimSpace(input))
	switch {
	case strings.HasPrefix(s, "0"):
		s = "+255" + s[1:]
	case strings.HasPrefix(s, "+255"):
		// already normalized
	case strings.HasPrefix(s, "255"):
		s = "+255" + s[3:]
	case len(s) == 9:
		s = "+255" + s
	}
	return s
}
