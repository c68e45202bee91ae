package phone

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0712345678", true},
		{"+255712345678", true},
		{"255712345678", true},
		{"712345678", true},
		{"0612345678", true},
		{"0812345678", true},
		{"0512345678", false}, // unknown prefix
		{"07123", false},
		{"071234567890", false},
		{"", false},
		{"notanumber", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.in); got != tc.ok {
			t.Fatalf("Valid(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0712345678", "+255712345678"},
		{"255712345678", "+255712345678"},
		{"+255712345678", "+255712345678"},
		{"712345678", "+255712345678"},
		{"071 234-5678", "+255712345678"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
