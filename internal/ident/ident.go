// Package ident generates opaque record identifiers.
//
// Identifiers are for equality lookup only: callers must never rely on their
// value for ordering.
package ident

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh opaque identifier, unique within a dataset's lifetime.
func New() string {
	return uuid.NewString()
}

// NewSaleCode returns a short human-facing code for a sale receipt,
// e.g. "SL-9F2A31C4". Uniqueness matters only informally here; the record's
// identifier is the real key.
func NewSaleCode() string {
	id := uuid.New()
	hex := strings.ToUpper(id.String())
	return "SL-" + strings.ReplaceAll(hex, "-", "")[:8]
}
