package ident

import (
	"strings"
	"testing"
)

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if id == "" {
			t.Fatal("empty identifier")
		}
		if seen[id] {
			t.Fatalf("duplicate identifier after %d draws: %s", i, id)
		}
		seen[id] = true
	}
}

func TestNewSaleCode(t *testing.T) {
	code := NewSaleCode()
	if !strings.HasPrefix(code, "SL-") {
		t.Fatalf("sale code %q missing prefix", code)
	}
	if len(code) != len("SL-")+8 {
		t.Fatalf("sale code %q has unexpected length", code)
	}
	if code == NewSaleCode() && code == NewSaleCode() {
		t.Fatal("sale codes should not repeat")
	}
}
