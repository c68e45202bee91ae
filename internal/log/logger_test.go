package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(Config{
		Component: component,
		Handler:   slog.NewTextHandler(&buf, nil),
	}), &buf
}

func TestInfoCarriesComponent(t *testing.T) {
	logger, buf := newBufferLogger("ledger")

	logger.Info("Payment applied", "amount_cents", 400000)

	out := buf.String()
	if !strings.Contains(out, "component=ledger") {
		t.Fatalf("output missing component attribute: %s", out)
	}
	if !strings.Contains(out, "amount_cents=400000") {
		t.Fatalf("output missing caller attribute: %s", out)
	}
}

func TestWithComponentRetags(t *testing.T) {
	logger, buf := newBufferLogger("duka")

	logger.WithComponent("worker").Warn("Export delayed")

	if out := buf.String(); !strings.Contains(out, "component=worker") {
		t.Fatalf("output missing retagged component: %s", out)
	}
}
