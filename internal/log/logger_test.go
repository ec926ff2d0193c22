package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"expenses/internal/core"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v err=%v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentLedger, Output: &buf})

	l.Info("Transaction added", FieldTransactionID, 7)
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %s", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec[FieldComponent] != ComponentLedger || rec[FieldTransactionID] != float64(7) {
		t.Fatalf("unexpected record %v", rec)
	}

	buf.Reset()
	l.WithComponent(ComponentBackend).Warn("slow")
	if !strings.Contains(buf.String(), `"component":"backend"`) {
		t.Fatalf("component not overridden: %s", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	d := core.Draft{Date: core.NewDate(2024, 5, 2), Category: core.Needs, Amount: decimal.NewFromInt(200)}
	f := NewFields().
		WithOperation(OpCreate).
		WithTransaction(3, d).
		WithMonth(d.Date.MonthKey()).
		WithPath("exports/ledger_2024-05.csv").
		WithError(&core.ValidationError{Field: "amount", Err: core.ErrInvalidAmount})

	if f[FieldOperation] != OpCreate || f[FieldTransactionID] != int64(3) || f[FieldMonth] != "2024-05" || f[FieldPath] != "exports/ledger_2024-05.csv" {
		t.Fatalf("unexpected fields %v", f)
	}
	if f[FieldErrorType] != ErrorTypeValidation {
		t.Fatalf("unexpected error type %v", f[FieldErrorType])
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("slice length mismatch")
	}
}

func TestErrorType(t *testing.T) {
	if got := ErrorType(core.NewStoreError("insert", errors.New("disk"))); got != ErrorTypeDatabase {
		t.Fatalf("got %q", got)
	}
	if got := ErrorType(&core.InvariantViolation{Reason: "x"}); got != ErrorTypeInvariant {
		t.Fatalf("got %q", got)
	}
	if got := ErrorType(errors.New("other")); got != ErrorTypeInternal {
		t.Fatalf("got %q", got)
	}
}
