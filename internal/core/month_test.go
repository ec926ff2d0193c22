package core

import (
	"testing"
	"time"
)

func TestParseMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2024-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if m.Year != 2024 || m.Month != time.May {
		t.Fatalf("unexpected month %+v", m)
	}
	if m.String() != "2024-05" {
		t.Fatalf("unexpected string %q", m.String())
	}
	for _, bad := range []string{"", "2024-13", "2024-5-1", "May 2024"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestMonthKeyContainsAndBefore(t *testing.T) {
	may := NewMonthKey(2024, 5)
	if !may.Contains(NewDate(2024, 5, 31)) {
		t.Fatal("May should contain May 31")
	}
	if may.Contains(NewDate(2023, 5, 1)) || may.Contains(NewDate(2024, 6, 1)) {
		t.Fatal("May 2024 should only contain its own days")
	}
	if !NewMonthKey(2023, 12).Before(may) || !NewMonthKey(2024, 4).Before(may) {
		t.Fatal("earlier months should sort before May 2024")
	}
	if may.Before(may) {
		t.Fatal("a month is not before itself")
	}
}
