package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		err error
	}{
		{"1", "1", nil},
		{"1000", "1000", nil},
		{"12.50", "12.5", nil},
		{" 2.25 ", "2.25", nil},
		{"-40", "-40", nil},
		{"0", "0", nil},
		{"1e3", "1000", nil},
		{"", "", ErrEmptyAmount},
		{"   ", "", ErrEmptyAmount},
		{"abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"NaN", "", ErrInvalidAmount},
		{"Inf", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.out)) {
			t.Fatalf("%q expected %s, got %s", tc.in, tc.out, got)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(decimal.NewFromInt(20)); got != "20.00" {
		t.Fatalf("got %q", got)
	}
	if got := FormatAmount(decimal.RequireFromString("-3.456")); got != "-3.46" {
		t.Fatalf("got %q", got)
	}
}
