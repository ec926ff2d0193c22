package core

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the YYYY-MM form of a MonthKey.
const MonthLayout = "2006-01"

// MonthKey identifies a calendar month. It is derived from transaction dates
// and never stored.
type MonthKey struct {
	Year  int
	Month time.Month
}

// NewMonthKey creates a MonthKey from a year and a 1-12 month.
func NewMonthKey(year, month int) MonthKey {
	return MonthKey{Year: year, Month: time.Month(month)}
}

// ParseMonthKey parses a YYYY-MM string.
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

func (m MonthKey) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Contains reports whether d falls inside the month.
func (m MonthKey) Contains(d Date) bool {
	return d.Year() == m.Year && d.Time.Month() == m.Month
}

// Before reports whether m is an earlier month than other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
