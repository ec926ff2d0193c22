package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date format used for storage and input.
const DateLayout = "2006-01-02"

const (
	Income  Category = "Income"
	Needs   Category = "Needs"
	Wants   Category = "Wants"
	Savings Category = "Savings"
)

type (
	Category string

	// Date is a calendar day. The zero Date is unset; 0001-01-01 built by
	// NewDate or ParseDate is a real date.
	Date struct {
		time.Time
		set bool
	}

	// Transaction is one persisted ledger entry.
	Transaction struct {
		ID          int64
		Date        Date
		Category    Category
		Amount      decimal.Decimal
		Description string
	}

	// Draft is a validated transaction that has not been assigned an id yet.
	Draft struct {
		Date        Date
		Category    Category
		Amount      decimal.Decimal
		Description string
	}

	// TransactionInput holds raw field values as a front end collects them.
	TransactionInput struct {
		Date        string
		Category    string
		Amount      string
		Description string
	}
)

var (
	ErrEmptyDate       = errors.New("empty date")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyAmount     = errors.New("empty amount")
	ErrInvalidAmount   = errors.New("invalid amount")
)

var categories = []Category{Income, Needs, Wants, Savings}

// Categories returns every category, Income first.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ExpenseCategories returns the non-Income categories in display order.
func ExpenseCategories() []Category {
	return append([]Category(nil), categories[1:]...)
}

// ParseCategory matches s against the fixed enumeration. Matching is exact
// apart from surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyCategory
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (c Category) IsValid() bool {
	switch c {
	case Income, Needs, Wants, Savings:
		return true
	default:
		return false
	}
}

// IsExpense reports whether c is one of Needs, Wants or Savings.
func (c Category) IsExpense() bool {
	return c != Income && c.IsValid()
}

func (c Category) String() string {
	return string(c)
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), set: true}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyDate
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t, set: true}, nil
}

// IsZero reports whether d was never set.
func (d Date) IsZero() bool {
	return !d.set
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// MonthKey returns the (year, month) the date falls in.
func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Time.Month()}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// Parse validates the raw input and converts it into a Draft. Every failure
// is a *ValidationError naming the offending field.
func (in TransactionInput) Parse() (Draft, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return Draft{}, &ValidationError{Field: "date", Err: err}
	}
	category, err := ParseCategory(in.Category)
	if err != nil {
		return Draft{}, &ValidationError{Field: "category", Err: err}
	}
	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Draft{}, &ValidationError{Field: "amount", Err: err}
	}
	return Draft{
		Date:        date,
		Category:    category,
		Amount:      amount,
		Description: in.Description,
	}, nil
}

// Validate checks a Draft built without going through TransactionInput.
// Amounts carry no sign constraint.
func (d Draft) Validate() error {
	if err := d.Date.Validate(); err != nil {
		return &ValidationError{Field: "date", Err: err}
	}
	if d.Category == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	if !d.Category.IsValid() {
		return &ValidationError{Field: "category", Err: fmt.Errorf("%w: %q", ErrInvalidCategory, string(d.Category))}
	}
	return nil
}

// Validate checks a Transaction read back from a store. Violations are
// reported as *InvariantViolation, not as input problems.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return &InvariantViolation{ID: t.ID, Reason: "missing date"}
	}
	if !t.Category.IsValid() {
		return &InvariantViolation{ID: t.ID, Reason: fmt.Sprintf("unknown category %q", string(t.Category))}
	}
	return nil
}
