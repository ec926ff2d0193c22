package core

import (
	"errors"
	"fmt"
)

// ValidationError reports input that was rejected before any persistence
// attempt.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StoreError reports a failure of the underlying storage engine. Failures
// are local I/O and are not retried.
type StoreError struct {
	Op  string
	Err error
}

// NewStoreError wraps err, returning nil when err is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// InvariantViolation reports stored data that breaks the ledger's
// invariants. It is an internal fault, not a user input problem.
type InvariantViolation struct {
	ID     int64
	Reason string
}

func (e *InvariantViolation) Error() string {
	if e.ID == 0 {
		return "ledger invariant violated: " + e.Reason
	}
	return fmt.Sprintf("ledger invariant violated by transaction %d: %s", e.ID, e.Reason)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsStore(err error) bool {
	var target *StoreError
	return errors.As(err, &target)
}

func IsInvariant(err error) bool {
	var target *InvariantViolation
	return errors.As(err, &target)
}
