package log

import (
	"expenses/internal/core"
)

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldOperation     = "operation"
	FieldError         = "error"
	FieldErrorType     = "error_type"
	FieldTransactionID = "transaction_id"
	FieldDate          = "date"
	FieldMonth         = "month"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldBackend       = "backend"
	FieldDBPath        = "db_path"
	FieldPath          = "path"
	FieldCount         = "count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentLedger  = "ledger"
	ComponentBackend = "backend"
	ComponentCLI     = "cli"
)

// Operations defines standard operation names
const (
	OpCreate  = "create"
	OpDelete  = "delete"
	OpList    = "list"
	OpSummary = "summary"
	OpRefresh = "refresh"
	OpExport  = "export"
	OpStartup = "startup"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation = "validation_error"
	ErrorTypeDatabase   = "database_error"
	ErrorTypeInvariant  = "invariant_error"
	ErrorTypeInternal   = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error and its category
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
		f[FieldErrorType] = ErrorType(err)
	}
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id int64, d core.Draft) LogFields {
	f[FieldTransactionID] = id
	f[FieldDate] = d.Date.String()
	f[FieldCategory] = string(d.Category)
	f[FieldAmount] = d.Amount.String()
	return f
}

// WithMonth adds the month field
func (f LogFields) WithMonth(m core.MonthKey) LogFields {
	f[FieldMonth] = m.String()
	return f
}

// WithPath adds the file path field
func (f LogFields) WithPath(path string) LogFields {
	f[FieldPath] = path
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}

// ErrorType classifies err into one of the ErrorType constants.
func ErrorType(err error) string {
	switch {
	case core.IsValidation(err):
		return ErrorTypeValidation
	case core.IsInvariant(err):
		return ErrorTypeInvariant
	case core.IsStore(err):
		return ErrorTypeDatabase
	default:
		return ErrorTypeInternal
	}
}
