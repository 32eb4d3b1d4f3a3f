package validation

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a field-level validation failure
type ErrorCode string

const (
	CodeInvalidEnum      ErrorCode = "InvalidEnum"
	CodeInvalidAmount    ErrorCode = "InvalidAmount"
	CodeInvalidReference ErrorCode = "InvalidReference"
	CodeInvalidTimestamp ErrorCode = "InvalidTimestamp"
	CodeNoteTooLong      ErrorCode = "NoteTooLong"
	CodeInvalidNote      ErrorCode = "InvalidNote"
	CodeInvalidRange     ErrorCode = "InvalidRange"
	CodeTypeMismatch     ErrorCode = "TypeMismatch"
)

const (
	FieldType       = "type"
	FieldAmount     = "amount"
	FieldCategoryID = "category_id"
	FieldNote       = "note"
	FieldOccurredAt = "occurred_at"
	FieldFromDate   = "from_date"
	FieldToDate     = "to_date"
)

var defaultMessages = map[ErrorCode]string{
	CodeInvalidEnum:      "Type must be 'income' or 'expense'",
	CodeInvalidAmount:    "Amount must be a positive integer (in cents)",
	CodeInvalidReference: "Category ID must be a valid UUID",
	CodeInvalidTimestamp: "Must be a valid ISO-8601 datetime",
	CodeNoteTooLong:      "Note must be at most 500 characters",
	CodeInvalidNote:      "Note must be a string",
	CodeInvalidRange:     "from_date must not be after to_date",
}

// FieldError is a single failure attributed to one input field
type FieldError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

func newFieldError(field string, code ErrorCode) FieldError {
	return FieldError{Field: field, Code: code, Message: defaultMessages[code]}
}

// ValidationError carries every field error found in one input.
// It is the only error type returned by the validators in this package.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any field failed with code
func (e *ValidationError) Has(code ErrorCode) bool {
	for _, fe := range e.Fields {
		if fe.Code == code {
			return true
		}
	}
	return false
}

// Details renders each field error as "field: message"
func (e *ValidationError) Details() []string {
	details := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		details = append(details, fe.Error())
	}
	return details
}

// NewTypeMismatchError builds the error returned when a transaction's type
// disagrees with its category's type.
func NewTypeMismatchError(categoryType, transactionType string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{
		Field:   FieldCategoryID,
		Code:    CodeTypeMismatch,
		Message: fmt.Sprintf("Category type '%s' does not match transaction type '%s'", categoryType, transactionType),
	}}}
}
