package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Request validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Conversion specific errors
	CodeTemplateCorruption ErrorCode = "TEMPLATE_CORRUPTION"
	CodeUnresolvedTags     ErrorCode = "UNRESOLVED_TAGS"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail that is reported to the caller alongside the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

// NewValidationError reports required input fields that are absent.
func NewValidationError(missing ...string) *DomainError {
	return NewError(CodeValidation,
		fmt.Sprintf("Invalid AI output: missing required field(s): %s", strings.Join(missing, ", ")),
		nil,
	).WithContext("missing", missing)
}

// NewTemplateCorruptionError wraps the parser error of a template that is not
// valid JSON after substitution. The parser message is kept verbatim.
func NewTemplateCorruptionError(parseErr error) *DomainError {
	return NewError(CodeTemplateCorruption,
		fmt.Sprintf("Template is not valid JSON after substitution: %v", parseErr),
		parseErr,
	).WithContext("parseError", parseErr.Error())
}

func NewUnresolvedTagsError(tags []string) *DomainError {
	return NewError(CodeUnresolvedTags,
		fmt.Sprintf("Template contains %d unresolved placeholder(s)", len(tags)),
		nil,
	).WithContext("unresolved", tags)
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors collects every invalid field of a request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewMissingFieldError(field string) FieldError {
	return FieldError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) FieldError {
	return FieldError{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("%s has an invalid format", field),
		Value:   value,
	}
}

func NewUnsupportedValueError(field string, value interface{}, allowed []string) FieldError {
	return FieldError{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")),
		Value:   value,
	}
}
