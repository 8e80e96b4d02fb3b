package errors

import (
	"fmt"
)

// Reason codes recorded in reports and printed by the CLI.
const (
	ReasonConversionFailed   = "conversion_failed"
	ReasonMissingHex         = "conversion_failed_or_missing_hex"
	ReasonInputNotFound      = "input_not_found"
	defaultConversionMessage = "color could not be converted"
)

// ParseError represents a token document or config decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InputNotFoundError reports a token document that does not exist, either on
// disk or at the requested git revision.
type InputNotFoundError struct {
	Path string
	Rev  string
	Err  error
}

// NewInputNotFoundError constructs an InputNotFoundError. rev may be empty.
func NewInputNotFoundError(path, rev string, err error) error {
	return &InputNotFoundError{Path: path, Rev: rev, Err: err}
}

func (e *InputNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.Rev != "" {
		return fmt.Sprintf("%s: %s does not exist at revision %s", ReasonInputNotFound, e.Path, e.Rev)
	}
	return fmt.Sprintf("%s: %s does not exist", ReasonInputNotFound, e.Path)
}

// Unwrap exposes the underlying error.
func (e *InputNotFoundError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConversionError describes why a single color token could not be normalized.
type ConversionError struct {
	Path   string
	Reason string
	Err    error
}

// NewConversionError constructs a ConversionError for the given reason code.
func NewConversionError(reason string, err error) error {
	return &ConversionError{Reason: reason, Err: err}
}

func (e *ConversionError) Error() string {
	if e == nil {
		return ""
	}
	detail := defaultConversionMessage
	if e.Err != nil {
		detail = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Reason, detail)
	}
	return fmt.Sprintf("%s: %s", e.Reason, detail)
}

// Unwrap exposes the underlying error.
func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
