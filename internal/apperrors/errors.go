// Package apperrors defines the error taxonomy shared by the prediction
// client, the CLI and the TUI.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorises an application error.
type Kind string

const (
	KindValidation         Kind = "validation"          // one or more input fields unset or malformed
	KindTransport          Kind = "transport"           // network failure or non-2xx status
	KindUnexpectedResponse Kind = "unexpected_response" // 2xx body without a predictions object
	KindMissingState       Kind = "missing_state"       // results reached without a payload
	KindConfig             Kind = "config"              // invalid configuration
)

// Error is a categorised application error.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string // offending field names, validation only
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidation reports unset or unparseable input fields.
func NewValidation(message string, fields ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewTransport wraps a failure talking to the prediction service.
func NewTransport(message string, cause error) *Error {
	return &Error{Kind: KindTransport, Message: message, Cause: cause}
}

// NewUnexpectedResponse reports a response without the expected shape.
func NewUnexpectedResponse(message string) *Error {
	return &Error{Kind: KindUnexpectedResponse, Message: message}
}

// NewMissingState reports a view reached without its navigation payload.
func NewMissingState(message string) *Error {
	return &Error{Kind: KindMissingState, Message: message}
}

// NewConfig wraps a configuration problem.
func NewConfig(message string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: message, Cause: cause}
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == k
	}
	return false
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
