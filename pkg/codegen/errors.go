package codegen

import "fmt"

// ErrorKind is the closed set of fatal failure modes Generate can return.
// Recoverable conditions never reach this type — they accumulate as
// Warning values on Result instead.
type ErrorKind string

const (
	SpecResolutionError ErrorKind = "SpecResolutionError"
	SchemaParseError    ErrorKind = "SchemaParseError"
	ReferenceError      ErrorKind = "ReferenceError"
	ValidationError     ErrorKind = "ValidationError"
	CircularSchemaError ErrorKind = "CircularSchemaError"
	FileWriteError      ErrorKind = "FileWriteError"
	InvalidConfigError  ErrorKind = "InvalidConfigError"
	UnknownError        ErrorKind = "UnknownError"
)

// ErrorContext pins a fatal error to the spec location that triggered it.
// Schema is empty when the error has no schema of its own to point at
// (e.g. a top-level configuration problem).
type ErrorContext struct {
	Path      string
	Operation string
	Schema    string
}

// Error is the one structured error type Generate ever returns. It wraps
// the underlying cause the way the rest of this module wraps errors
// (fmt.Errorf + %w), so callers that only care about the cause can still
// reach it with errors.As/errors.Unwrap.
type Error struct {
	Kind    ErrorKind
	Context ErrorContext
	Err     error
}

func (e *Error) Error() string {
	loc := e.Context.Path
	if e.Context.Operation != "" {
		loc = e.Context.Operation + " (" + loc + ")"
	}
	if loc == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s at %s: %v", e.Kind, loc, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, ctx ErrorContext, err error) *Error {
	return &Error{Kind: kind, Context: ctx, Err: err}
}
