// Package domainerrors defines the coded error values returned by the
// identifier validation pipelines.
//
// Validation failures are facts about the input, not exceptional states: each
// carries a machine-checkable Code, the offending original input (when known),
// and a human-readable message. Services branch on HasCode rather than on
// message text.
//
// CodeInvariantViolation is different in kind: it marks caller misuse
// (violated preconditions), never a malformed identifier.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the validation failure class.
type Code string

const (
	// CodeInvalidFormat: input does not match the identifier's basic shape.
	CodeInvalidFormat Code = "invalid_format"
	// CodeUnknownCountry: the country segment is not an ISO 3166 code.
	CodeUnknownCountry Code = "unknown_country"
	// CodeUnsupportedCountry: country is known but has no structure registered
	// for this identifier kind.
	CodeUnsupportedCountry Code = "unsupported_country"
	// CodeInvalidStructure: the kind-specific body fails its country's
	// structural expression.
	CodeInvalidStructure Code = "invalid_structure"
	// CodeIncorrectCheckDigits: MOD 97-10 verification failed.
	CodeIncorrectCheckDigits Code = "incorrect_check_digits"
	// CodePatternSyntax: a structure expression violates the SWIFT expression
	// grammar. A configuration error, not a runtime validation failure.
	CodePatternSyntax Code = "pattern_syntax"
	// CodeInvariantViolation: a precondition was violated by the caller.
	CodeInvariantViolation Code = "invariant_violation"
)

// Error is an immutable coded error value.
type Error struct {
	code    Code
	input   string
	message string
	err     error
}

// New returns an error with the given code and message.
func New(code Code, msg string) error {
	return &Error{code: code, message: msg}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(code Code, format string, args ...any) error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// WithInput returns an error that also records the offending input as given
// by the caller, before any normalization.
func WithInput(code Code, input, msg string) error {
	return &Error{code: code, input: input, message: msg}
}

// Wrap returns an error with the given code and message wrapping err.
// Unwrap exposes the cause to errors.Is / errors.As.
func Wrap(err error, code Code, msg string) error {
	return &Error{code: code, message: msg, err: err}
}

func (e *Error) Error() string {
	if e.input != "" {
		return fmt.Sprintf("%s: %q", e.message, e.input)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the error's code.
func (e *Error) Code() Code {
	return e.code
}

// Input returns the offending input, or "" when none was recorded.
func (e *Error) Input() string {
	return e.input
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var de *Error
	for ; err != nil; err = errors.Unwrap(err) {
		if errors.As(err, &de) && de.code == code {
			return true
		}
	}
	return false
}

// CodeOf returns the code of the outermost coded error in err's chain,
// or "" when there is none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// InputOf returns the offending input recorded on the outermost coded error
// in err's chain, or "" when there is none.
func InputOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.input
	}
	return ""
}
