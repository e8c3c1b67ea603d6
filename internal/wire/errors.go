package wire

import (
	"errors"
	"fmt"
)

// DecodeError is the only error kind the codec boundary produces.
//
// Decode failures are ordinary, reportable outcomes: the compatibility
// verifier treats an Incompatible result as data, not as a fault. Callers
// decide whether a given scenario expects success or failure.
type DecodeError struct {
	// Code identifies the failure category.
	Code DecodeErrorCode

	// Field names the missing required field (ErrCodeMissingField only).
	Field string

	// Schema names the target record type, for diagnostics.
	Schema string

	// cause holds the underlying parse error, if any.
	cause error
}

// DecodeErrorCode categorizes decode failures.
type DecodeErrorCode string

const (
	// ErrCodeMalformed indicates the bytes are not valid encoded data
	// under any schema.
	ErrCodeMalformed DecodeErrorCode = "MALFORMED"

	// ErrCodeMissingField indicates the bytes are valid but lack a field
	// required by the target schema.
	ErrCodeMissingField DecodeErrorCode = "MISSING_FIELD"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	switch {
	case e.Code == ErrCodeMissingField && e.Schema != "":
		return fmt.Sprintf("%s: field %q required by %s is absent", e.Code, e.Field, e.Schema)
	case e.Code == ErrCodeMissingField:
		return fmt.Sprintf("%s: field %q is absent", e.Code, e.Field)
	case e.Schema != "":
		return fmt.Sprintf("%s: not valid encoded data (target %s)", e.Code, e.Schema)
	default:
		return fmt.Sprintf("%s: not valid encoded data", e.Code)
	}
}

// Unwrap exposes the underlying parse error for errors.Is/As chains.
func (e *DecodeError) Unwrap() error {
	return e.cause
}

// IsMissingField reports whether err is a missing-required-field decode
// failure. Uses errors.As to handle wrapped errors.
func IsMissingField(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeMissingField
	}
	return false
}

// IsMalformed reports whether err is a malformed-input decode failure.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == ErrCodeMalformed
	}
	return false
}

// AsDecodeError extracts the *DecodeError from err, if there is one.
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// NewMissingFieldError creates a DecodeError for a required field absent
// from the byte stream.
func NewMissingFieldError(schema, field string) *DecodeError {
	return &DecodeError{
		Code:   ErrCodeMissingField,
		Field:  field,
		Schema: schema,
	}
}

// NewMalformedError creates a DecodeError for input that is not valid
// encoded data.
func NewMalformedError(schema string, cause error) *DecodeError {
	return &DecodeError{
		Code:   ErrCodeMalformed,
		Schema: schema,
		cause:  cause,
	}
}
