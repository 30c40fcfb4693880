package sfid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength reports an input whose length is not accepted.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidCharacter reports a character outside the accepted charset.
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrRange reports a record number outside [0, MaxRecordNumber].
	ErrRange = errors.New("out of range")
	// ErrChecksumMismatch reports an 18-char suffix that does not match the
	// checksum recomputed from the first 15 characters. Only strict parsing
	// returns it.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// FieldError names the input field that failed validation.
type FieldError struct {
	Field  string // id, record_number, checksum, start...
	Value  string
	Err    error // one of the sentinels above
	Detail string
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Field, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field, value string, err error, format string, args ...any) *FieldError {
	return &FieldError{
		Field:  field,
		Value:  value,
		Err:    err,
		Detail: fmt.Sprintf(format, args...),
	}
}
