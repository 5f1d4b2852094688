package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code standardizes failure semantics across layers.
type Code string

const (
	CodeValidation      Code = "validation"
	CodeNotFound        Code = "not_found"
	CodeConflict        Code = "conflict"
	CodeForbidden       Code = "forbidden"
	CodeUnauthenticated Code = "unauthenticated"
	CodeInternal        Code = "internal"
)

// NonFieldErrors is the Fields key used for errors that span several fields.
const NonFieldErrors = "non_field_errors"

// Error is the canonical application error.
type Error struct {
	Code    Code
	Op      string
	Message string
	// Fields holds per-field messages for validation and conflict errors.
	Fields map[string][]string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an error with explicit code and operation.
func New(code Code, op, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with a code. Errors that already carry a code keep it.
func Wrap(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return New(code, op, err.Error(), err)
}

func NotFound(op, message string) *Error {
	return New(CodeNotFound, op, message, nil)
}

func Forbidden(op, message string) *Error {
	return New(CodeForbidden, op, message, nil)
}

func Unauthenticated(op, message string) *Error {
	return New(CodeUnauthenticated, op, message, nil)
}

// Conflict reports a uniqueness violation as a non-field error.
func Conflict(op, message string) *Error {
	e := New(CodeConflict, op, message, nil)
	e.Fields = map[string][]string{NonFieldErrors: {message}}
	return e
}

// FieldErrors accumulates per-field validation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Err returns a validation error, or nil when nothing was recorded.
func (fe FieldErrors) Err(op string) error {
	if fe.Empty() {
		return nil
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e := New(CodeValidation, op, "invalid fields: "+strings.Join(keys, ", "), nil)
	e.Fields = map[string][]string(fe)
	return e
}

// Validation is a shorthand for a single-field validation error.
func Validation(op, field, message string) error {
	fe := FieldErrors{}
	fe.Add(field, message)
	return fe.Err(op)
}

// IsCode checks whether err (or a wrapped err) carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code when available.
func CodeOf(err error) Code {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return ""
	}
	return appErr.Code
}

// FieldsOf returns the field errors attached to err, if any.
func FieldsOf(err error) map[string][]string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return nil
	}
	return appErr.Fields
}
