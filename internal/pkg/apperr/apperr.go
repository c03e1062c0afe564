// Package apperr is the error taxonomy shared by the usecases. Every failure a
// request can hit is converted into one of these kinds before it reaches the
// HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindValidation          Kind = "VALIDATION"
	KindStore               Kind = "STORE"
	KindNotFoundOrForbidden Kind = "NOT_FOUND_OR_FORBIDDEN"
	KindAuthRequired        Kind = "AUTH_REQUIRED"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindConflict            Kind = "CONFLICT"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields is only set for KindValidation: field name -> message.
	Fields map[string]string
	Err    error
	Stack  []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

func New(kind Kind, message string, err error) *Error {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(fields map[string]string) *Error {
	e := New(KindValidation, "validation failed", nil)
	e.Fields = fields
	return e
}

func Store(message string, err error) *Error {
	return New(KindStore, message, err)
}

func NotFoundOrForbidden() *Error {
	return New(KindNotFoundOrForbidden, "not found", nil)
}

func AuthRequired() *Error {
	return New(KindAuthRequired, "authentication required", nil)
}

func Unauthorized(message string, err error) *Error {
	return New(KindUnauthorized, message, err)
}

func InvalidInput(message string, err error) *Error {
	return New(KindInvalidInput, message, err)
}

func Conflict(message string, err error) *Error {
	return New(KindConflict, message, err)
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err
// carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldsOf returns the field messages of a validation error, or nil.
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindValidation {
		return e.Fields
	}
	return nil
}
