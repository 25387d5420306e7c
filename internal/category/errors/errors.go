package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a payload field to the message describing what is wrong
// with it. It is the payload of every validation and authorization failure.
type FieldErrors map[string]string

func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msg := range other {
		fe[field] = msg
	}
}

func (fe FieldErrors) String() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ValidationError rejects a request over one or more invalid fields.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", e.Fields.String())
}

func NewValidationError(fields FieldErrors) error {
	return &ValidationError{Fields: fields}
}

// AuthorizationError rejects a request whose caller does not own the target
// category.
type AuthorizationError struct {
	Fields FieldErrors
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Fields.String())
}

func NewAuthorizationError(fields FieldErrors) error {
	return &AuthorizationError{Fields: fields}
}

// NotFoundError reports that the target category does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

// UnexpectedError wraps a store or infrastructure failure. The diagnostic is
// kept for logging and never exposed to the caller.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

func NewUnexpectedError(err error) error {
	return &UnexpectedError{Err: err}
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

func IsAuthorizationError(err error) bool {
	var target *AuthorizationError
	return stderrors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}
