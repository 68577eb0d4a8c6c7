package apperrors

import (
	"errors"
	"fmt"
)

// ErrValidation reports a rejected input field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}

// Validation builds an ErrValidation.
func Validation(field, message string) error {
	return &ErrValidation{Field: field, Message: message}
}

// ErrNotFound reports a missing entity.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NotFound builds an ErrNotFound.
func NotFound(entity, id string) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ErrImmutableField reports an attempt to change a field that is fixed after
// creation. It is distinct from validation so callers can tell a rejected
// change apart from a silently ignored one.
type ErrImmutableField struct {
	Field string
}

func (e *ErrImmutableField) Error() string {
	return e.Field + " cannot be changed after creation"
}

// Immutable builds an ErrImmutableField.
func Immutable(field string) error {
	return &ErrImmutableField{Field: field}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ErrValidation
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return errors.As(err, &nf)
}

// IsImmutableField reports whether err is an immutable-field error.
func IsImmutableField(err error) bool {
	var im *ErrImmutableField
	return errors.As(err, &im)
}
