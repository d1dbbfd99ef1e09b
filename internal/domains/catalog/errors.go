package catalog

import (
	"errors"
	"fmt"
)

// ErrNoSuchEntity is the store-level miss sentinel. Services translate it
// into a NotFoundError carrying the aggregate kind and key.
var ErrNoSuchEntity = errors.New("no such entity")

// NotFoundError is raised when a lookup by id (or username) matches no row.
// Label names the key that missed, "id" unless stated otherwise.
type NotFoundError struct {
	Kind  Kind
	Key   string
	Label string
}

func (e *NotFoundError) Error() string {
	label := e.Label
	if label == "" {
		label = "id"
	}
	return fmt.Sprintf("%s not found with provided %s: #%s", e.Kind, label, e.Key)
}

// NewNotFound builds a NotFoundError for the given kind and identifying key.
func NewNotFound(kind Kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// NewNotFoundBy builds a NotFoundError for a lookup by a key other than id.
func NewNotFoundBy(kind Kind, label, key string) error {
	return &NotFoundError{Kind: kind, Key: key, Label: label}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError is raised by save when a uniqueness invariant would be
// violated by the new row.
type ConflictError struct {
	Kind Kind
	Key  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Kind)
}

// NewConflict builds a ConflictError for the given kind and conflicting key.
func NewConflict(kind Kind, key string) error {
	return &ConflictError{Kind: kind, Key: key}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError marks a required-field violation. It is produced by the
// input-acceptance layer; the merge engine assumes already-valid data.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError wraps a message as a ValidationError.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
