package inventory

import (
	"errors"
	"fmt"

	"github.com/Makepad-fr/pantry/internal/model"
)

// ErrNotFound is wrapped by every error about a missing category or item.
var ErrNotFound = errors.New("not found")

// ValidationError is a form problem caught before storage is touched.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationFrom(fe *model.FieldError) error {
	if fe == nil {
		return nil
	}
	return &ValidationError{Field: fe.Field, Msg: fe.Msg}
}

// StorageError wraps a failed read, write or decode of the document.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func categoryNotFound(ref string) error {
	return fmt.Errorf("category %q: %w", ref, ErrNotFound)
}

func itemNotFound(category, id string) error {
	return fmt.Errorf("item %q in category %q: %w", id, category, ErrNotFound)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
