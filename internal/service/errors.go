package service

import (
	"errors"
	"fmt"

	"github.com/sitecms/internal/validation"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is wrapped by every "document does not exist" error.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals a secret or credential mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned when a login does not match any user.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrPageNotFound    = fmt.Errorf("custom page %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrBlogNotFound    = fmt.Errorf("blog %w", ErrNotFound)
)

// ValidationError reports malformed or missing input. Nothing is written when
// it is returned.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// StorageError wraps a failed query or lost connection.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// lookupError maps a missing row to notFound and anything else to a StorageError.
func lookupError(op string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storageError(op, err)
}

// updateExisting writes every column of row back to its own record. A row
// deleted in the meantime yields notFound instead of being inserted again.
func updateExisting(tx *gorm.DB, row any, op string, notFound error) error {
	result := tx.Model(row).Select("*").Omit("created_at").Updates(row)
	if result.Error != nil {
		return storageError(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// invalid converts the result of a validation pass into a ValidationError.
func invalid(err error) error {
	if err == nil {
		return nil
	}
	var fields validation.Errors
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}

func invalidField(field, msg string) error {
	return &ValidationError{Fields: validation.Field(field, msg)}
}
