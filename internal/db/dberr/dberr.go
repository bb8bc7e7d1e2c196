// Package dberr classifies storage errors returned by gorm.
package dberr

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrStorageUnavailable marks a transient storage or transport failure. Callers may retry with backoff.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Unavailable wraps err as ErrStorageUnavailable while keeping the original error in the chain.
// Nil stays nil.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err was caused by a unique index.
// Dialects with gorm error translation return gorm.ErrDuplicatedKey; the message
// check covers drivers where translation is not available.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
