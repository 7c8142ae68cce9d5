// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrStoreUnavailable  = errors.New("transaction store unavailable")
	ErrSnapshotNotLoaded = errors.New("snapshot not loaded")
	ErrInvalidDataset    = errors.New("invalid dataset file")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
