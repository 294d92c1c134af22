// Package service holds the use cases sitting between the HTTP handlers and the stores.
package service

import (
	"errors"
	"fmt"

	"fittrack/internal/validation"
)

var (
	ErrInvalidID    = errors.New("id must be a positive integer")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
)

// validate runs the struct tags of in and wraps failures with ErrInvalidInput, keeping the
// validator errors reachable for field-level reporting.
func validate(in any) error {
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
