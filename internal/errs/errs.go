// Package errs defines the error taxonomy shared by the stores, services and HTTP layer.
//
// Stores never return these values bare: they return errors that match them through
// errors.Is, so callers can branch on the category while keeping the driver detail.
package errs

import "errors"

var (
	// ErrNotFound reports that no row matched. Lookups return an empty result instead;
	// updates and services use it when the absence is a failure.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation covers foreign key, unique, not-null and check failures,
	// including a workout saved without an owning customer.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrPersistence covers connection and transport failures and any driver error
	// that is not a constraint violation.
	ErrPersistence = errors.New("persistence failure")
)
