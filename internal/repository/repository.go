// Package repository defines the store contracts for customers and workouts.
//
// Implementations live in subpackages (postgres). Lookups return (nil, nil) when no row
// matches; failures match errs.ErrConstraintViolation or errs.ErrPersistence.
package repository

import (
	"context"
	"time"

	"fittrack/internal/model"
)

// CustomerRepository persists customers.
type CustomerRepository interface {
	// Save inserts c when it has no ID, otherwise updates the row with c.ID.
	// Returns the stored record with its ID populated.
	Save(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// FindByID returns the customer, or nil when no row matches.
	FindByID(ctx context.Context, id int64) (*model.Customer, error)

	// ExistsByEmail reports whether any customer uses email, ignoring case.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// WorkoutRepository persists workouts.
type WorkoutRepository interface {
	// Save inserts w when it has no ID, otherwise updates it. w.CustomerID must reference
	// a persisted customer.
	Save(ctx context.Context, w *model.Workout) (*model.Workout, error)

	// FindByID returns the workout, or nil when no row matches.
	FindByID(ctx context.Context, id int64) (*model.Workout, error)

	// FindAll returns every workout in storage order.
	FindAll(ctx context.Context) ([]model.Workout, error)

	// FindByCustomer returns a customer's workouts ordered by date.
	FindByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error)

	// ExistsByCustomer reports whether at least one workout references customerID.
	ExistsByCustomer(ctx context.Context, customerID int64) (bool, error)

	// Summarize aggregates a customer's workouts dated in [from, to).
	Summarize(ctx context.Context, customerID int64, from, to time.Time) (*model.WorkoutSummary, error)
}
