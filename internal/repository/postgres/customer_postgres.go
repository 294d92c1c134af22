package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fittrack/internal/database"
	"fittrack/internal/errs"
	"fittrack/internal/model"
	"fittrack/internal/observability"
	"fittrack/internal/repository"
)

const customerColumns = `id, name, email, password, age, gender`

// CustomerPostgres is a PostgreSQL implementation of repository.CustomerRepository.
// It uses parameterized queries inside session transactions and contains no business logic.
type CustomerPostgres struct {
	session *database.Session
}

// NewCustomerPostgres creates a new CustomerPostgres repository.
func NewCustomerPostgres(session *database.Session) *CustomerPostgres {
	return &CustomerPostgres{session: session}
}

var _ repository.CustomerRepository = (*CustomerPostgres)(nil)

// Save inserts a new customer or updates an existing one and returns the stored record.
func (r *CustomerPostgres) Save(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	const qInsert = `
		INSERT INTO fit_tracker.customer (name, email, password, age, gender)
		VALUES ($1, $2, $3, $4, $5::fit_tracker.gender)
		RETURNING ` + customerColumns
	const qUpdate = `
		UPDATE fit_tracker.customer
		SET name = $1, email = $2, password = $3, age = $4, gender = $5::fit_tracker.gender
		WHERE id = $6
		RETURNING ` + customerColumns

	var out *model.Customer
	op := "update"
	err := r.session.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		var row *sql.Row
		if c.IsNew() {
			op = "insert"
			row = q.QueryRowContext(ctx, qInsert, customerArgs(c)...)
		} else {
			row = q.QueryRowContext(ctx, qUpdate, append(customerArgs(c), c.ID)...)
		}

		saved, err := scanCustomer(row)
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		if err != nil {
			return err
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	observability.RecordSaved("customer", op)
	return out, nil
}

// FindByID fetches a single customer by its ID. It returns nil, nil when no row matches.
func (r *CustomerPostgres) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM fit_tracker.customer WHERE id = $1`

	var out *model.Customer
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		c, err := scanCustomer(tx.QueryRowContext(ctx, q, id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsByEmail reports whether a customer with the given email exists, ignoring case.
func (r *CustomerPostgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM fit_tracker.customer WHERE lower(email) = lower($1))`

	var exists bool
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		return tx.QueryRowContext(ctx, q, email).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// customerArgs encodes the writable columns in statement order.
func customerArgs(c *model.Customer) []any {
	var age sql.NullInt64
	if c.Age != nil {
		age = sql.NullInt64{Int64: int64(*c.Age), Valid: true}
	}
	return []any{c.Name, c.Email, c.Password, age, string(c.Gender)}
}

func scanCustomer(row interface{ Scan(dest ...any) error }) (*model.Customer, error) {
	var (
		c      model.Customer
		age    sql.NullInt32
		gender string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Password, &age, &gender); err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int32)
		c.Age = &v
	}
	c.Gender = model.Gender(gender)
	return &c, nil
}
