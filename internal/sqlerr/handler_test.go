package sqlerr

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"fittrack/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		state string
		want  Code
	}{
		{"23503", ForeignKeyViolation},
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23514", CheckViolation},
		{"22P02", InvalidText},
		{"22003", NumericOutOfRange},
		{"08006", ConnectionFailure},
		{"57P01", ConnectionFailure},
		{"42P01", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.state))
		})
	}
}

func TestHandle(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, Handle(nil))
	})

	t.Run("no rows passes through", func(t *testing.T) {
		err := Handle(sql.ErrNoRows)
		assert.Same(t, sql.ErrNoRows, err)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23503",
			Message:        "insert or update on table \"workout\" violates foreign key constraint",
			TableName:      "workout",
			ConstraintName: "workout_customer_id_fkey",
		}
		err := Handle(fmt.Errorf("insert workout: %w", pgErr))

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.NotErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, ForeignKeyViolation, ErrCode(err))

		var sqlErr *Error
		assert.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, "workout", sqlErr.TableName)
		assert.Equal(t, "workout_customer_id_fkey", sqlErr.ConstraintName)
		assert.ErrorAs(t, err, &pgErr)
	})

	t.Run("unique violation", func(t *testing.T) {
		err := Handle(&pgconn.PgError{Code: "23505", TableName: "customer"})
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.Equal(t, UniqueViolation, ErrCode(err))
	})

	t.Run("integer out of range", func(t *testing.T) {
		err := Handle(&pgconn.PgError{Code: "22003", Message: "integer out of range"})
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.NotErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, NumericOutOfRange, ErrCode(err))
	})

	t.Run("invalid enum text", func(t *testing.T) {
		err := Handle(&pgconn.PgError{Code: "22P02", Message: "invalid input value for enum gender"})
		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("bad connection", func(t *testing.T) {
		err := Handle(driver.ErrBadConn)
		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, ConnectionFailure, ErrCode(err))
	})

	t.Run("unknown error", func(t *testing.T) {
		err := Handle(errors.New("boom"))
		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Equal(t, Other, ErrCode(err))
	})

	t.Run("already translated", func(t *testing.T) {
		in := MissingReference("workout", "customer_id")
		out := Handle(in)
		assert.Same(t, in, out)
		assert.ErrorIs(t, out, errs.ErrConstraintViolation)
	})
}
