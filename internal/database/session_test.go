package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/errs"
)

func newMockSession(t *testing.T) (*Session, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSession(db), mock
}

func TestSession_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE fit_tracker.customer").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := s.WithinTx(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, "UPDATE fit_tracker.customer SET age = 1")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and translates driver errors", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO fit_tracker.workout").
			WillReturnError(&pgconn.PgError{Code: "23503", TableName: "workout"})
		mock.ExpectRollback()

		err := s.WithinTx(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, "INSERT INTO fit_tracker.workout DEFAULT VALUES")
			return err
		})

		assert.ErrorIs(t, err, errs.ErrConstraintViolation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic and re-panics", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = s.WithinTx(ctx, func(ctx context.Context, q Querier) error {
				panic("boom")
			})
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is a persistence error", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin().WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

		called := false
		err := s.WithinTx(ctx, func(ctx context.Context, q Querier) error {
			called = true
			return nil
		})

		assert.False(t, called)
		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Contains(t, err.Error(), "begin transaction")
	})

	t.Run("commit failure is a persistence error", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		err := s.WithinTx(ctx, func(ctx context.Context, q Querier) error { return nil })

		assert.ErrorIs(t, err, errs.ErrPersistence)
		assert.Contains(t, err.Error(), "commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found passes through", func(t *testing.T) {
		s, mock := newMockSession(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := s.WithinTx(ctx, func(ctx context.Context, q Querier) error { return errs.ErrNotFound })

		assert.ErrorIs(t, err, errs.ErrNotFound)
		assert.NotErrorIs(t, err, errs.ErrPersistence)
	})
}

func TestSession_ReadOnly(t *testing.T) {
	s, mock := newMockSession(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectCommit()

	var n int
	err := s.ReadOnly(context.Background(), func(ctx context.Context, q Querier) error {
		return q.QueryRowContext(ctx, "SELECT 1").Scan(&n)
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
