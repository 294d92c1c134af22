package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"fittrack/internal/errs"
)

// Error is a translated database error.
type Error struct {
	Code           Code
	DatabaseCode   string
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	switch {
	case e.ConstraintName != "":
		return fmt.Sprintf("%s on %s (%s): %s", e.Code, e.TableName, e.ConstraintName, e.Message)
	case e.TableName != "":
		return fmt.Sprintf("%s on %s: %s", e.Code, e.TableName, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap exposes the driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// Is matches the errs sentinels so callers can test the category with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case errs.ErrConstraintViolation:
		return e.Code.IsConstraint()
	case errs.ErrPersistence:
		return !e.Code.IsConstraint()
	}
	return false
}

// ConvertPgError converts a server-reported error into *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// MissingReference builds the constraint error raised before touching the database when a
// required foreign key is absent.
func MissingReference(table, column string) *Error {
	return &Error{
		Code:       ForeignKeyViolation,
		Message:    column + " is required",
		TableName:  table,
		ColumnName: column,
	}
}

// Handle translates err into the errs taxonomy.
//
//   - nil, sql.ErrNoRows and errs.ErrNotFound pass through unchanged
//   - an existing *Error is returned as is
//   - *pgconn.PgError is converted by SQLSTATE
//   - everything else, including broken connections and timeouts, becomes a
//     ConnectionFailure or Other error matching errs.ErrPersistence
func Handle(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) || errors.Is(err, errs.ErrNotFound) {
		return err
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		converted := ConvertPgError(pgErr)
		converted.driverErr = err
		return converted
	}

	code := Other
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr) ||
		pgconn.Timeout(err) {
		code = ConnectionFailure
	}
	return &Error{Code: code, Message: err.Error(), driverErr: err}
}

// ErrCode reports the Code carried by err, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}
