// Package sqlerr converts PostgreSQL driver errors into the errs taxonomy.
//
// Raw SQLSTATE codes are mapped to a small Code enum and wrapped in *Error, which keeps the
// table, column and constraint metadata reported by the server.
package sqlerr

// Code is the category of a database error.
type Code string

const (
	Other               Code = "other"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	InvalidText         Code = "invalid_text_representation"
	NumericOutOfRange   Code = "numeric_value_out_of_range"
	ConnectionFailure   Code = "connection_failure"
)

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02":
		return InvalidText
	case "22003":
		return NumericOutOfRange
	}
	// Class 08: connection exception. 57P01-57P03: server shutting down or unavailable.
	if len(sqlState) == 5 && (sqlState[:2] == "08" || sqlState[:4] == "57P0") {
		return ConnectionFailure
	}
	return Other
}

// IsConstraint reports whether c is a data integrity failure caused by the caller's input.
func (c Code) IsConstraint() bool {
	switch c {
	case ForeignKeyViolation, UniqueViolation, NotNullViolation, CheckViolation, InvalidText, NumericOutOfRange:
		return true
	}
	return false
}
