// Package schema creates the fit_tracker schema objects when they are missing.
//
// Every step is idempotent. There are no versions and no down steps: a database that already
// has the sentinel table is left untouched.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Name is the PostgreSQL schema holding the customer and workout tables.
const Name = "fit_tracker"

type step struct {
	Name string
	SQL  string
}

var steps = []step{
	{
		Name: "create_schema_fit_tracker",
		SQL:  `CREATE SCHEMA IF NOT EXISTS fit_tracker;`,
	},
	{
		Name: "create_type_gender",
		SQL: `DO $$
BEGIN
  CREATE TYPE fit_tracker.gender AS ENUM ('MALE', 'FEMALE');
EXCEPTION
  WHEN duplicate_object THEN NULL;
END
$$;`,
	},
	{
		Name: "create_table_customer",
		SQL: `CREATE TABLE IF NOT EXISTS fit_tracker.customer (
  id       SERIAL             PRIMARY KEY,
  name     TEXT               NOT NULL,
  email    TEXT               NOT NULL,
  password TEXT               NOT NULL,
  age      INTEGER,
  gender   fit_tracker.gender NOT NULL
);`,
	},
	{
		Name: "create_table_workout",
		SQL: `CREATE TABLE IF NOT EXISTS fit_tracker.workout (
  id               SERIAL      PRIMARY KEY,
  customer_id      INTEGER     NOT NULL REFERENCES fit_tracker.customer (id),
  workout_type     TEXT,
  calories         INTEGER,
  duration_minutes INTEGER,
  workout_date     TIMESTAMPTZ
);`,
	},
	{
		Name: "create_index_workout_customer_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_workout_customer_id ON fit_tracker.workout (customer_id, workout_date);`,
	},
	{
		Name: "create_index_customer_email",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_customer_email ON fit_tracker.customer (lower(email));`,
	},
}

// Execer is satisfied by *sql.DB and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Ensure checks for the workout table and runs the creation steps if it doesn't exist.
func Ensure(ctx context.Context, db Execer, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Logger()

	log.Info().Str("event", "schema_check").Msg("checking fit_tracker schema")

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass('fit_tracker.workout') IS NOT NULL").Scan(&exists); err != nil {
		log.Error().Err(err).Str("event", "schema_failed").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info().Str("event", "schema_skip").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping")
		return nil
	}

	for _, s := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, s.SQL); err != nil {
			log.Error().Err(err).Str("event", "schema_failed").
				Str("step", s.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("schema step failed")
			return fmt.Errorf("schema step %s failed: %w", s.Name, err)
		}
		log.Debug().Str("event", "schema_step").
			Str("step", s.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Msg("schema step applied")
	}

	log.Info().Str("event", "schema_created").
		Int("steps", len(steps)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("fit_tracker schema created")
	return nil
}
