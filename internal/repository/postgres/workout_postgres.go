package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/database"
	"fittrack/internal/errs"
	"fittrack/internal/model"
	"fittrack/internal/observability"
	"fittrack/internal/repository"
	"fittrack/internal/sqlerr"
)

const workoutColumns = `id, customer_id, workout_type, calories, duration_minutes, workout_date`

// WorkoutPostgres is a PostgreSQL implementation of repository.WorkoutRepository.
type WorkoutPostgres struct {
	session *database.Session
}

// NewWorkoutPostgres creates a new WorkoutPostgres repository.
func NewWorkoutPostgres(session *database.Session) *WorkoutPostgres {
	return &WorkoutPostgres{session: session}
}

var _ repository.WorkoutRepository = (*WorkoutPostgres)(nil)

// Save inserts a new workout or updates an existing one and returns the stored record.
// A workout without a CustomerID is rejected before any statement is sent.
func (r *WorkoutPostgres) Save(ctx context.Context, w *model.Workout) (*model.Workout, error) {
	if w.CustomerID == 0 {
		return nil, sqlerr.MissingReference("workout", "customer_id")
	}

	const qInsert = `
		INSERT INTO fit_tracker.workout (customer_id, workout_type, calories, duration_minutes, workout_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + workoutColumns
	const qUpdate = `
		UPDATE fit_tracker.workout
		SET customer_id = $1, workout_type = $2, calories = $3, duration_minutes = $4, workout_date = $5
		WHERE id = $6
		RETURNING ` + workoutColumns

	var out *model.Workout
	op := "update"
	err := r.session.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		var row *sql.Row
		if w.IsNew() {
			op = "insert"
			row = q.QueryRowContext(ctx, qInsert, workoutArgs(w)...)
		} else {
			row = q.QueryRowContext(ctx, qUpdate, append(workoutArgs(w), w.ID)...)
		}

		saved, err := scanWorkout(row)
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

	observability.RecordSaved("workout", op)
	return out, nil
}

// FindByID fetches a single workout by its ID. It returns nil, nil when no row matches.
func (r *WorkoutPostgres) FindByID(ctx context.Context, id int64) (*model.Workout, error) {
	const q = `SELECT ` + workoutColumns + ` FROM fit_tracker.workout WHERE id = $1`

	var out *model.Workout
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		w, err := scanWorkout(tx.QueryRowContext(ctx, q, id))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		out = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FindAll returns every workout ordered by ID.
func (r *WorkoutPostgres) FindAll(ctx context.Context) ([]model.Workout, error) {
	const q = `SELECT ` + workoutColumns + ` FROM fit_tracker.workout ORDER BY id`
	return r.list(ctx, q)
}

// FindByCustomer returns the customer's workouts ordered by workout date, undated last.
func (r *WorkoutPostgres) FindByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error) {
	const q = `
		SELECT ` + workoutColumns + `
		FROM fit_tracker.workout
		WHERE customer_id = $1
		ORDER BY workout_date NULLS LAST, id
	`
	return r.list(ctx, q, customerID)
}

// ExistsByCustomer reports whether at least one workout references the customer.
func (r *WorkoutPostgres) ExistsByCustomer(ctx context.Context, customerID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM fit_tracker.workout WHERE customer_id = $1)`

	var exists bool
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		return tx.QueryRowContext(ctx, q, customerID).Scan(&exists)
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Summarize aggregates the customer's workouts dated in [from, to).
func (r *WorkoutPostgres) Summarize(ctx context.Context, customerID int64, from, to time.Time) (*model.WorkoutSummary, error) {
	const q = `
		SELECT COUNT(*),
		       COALESCE(SUM(calories), 0),
		       COALESCE(AVG(calories), 0)::float8,
		       COALESCE(AVG(duration_minutes), 0)::float8
		FROM fit_tracker.workout
		WHERE customer_id = $1 AND workout_date >= $2 AND workout_date < $3
	`

	out := &model.WorkoutSummary{CustomerID: customerID, From: from, To: to}
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		return tx.QueryRowContext(ctx, q, customerID, from, to).Scan(
			&out.Count,
			&out.TotalCalories,
			&out.AvgCalories,
			&out.AvgDurationMinutes,
		)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WorkoutPostgres) list(ctx context.Context, q string, args ...any) ([]model.Workout, error) {
	items := make([]model.Workout, 0)
	err := r.session.ReadOnly(ctx, func(ctx context.Context, tx database.Querier) error {
		rows, err := tx.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			w, err := scanWorkout(rows)
			if err != nil {
				return err
			}
			items = append(items, *w)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// workoutArgs encodes the writable columns in statement order. Integers are bound as int64 so
// values beyond the INTEGER columns are rejected by the server instead of wrapping.
func workoutArgs(w *model.Workout) []any {
	var (
		workoutType sql.NullString
		calories    sql.NullInt64
		duration    sql.NullInt64
		date        sql.NullTime
	)
	if w.WorkoutType != nil {
		workoutType = sql.NullString{String: *w.WorkoutType, Valid: true}
	}
	if w.Calories != nil {
		calories = sql.NullInt64{Int64: int64(*w.Calories), Valid: true}
	}
	if w.DurationMinutes != nil {
		duration = sql.NullInt64{Int64: int64(*w.DurationMinutes), Valid: true}
	}
	if w.WorkoutDate != nil {
		date = sql.NullTime{Time: *w.WorkoutDate, Valid: true}
	}
	return []any{w.CustomerID, workoutType, calories, duration, date}
}

func scanWorkout(row interface{ Scan(dest ...any) error }) (*model.Workout, error) {
	var (
		w           model.Workout
		workoutType sql.NullString
		calories    sql.NullInt32
		duration    sql.NullInt32
		date        sql.NullTime
	)
	if err := row.Scan(&w.ID, &w.CustomerID, &workoutType, &calories, &duration, &date); err != nil {
		return nil, err
	}
	if workoutType.Valid {
		w.WorkoutType = &workoutType.String
	}
	if calories.Valid {
		v := int(calories.Int32)
		w.Calories = &v
	}
	if duration.Valid {
		v := int(duration.Int32)
		w.DurationMinutes = &v
	}
	if date.Valid {
		t := date.Time
		w.WorkoutDate = &t
	}
	return &w, nil
}
