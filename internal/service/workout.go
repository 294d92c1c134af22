package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fittrack/internal/errs"
	"fittrack/internal/model"
	"fittrack/internal/repository"
)

// LogWorkoutInput is the payload accepted by WorkoutService.Log.
type LogWorkoutInput struct {
	CustomerID      int64      `json:"customer_id" validate:"required,gt=0"`
	WorkoutType     *string    `json:"workout_type" validate:"omitempty,max=100"`
	Calories        *int       `json:"calories" validate:"omitempty,gte=0,lte=2147483647"`
	DurationMinutes *int       `json:"duration_minutes" validate:"omitempty,gte=0,lte=1440"`
	WorkoutDate     *time.Time `json:"workout_date"`
}

// WorkoutService defines the use cases for workouts.
type WorkoutService interface {
	// Log validates and stores a workout for an existing customer.
	Log(ctx context.Context, in LogWorkoutInput) (*model.Workout, error)

	// Get returns a workout by ID, or an error matching errs.ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Workout, error)

	// List returns every workout ordered by ID.
	List(ctx context.Context) ([]model.Workout, error)

	// ListByCustomer returns the workouts of an existing customer ordered by date.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error)

	// HasWorkouts reports whether the customer has logged any workout. An unknown
	// customer has none.
	HasWorkouts(ctx context.Context, customerID int64) (bool, error)

	// WeeklySummary aggregates the customer's workouts in the Monday-based UTC week
	// containing weekOf.
	WeeklySummary(ctx context.Context, customerID int64, weekOf time.Time) (*model.WorkoutSummary, error)
}

type workoutService struct {
	workouts  repository.WorkoutRepository
	customers repository.CustomerRepository
}

// NewWorkoutService constructs a new WorkoutService.
func NewWorkoutService(workouts repository.WorkoutRepository, customers repository.CustomerRepository) WorkoutService {
	return &workoutService{workouts: workouts, customers: customers}
}

func (s *workoutService) Log(ctx context.Context, in LogWorkoutInput) (*model.Workout, error) {
	if in.WorkoutType != nil {
		t := strings.TrimSpace(*in.WorkoutType)
		in.WorkoutType = &t
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	w := &model.Workout{
		CustomerID:      in.CustomerID,
		WorkoutType:     in.WorkoutType,
		Calories:        in.Calories,
		DurationMinutes: in.DurationMinutes,
		WorkoutDate:     in.WorkoutDate,
	}
	stored, err := s.workouts.Save(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}
	return stored, nil
}

func (s *workoutService) Get(ctx context.Context, id int64) (*model.Workout, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	w, err := s.workouts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("workout %d: %w", id, errs.ErrNotFound)
	}
	return w, nil
}

func (s *workoutService) List(ctx context.Context) ([]model.Workout, error) {
	return s.workouts.FindAll(ctx)
}

func (s *workoutService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.workouts.FindByCustomer(ctx, customerID)
}

func (s *workoutService) HasWorkouts(ctx context.Context, customerID int64) (bool, error) {
	if customerID <= 0 {
		return false, ErrInvalidID
	}
	return s.workouts.ExistsByCustomer(ctx, customerID)
}

func (s *workoutService) WeeklySummary(ctx context.Context, customerID int64, weekOf time.Time) (*model.WorkoutSummary, error) {
	if err := s.requireCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	from := WeekStart(weekOf)
	return s.workouts.Summarize(ctx, customerID, from, from.AddDate(0, 0, 7))
}

func (s *workoutService) requireCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return ErrInvalidID
	}
	c, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("customer %d: %w", customerID, errs.ErrNotFound)
	}
	return nil
}

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
