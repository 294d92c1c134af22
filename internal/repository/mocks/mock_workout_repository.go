package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fittrack/internal/model"
)

type MockWorkoutRepository struct {
	mock.Mock
}

func (m *MockWorkoutRepository) Save(ctx context.Context, w *model.Workout) (*model.Workout, error) {
	args := m.Called(ctx, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) FindByID(ctx context.Context, id int64) (*model.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) FindAll(ctx context.Context) ([]model.Workout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) FindByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workout), args.Error(1)
}

func (m *MockWorkoutRepository) ExistsByCustomer(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkoutRepository) Summarize(ctx context.Context, customerID int64, from, to time.Time) (*model.WorkoutSummary, error) {
	args := m.Called(ctx, customerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkoutSummary), args.Error(1)
}
