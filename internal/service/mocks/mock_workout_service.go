package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"fittrack/internal/model"
	"fittrack/internal/service"
)

type MockWorkoutService struct {
	mock.Mock
}

func (m *MockWorkoutService) Log(ctx context.Context, in service.LogWorkoutInput) (*model.Workout, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workout), args.Error(1)
}

func (m *MockWorkoutService) Get(ctx context.Context, id int64) (*model.Workout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workout), args.Error(1)
}

func (m *MockWorkoutService) List(ctx context.Context) ([]model.Workout, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workout), args.Error(1)
}

func (m *MockWorkoutService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Workout, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workout), args.Error(1)
}

func (m *MockWorkoutService) HasWorkouts(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkoutService) WeeklySummary(ctx context.Context, customerID int64, weekOf time.Time) (*model.WorkoutSummary, error) {
	args := m.Called(ctx, customerID, weekOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkoutSummary), args.Error(1)
}
