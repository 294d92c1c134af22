package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fittrack/internal/model"
	"fittrack/internal/service"
)

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Register(ctx context.Context, in service.RegisterCustomerInput) (*model.Customer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerService) VerifyPassword(c *model.Customer, plain string) bool {
	args := m.Called(c, plain)
	return args.Bool(0)
}
