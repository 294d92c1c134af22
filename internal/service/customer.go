package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/errs"
	"fittrack/internal/model"
	"fittrack/internal/repository"
)

// RegisterCustomerInput is the payload accepted by CustomerService.Register.
type RegisterCustomerInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Age      *int   `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender   string `json:"gender" validate:"required,oneof=MALE FEMALE"`
}

// CustomerService defines the use cases for customers.
type CustomerService interface {
	// Register validates the input, rejects an email that is already in use, hashes the
	// password and stores the customer.
	Register(ctx context.Context, in RegisterCustomerInput) (*model.Customer, error)

	// Get returns a customer by ID, or an error matching errs.ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Customer, error)

	// VerifyPassword reports whether plain matches the customer's stored hash.
	VerifyPassword(c *model.Customer, plain string) bool
}

type customerService struct {
	repo       repository.CustomerRepository
	bcryptCost int
}

// NewCustomerService constructs a new CustomerService. bcryptCost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func NewCustomerService(repo repository.CustomerRepository, bcryptCost int) CustomerService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &customerService{repo: repo, bcryptCost: bcryptCost}
}

func (s *customerService) Register(ctx context.Context, in RegisterCustomerInput) (*model.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Gender = strings.ToUpper(strings.TrimSpace(in.Gender))
	if err := validate(in); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	c := &model.Customer{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Age:      in.Age,
		Gender:   model.Gender(in.Gender),
	}
	stored, err := s.repo.Save(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return stored, nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %d: %w", id, errs.ErrNotFound)
	}
	return c, nil
}

func (s *customerService) VerifyPassword(c *model.Customer, plain string) bool {
	if c == nil || c.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(plain)) == nil
}
