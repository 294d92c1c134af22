package model

import (
	"fmt"
	"strings"
)

// Gender is the customer's gender as stored in the fit_tracker.gender enum.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Valid reports whether g is one of the enum values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender accepts the enum values case-insensitively.
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("invalid gender %q", s)
	}
	return g, nil
}

// Customer is a registered user of the tracker.
type Customer struct {
	Entity
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password holds the bcrypt hash once the customer has been registered.
	Password string `json:"-"`
	Age      *int   `json:"age,omitempty"`
	Gender   Gender `json:"gender"`
}

// NewCustomer builds an unsaved customer.
func NewCustomer(name, email, password string, age int, gender Gender) Customer {
	return Customer{
		Name:     name,
		Email:    email,
		Password: password,
		Age:      &age,
		Gender:   gender,
	}
}
