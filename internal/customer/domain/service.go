package domain

import (
	"context"
	"errors"
)

type CreateCustomerRequest struct {
	Name  string
	Email string
	Phone string
}

type GetCustomerRequest struct {
	ID string
}

type ListCustomerRequest struct {
	Limit  int
	Offset int
	Name   string
	Email  string
}

type ListCustomerFilter struct {
	Name  string
	Email string
}

type ListCustomerResponse struct {
	Customers []Customer `json:"customers"`
	Total     int64      `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

type UpdateCustomerRequest struct {
	ID    string
	Name  *string
	Email *string
	Phone *string
}

type DeleteCustomerRequest struct {
	ID string
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	GetByID(context.Context, GetCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	Delete(context.Context, DeleteCustomerRequest) error
}

var (
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidID    = errors.New("invalid_id")
	ErrNotFound     = errors.New("not_found")
	// ErrDuplicateEmail is returned when another customer already holds the
	// requested email address.
	ErrDuplicateEmail = errors.New("duplicate_email")
	// ErrInternal wraps unexpected storage failures so storage details never
	// leak to callers.
	ErrInternal = errors.New("internal_error")
)
