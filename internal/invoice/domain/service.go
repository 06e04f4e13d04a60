package domain

import (
	"context"
	"errors"
	"time"
)

type CreateInvoiceRequest struct {
	CustomerID        string
	Number            string
	Status            InvoiceStatus
	TotalAmount       int64
	PaidAmount        int64
	Currency          string
	DueAt             *time.Time
	ActualPaymentDate *time.Time
}

type ListInvoiceRequest struct {
	CustomerID string
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
	Total    int       `json:"total"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (Invoice, error)
	ListByCustomer(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
}

var (
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	// ErrInternal wraps unexpected storage failures so storage details never
	// leak to callers.
	ErrInternal = errors.New("internal_error")
)
