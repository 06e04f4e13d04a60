package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// RecordPayload carries client-supplied fields for create. CustomerID and
// PerformedBy deliberately live outside the payload: they come from trusted
// caller context and client input can never override them.
type RecordPayload struct {
	InvoiceID      string
	ActionType     ActionType
	ActionDate     time.Time
	Result         ActionResult
	Description    string
	NextActionDate *time.Time
	Amount         *int64
}

// RecordPatch carries optional fields for administrative correction.
// CustomerID is immutable and intentionally absent.
type RecordPatch struct {
	InvoiceID      *string
	ActionType     *ActionType
	ActionDate     *time.Time
	Result         *ActionResult
	Description    *string
	NextActionDate *time.Time
	Amount         *int64
}

type CreateRecordRequest struct {
	CustomerID  string
	PerformedBy snowflake.ID
	Payload     RecordPayload
}

type GetRecordRequest struct {
	CustomerID string
	RecordID   string
}

type UpdateRecordRequest struct {
	CustomerID string
	RecordID   string
	Patch      RecordPatch
}

type DeleteRecordRequest struct {
	CustomerID string
	RecordID   string
}

type HistoryRequest struct {
	CustomerID string
	Limit      int
	Offset     int
	SortBy     string
	SortOrder  string
	InvoiceID  string
}

type HistoryResponse struct {
	Records []DebtWorkRecord      `json:"records"`
	Stats   CustomerDebtWorkStats `json:"stats"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type Service interface {
	Create(context.Context, CreateRecordRequest) (DebtWorkRecord, error)
	GetByID(context.Context, GetRecordRequest) (DebtWorkRecord, error)
	GetHistory(context.Context, HistoryRequest) (HistoryResponse, error)
	Update(context.Context, UpdateRecordRequest) (DebtWorkRecord, error)
	Delete(context.Context, DeleteRecordRequest) error
}

var (
	ErrInvalidCustomerID = errors.New("invalid_customer_id")
	ErrInvalidRecordID   = errors.New("invalid_record_id")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrRecordNotFound    = errors.New("record_not_found")
	// ErrRecordOwnership is returned when the record exists but belongs to a
	// different customer than the one named in the request.
	ErrRecordOwnership = errors.New("record_ownership_mismatch")
	// ErrInternal wraps unexpected storage failures so storage details never
	// leak to callers.
	ErrInternal = errors.New("internal_error")
)

// FieldError is one constraint violation on a create/update payload.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every constraint violation found in a payload
// so the caller sees all problems at once instead of the first.
type ValidationErrors struct {
	Errors []FieldError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		parts = append(parts, e.Code)
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (v *ValidationErrors) Add(field, code, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Code: code, Message: message})
}

func (v *ValidationErrors) HasErrors() bool { return len(v.Errors) > 0 }
