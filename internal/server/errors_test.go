package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		respType string
	}{
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest, "validation_error"},
		{"invalid customer id", debtworkdomain.ErrInvalidCustomerID, http.StatusBadRequest, "validation_error"},
		{"invalid record id", debtworkdomain.ErrInvalidRecordID, http.StatusBadRequest, "validation_error"},
		{"invalid name", customerdomain.ErrInvalidName, http.StatusBadRequest, "validation_error"},
		{"ownership mismatch", debtworkdomain.ErrRecordOwnership, http.StatusForbidden, "forbidden"},
		{"duplicate email", customerdomain.ErrDuplicateEmail, http.StatusConflict, "conflict"},
		{"customer not found", debtworkdomain.ErrCustomerNotFound, http.StatusNotFound, "not_found"},
		{"record not found", debtworkdomain.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"gorm not found", gorm.ErrRecordNotFound, http.StatusNotFound, "not_found"},
		{"internal sentinel", debtworkdomain.ErrInternal, http.StatusInternalServerError, "internal_error"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "internal_error"},
		{"wrapped sentinel", fmt.Errorf("lookup: %w", debtworkdomain.ErrRecordNotFound), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.respType, payload.Type)
		})
	}
}

func TestMapErrorAggregatesFieldErrors(t *testing.T) {
	vErr := &debtworkdomain.ValidationErrors{}
	vErr.Add("action_type", "invalid_action_type", "unknown action type")
	vErr.Add("amount", "invalid_amount", "amount must not be negative")

	status, payload := mapError(vErr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", payload.Type)
	require.Len(t, payload.Errors, 2)
	assert.Equal(t, "action_type", payload.Errors[0].Field)
	assert.Equal(t, "invalid_amount", payload.Errors[1].Code)
}

func TestMapErrorSentinelFieldName(t *testing.T) {
	status, payload := mapError(debtworkdomain.ErrInvalidCustomerID)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "customer_id", payload.Errors[0].Field)
	assert.Equal(t, "invalid_customer_id", payload.Errors[0].Code)
}

func TestMapErrorNeverLeaksMessage(t *testing.T) {
	_, payload := mapError(errors.New("pq: connection refused host=10.0.0.3"))
	assert.Equal(t, "internal server error", payload.Message)
	assert.Empty(t, payload.Errors)
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, detail := classifyErrorForLog(debtworkdomain.ErrRecordNotFound)
	assert.Equal(t, "not_found", kind)
	assert.Equal(t, "not_found", detail)

	kind, _ = classifyErrorForLog(debtworkdomain.ErrInternal)
	assert.Equal(t, "internal_error", kind)

	kind, _ = classifyErrorForLog(debtworkdomain.ErrRecordOwnership)
	assert.Equal(t, "forbidden", kind)

	kind, _ = classifyErrorForLog(customerdomain.ErrDuplicateEmail)
	assert.Equal(t, "conflict", kind)

	kind, detail = classifyErrorForLog(nil)
	assert.Empty(t, kind)
	assert.Empty(t, detail)
}
