package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string                     `json:"type"`
	Message string                     `json:"message"`
	Errors  []debtworkdomain.FieldError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrForbidden      = errors.New("forbidden")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &debtworkdomain.ValidationErrors{
		Errors: []debtworkdomain.FieldError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []debtworkdomain.FieldError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, debtworkdomain.ErrRecordOwnership):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case errors.Is(err, customerdomain.ErrDuplicateEmail):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "email already in use",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *debtworkdomain.ValidationErrors {
	var vErr *debtworkdomain.ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, customerdomain.ErrInvalidEmail),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidCustomerID),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidAmount),
		errors.Is(err, debtworkdomain.ErrInvalidCustomerID),
		errors.Is(err, debtworkdomain.ErrInvalidRecordID):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrCustomerNotFound),
		errors.Is(err, debtworkdomain.ErrCustomerNotFound),
		errors.Is(err, debtworkdomain.ErrRecordNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

// classifyErrorForLog feeds the request logger a coarse error type without
// leaking messages into log labels.
func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal_error", payload.Type
	case status == http.StatusNotFound:
		return "not_found", payload.Type
	case status == http.StatusForbidden:
		return "forbidden", payload.Type
	case status == http.StatusConflict:
		return "conflict", payload.Type
	default:
		return "validation_error", payload.Type
	}
}
