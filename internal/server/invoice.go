package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
)

type createInvoiceRequest struct {
	Number            string `json:"number"`
	Status            string `json:"status"`
	TotalAmount       int64  `json:"total_amount"`
	PaidAmount        int64  `json:"paid_amount"`
	Currency          string `json:"currency"`
	DueAt             string `json:"due_at"`
	ActualPaymentDate string `json:"actual_payment_date"`
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	dueAt, err := parseOptionalTime(req.DueAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("due_at", "invalid_due_at", "invalid due_at"))
		return
	}

	paymentDate, err := parseOptionalTime(req.ActualPaymentDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("actual_payment_date", "invalid_actual_payment_date", "invalid actual_payment_date"))
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateInvoiceRequest{
		CustomerID:        c.Param("customer_id"),
		Number:            strings.TrimSpace(req.Number),
		Status:            invoicedomain.InvoiceStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		TotalAmount:       req.TotalAmount,
		PaidAmount:        req.PaidAmount,
		Currency:          req.Currency,
		DueAt:             dueAt,
		ActualPaymentDate: paymentDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.ListByCustomer(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		CustomerID: c.Param("customer_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
