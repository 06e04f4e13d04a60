package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
)

type createDebtWorkRequest struct {
	InvoiceID      string `json:"invoice_id"`
	ActionType     string `json:"action_type"`
	ActionDate     string `json:"action_date"`
	Result         string `json:"result"`
	Description    string `json:"description"`
	NextActionDate string `json:"next_action_date"`
	Amount         *int64 `json:"amount"`
}

func (s *Server) CreateDebtWorkRecord(c *gin.Context) {
	var req createDebtWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// The acting user comes from the authenticated caller, never from the
	// request body.
	performedBy, err := actorID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	actionDate, err := parseOptionalTime(req.ActionDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("action_date", "invalid_action_date", "invalid action_date"))
		return
	}

	nextActionDate, err := parseOptionalTime(req.NextActionDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("next_action_date", "invalid_next_action_date", "invalid next_action_date"))
		return
	}

	payload := debtworkdomain.RecordPayload{
		InvoiceID:      strings.TrimSpace(req.InvoiceID),
		ActionType:     debtworkdomain.ActionType(strings.ToUpper(strings.TrimSpace(req.ActionType))),
		Result:         debtworkdomain.ActionResult(strings.ToUpper(strings.TrimSpace(req.Result))),
		Description:    req.Description,
		NextActionDate: nextActionDate,
		Amount:         req.Amount,
	}
	if actionDate != nil {
		payload.ActionDate = *actionDate
	}

	resp, err := s.debtWorkSvc.Create(c.Request.Context(), debtworkdomain.CreateRecordRequest{
		CustomerID:  c.Param("customer_id"),
		PerformedBy: performedBy,
		Payload:     payload,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDebtWorkHistory(c *gin.Context) {
	var query struct {
		Limit     int    `form:"limit,default=50"`
		Offset    int    `form:"offset"`
		SortBy    string `form:"sort_by"`
		SortOrder string `form:"sort_order"`
		InvoiceID string `form:"invoice_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.debtWorkSvc.GetHistory(c.Request.Context(), debtworkdomain.HistoryRequest{
		CustomerID: c.Param("customer_id"),
		Limit:      query.Limit,
		Offset:     query.Offset,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
		InvoiceID:  strings.TrimSpace(query.InvoiceID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetDebtWorkRecord(c *gin.Context) {
	resp, err := s.debtWorkSvc.GetByID(c.Request.Context(), debtworkdomain.GetRecordRequest{
		CustomerID: c.Param("customer_id"),
		RecordID:   c.Param("record_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateDebtWorkRequest struct {
	InvoiceID      *string `json:"invoice_id"`
	ActionType     *string `json:"action_type"`
	ActionDate     *string `json:"action_date"`
	Result         *string `json:"result"`
	Description    *string `json:"description"`
	NextActionDate *string `json:"next_action_date"`
	Amount         *int64  `json:"amount"`
}

func (s *Server) UpdateDebtWorkRecord(c *gin.Context) {
	var req updateDebtWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := debtworkdomain.RecordPatch{
		InvoiceID:   req.InvoiceID,
		Description: req.Description,
		Amount:      req.Amount,
	}

	if req.ActionType != nil {
		actionType := debtworkdomain.ActionType(strings.ToUpper(strings.TrimSpace(*req.ActionType)))
		patch.ActionType = &actionType
	}
	if req.Result != nil {
		result := debtworkdomain.ActionResult(strings.ToUpper(strings.TrimSpace(*req.Result)))
		patch.Result = &result
	}
	if req.ActionDate != nil {
		parsed, err := parseOptionalTime(*req.ActionDate, false)
		if err != nil || parsed == nil {
			AbortWithError(c, newValidationError("action_date", "invalid_action_date", "invalid action_date"))
			return
		}
		patch.ActionDate = parsed
	}
	if req.NextActionDate != nil {
		parsed, err := parseOptionalTime(*req.NextActionDate, false)
		if err != nil {
			AbortWithError(c, newValidationError("next_action_date", "invalid_next_action_date", "invalid next_action_date"))
			return
		}
		patch.NextActionDate = parsed
	}

	resp, err := s.debtWorkSvc.Update(c.Request.Context(), debtworkdomain.UpdateRecordRequest{
		CustomerID: c.Param("customer_id"),
		RecordID:   c.Param("record_id"),
		Patch:      patch,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteDebtWorkRecord(c *gin.Context) {
	err := s.debtWorkSvc.Delete(c.Request.Context(), debtworkdomain.DeleteRecordRequest{
		CustomerID: c.Param("customer_id"),
		RecordID:   c.Param("record_id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
