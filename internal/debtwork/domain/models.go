// Package domain contains the debt-work record model and the derived
// risk-profile types computed from a customer's collection history.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// ActionType classifies a collection action taken against a customer.
type ActionType string

const (
	ActionCall          ActionType = "CALL"
	ActionEmail         ActionType = "EMAIL"
	ActionSMS           ActionType = "SMS"
	ActionLetter        ActionType = "LETTER"
	ActionClaim         ActionType = "CLAIM"
	ActionCourtClaim    ActionType = "COURT_CLAIM"
	ActionCourtDecision ActionType = "COURT_DECISION"
	ActionExecution     ActionType = "EXECUTION"
	ActionSettlement    ActionType = "SETTLEMENT"
	ActionPaymentPlan   ActionType = "PAYMENT_PLAN"
	ActionOther         ActionType = "OTHER"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionCall, ActionEmail, ActionSMS, ActionLetter, ActionClaim,
		ActionCourtClaim, ActionCourtDecision, ActionExecution,
		ActionSettlement, ActionPaymentPlan, ActionOther:
		return true
	default:
		return false
	}
}

// IsLegal reports whether the action is part of a legal escalation.
func (t ActionType) IsLegal() bool {
	switch t {
	case ActionClaim, ActionCourtClaim, ActionCourtDecision, ActionExecution:
		return true
	default:
		return false
	}
}

// IsContact reports whether the action is a direct contact attempt.
func (t ActionType) IsContact() bool {
	switch t {
	case ActionCall, ActionEmail, ActionLetter:
		return true
	default:
		return false
	}
}

// ActionResult is the outcome recorded for a collection action.
type ActionResult string

const (
	ResultContacted   ActionResult = "CONTACTED"
	ResultNoContact   ActionResult = "NO_CONTACT"
	ResultPromisedPay ActionResult = "PROMISED_PAY"
	ResultRefused     ActionResult = "REFUSED"
	ResultPartialPay  ActionResult = "PARTIAL_PAY"
	ResultFullPay     ActionResult = "FULL_PAY"
	ResultInProgress  ActionResult = "IN_PROGRESS"
	ResultCompleted   ActionResult = "COMPLETED"
	ResultCancelled   ActionResult = "CANCELLED"
)

func (r ActionResult) Valid() bool {
	switch r {
	case ResultContacted, ResultNoContact, ResultPromisedPay, ResultRefused,
		ResultPartialPay, ResultFullPay, ResultInProgress, ResultCompleted,
		ResultCancelled:
		return true
	default:
		return false
	}
}

// IsSuccessfulContact reports whether the outcome counts as a constructive
// contact when computing the contact success rate.
func (r ActionResult) IsSuccessfulContact() bool {
	switch r {
	case ResultContacted, ResultPromisedPay, ResultPartialPay, ResultFullPay:
		return true
	default:
		return false
	}
}

// DebtWorkRecord is a single logged collection action. Records are append-only
// from the business point of view; updates exist for administrative
// correction and never move a record to another customer.
type DebtWorkRecord struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerID     snowflake.ID      `gorm:"not null;index" json:"customer_id"`
	InvoiceID      *snowflake.ID     `gorm:"index" json:"invoice_id,omitempty"`
	ActionType     ActionType        `gorm:"type:text;not null" json:"action_type"`
	ActionDate     time.Time         `gorm:"not null;index" json:"action_date"`
	PerformedBy    snowflake.ID      `gorm:"not null" json:"performed_by"`
	Result         ActionResult      `gorm:"type:text;not null" json:"result"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	NextActionDate *time.Time        `gorm:"" json:"next_action_date,omitempty"`
	Amount         *int64            `gorm:"" json:"amount,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (DebtWorkRecord) TableName() string { return "debt_work_records" }

// RiskLevel is the coarse tier derived from the risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// CustomerDebtWorkStats is the customer's derived risk profile. It is a pure
// function of the record and invoice state at query time and is never stored.
type CustomerDebtWorkStats struct {
	TotalDebtWorkRecords      int        `json:"total_debt_work_records"`
	TotalCalls                int        `json:"total_calls"`
	TotalLegalActions         int        `json:"total_legal_actions"`
	LastContactDate           *time.Time `json:"last_contact_date,omitempty"`
	TotalDebtEpisodes         int        `json:"total_debt_episodes"`
	AverageDebtResolutionDays int        `json:"average_debt_resolution_days"`
	LongestDebtDays           int        `json:"longest_debt_days"`
	RiskScore                 int        `json:"risk_score"`
	RiskLevel                 RiskLevel  `json:"risk_level"`
}
