// Package domain contains persistence models for receivable invoices.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusOpen    InvoiceStatus = "OPEN"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusOpen, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	default:
		return false
	}
}

// Invoice represents a receivable owed by a customer. Amounts are minor units.
type Invoice struct {
	ID                snowflake.ID      `gorm:"primaryKey" json:"id"`
	CustomerID        snowflake.ID      `gorm:"not null;index" json:"customer_id"`
	Number            string            `gorm:"type:text" json:"number,omitempty"`
	Status            InvoiceStatus     `gorm:"type:text;not null;default:'OPEN'" json:"status"`
	TotalAmount       int64             `gorm:"not null;default:0" json:"total_amount"`
	PaidAmount        int64             `gorm:"not null;default:0" json:"paid_amount"`
	Currency          string            `gorm:"type:text;not null" json:"currency"`
	DueAt             *time.Time        `gorm:"index" json:"due_at,omitempty"`
	ActualPaymentDate *time.Time        `gorm:"" json:"actual_payment_date,omitempty"`
	Metadata          datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// Outstanding is the unpaid remainder of the invoice.
func (i Invoice) Outstanding() int64 {
	return i.TotalAmount - i.PaidAmount
}
