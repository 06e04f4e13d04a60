// Package domain describes the receivables reporting surface.
package domain

import (
	"context"
	"errors"
)

// ErrInternal wraps unexpected storage failures so storage details never leak
// to callers.
var ErrInternal = errors.New("internal_error")

// AgingBucketSummary is one band of the aging report.
type AgingBucketSummary struct {
	Label        string `json:"label"`
	MinDays      int    `json:"min_days"`
	MaxDays      *int   `json:"max_days,omitempty"`
	InvoiceCount int    `json:"invoice_count"`
	Outstanding  int64  `json:"outstanding"`
}

// AgingReport buckets all outstanding invoices by days past due.
type AgingReport struct {
	Buckets          []AgingBucketSummary `json:"buckets"`
	TotalOutstanding int64                `json:"total_outstanding"`
	TotalInvoices    int                  `json:"total_invoices"`
}

type Service interface {
	AgingReport(ctx context.Context) (AgingReport, error)
}
