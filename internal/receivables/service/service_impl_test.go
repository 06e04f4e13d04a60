package service

import (
	"testing"
	"time"

	"github.com/smallbiznis/collectra/internal/config"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func outstandingInvoice(amount int64, daysOverdue int) invoicedomain.Invoice {
	due := reportNow.AddDate(0, 0, -daysOverdue)
	return invoicedomain.Invoice{
		Status:      invoicedomain.InvoiceStatusOverdue,
		TotalAmount: amount,
		Currency:    "USD",
		DueAt:       &due,
	}
}

func TestBuildAgingReportBucketBoundaries(t *testing.T) {
	buckets := config.DefaultReceivablesConfig().AgingBuckets

	invoices := []invoicedomain.Invoice{
		outstandingInvoice(100, 0),
		outstandingInvoice(200, 30),
		outstandingInvoice(300, 31),
		outstandingInvoice(400, 60),
		outstandingInvoice(500, 61),
		outstandingInvoice(600, 90),
		outstandingInvoice(700, 91),
		outstandingInvoice(800, 400),
	}

	report := BuildAgingReport(invoices, buckets, reportNow)
	require.Len(t, report.Buckets, 4)

	assert.Equal(t, 2, report.Buckets[0].InvoiceCount)
	assert.Equal(t, int64(300), report.Buckets[0].Outstanding)
	assert.Equal(t, 2, report.Buckets[1].InvoiceCount)
	assert.Equal(t, int64(700), report.Buckets[1].Outstanding)
	assert.Equal(t, 2, report.Buckets[2].InvoiceCount)
	assert.Equal(t, int64(1100), report.Buckets[2].Outstanding)
	assert.Equal(t, 2, report.Buckets[3].InvoiceCount)
	assert.Equal(t, int64(1500), report.Buckets[3].Outstanding)

	assert.Equal(t, 8, report.TotalInvoices)
	assert.Equal(t, int64(3600), report.TotalOutstanding)
}

func TestBuildAgingReportNotYetDue(t *testing.T) {
	due := reportNow.AddDate(0, 0, 14)
	invoices := []invoicedomain.Invoice{
		{
			Status:      invoicedomain.InvoiceStatusOpen,
			TotalAmount: 1_000,
			Currency:    "USD",
			DueAt:       &due,
		},
	}

	report := BuildAgingReport(invoices, config.DefaultReceivablesConfig().AgingBuckets, reportNow)

	// Counts as age zero, lands in the first bucket.
	assert.Equal(t, 1, report.Buckets[0].InvoiceCount)
	assert.Equal(t, int64(1_000), report.TotalOutstanding)
}

func TestBuildAgingReportSkipsSettled(t *testing.T) {
	due := reportNow.AddDate(0, 0, -10)
	invoices := []invoicedomain.Invoice{
		{
			Status:      invoicedomain.InvoiceStatusOpen,
			TotalAmount: 500,
			PaidAmount:  500,
			Currency:    "USD",
			DueAt:       &due,
		},
	}

	report := BuildAgingReport(invoices, config.DefaultReceivablesConfig().AgingBuckets, reportNow)
	assert.Equal(t, 0, report.TotalInvoices)
	assert.Equal(t, int64(0), report.TotalOutstanding)
}

func TestBuildAgingReportPartialPayment(t *testing.T) {
	due := reportNow.AddDate(0, 0, -40)
	invoices := []invoicedomain.Invoice{
		{
			Status:      invoicedomain.InvoiceStatusOverdue,
			TotalAmount: 1_000,
			PaidAmount:  400,
			Currency:    "USD",
			DueAt:       &due,
		},
	}

	report := BuildAgingReport(invoices, config.DefaultReceivablesConfig().AgingBuckets, reportNow)
	assert.Equal(t, int64(600), report.Buckets[1].Outstanding)
	assert.Equal(t, int64(600), report.TotalOutstanding)
}

func TestBuildAgingReportEmpty(t *testing.T) {
	report := BuildAgingReport(nil, config.DefaultReceivablesConfig().AgingBuckets, reportNow)
	require.Len(t, report.Buckets, 4)
	assert.Equal(t, 0, report.TotalInvoices)
	assert.Equal(t, int64(0), report.TotalOutstanding)
}
