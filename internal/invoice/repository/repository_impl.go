package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/internal/invoice/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO invoices (id, customer_id, number, status, total_amount, paid_amount, currency, due_at, actual_payment_date, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.CustomerID,
		invoice.Number,
		invoice.Status,
		invoice.TotalAmount,
		invoice.PaidAmount,
		invoice.Currency,
		invoice.DueAt,
		invoice.ActualPaymentDate,
		invoice.Metadata,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) FindAllByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("customer_id = ?", customerID).
		Order("due_at asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) FindAllOutstanding(ctx context.Context, db *gorm.DB) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("status <> ?", domain.InvoiceStatusPaid).
		Where("total_amount > paid_amount").
		Order("due_at asc, id asc").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
