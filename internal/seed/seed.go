package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	debtworkdomain "github.com/smallbiznis/collectra/internal/debtwork/domain"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EnsureDemoData seeds one customer with an overdue invoice and a call record
// so a fresh local install has something to score.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		due := now.AddDate(0, 0, -45)

		customer := customerdomain.Customer{
			ID:        node.Generate(),
			Name:      "Acme Trading",
			Email:     "billing@acme.example",
			Metadata:  datatypes.JSONMap{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		invoice := invoicedomain.Invoice{
			ID:          node.Generate(),
			CustomerID:  customer.ID,
			Number:      "INV-0001",
			Status:      invoicedomain.InvoiceStatusOverdue,
			TotalAmount: 250_000,
			PaidAmount:  0,
			Currency:    "USD",
			DueAt:       &due,
			Metadata:    datatypes.JSONMap{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		record := debtworkdomain.DebtWorkRecord{
			ID:          node.Generate(),
			CustomerID:  customer.ID,
			InvoiceID:   &invoice.ID,
			ActionType:  debtworkdomain.ActionCall,
			ActionDate:  now.AddDate(0, 0, -7),
			PerformedBy: node.Generate(),
			Result:      debtworkdomain.ResultPromisedPay,
			Description: "Debtor promised payment within two weeks",
			Metadata:    datatypes.JSONMap{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.Create(&record).Error
	})
}
