package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	// FindAllByCustomer returns the customer's full invoice history,
	// unfiltered. Episode reconstruction needs the complete set.
	FindAllByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Invoice, error)
	FindAllOutstanding(ctx context.Context, db *gorm.DB) ([]Invoice, error)
}
