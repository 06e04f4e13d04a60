package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListRecordFilter struct {
	InvoiceID *snowflake.ID
	Sort      pagination.Sort
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *DebtWorkRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*DebtWorkRecord, error)
	FindByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, filter ListRecordFilter, page pagination.Pagination) ([]*DebtWorkRecord, int64, error)
	// FindAllByCustomer returns the complete record set for stats
	// aggregation, bypassing pagination.
	FindAllByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]DebtWorkRecord, error)
	// Update applies the given column set to one record and reports the
	// number of rows touched.
	Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
