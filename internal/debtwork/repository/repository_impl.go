package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/smallbiznis/collectra/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.DebtWorkRecord) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO debt_work_records (id, customer_id, invoice_id, action_type, action_date, performed_by, result, description, next_action_date, amount, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.CustomerID,
		record.InvoiceID,
		record.ActionType,
		record.ActionDate,
		record.PerformedBy,
		record.Result,
		record.Description,
		record.NextActionDate,
		record.Amount,
		record.Metadata,
		record.CreatedAt,
		record.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.DebtWorkRecord, error) {
	var record domain.DebtWorkRecord
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM debt_work_records WHERE id = ?`,
		id,
	).Scan(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) FindByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID, filter domain.ListRecordFilter, page pagination.Pagination) ([]*domain.DebtWorkRecord, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.DebtWorkRecord{}).
		Where("customer_id = ?", customerID)
	if filter.InvoiceID != nil {
		stmt = stmt.Where("invoice_id = ?", *filter.InvoiceID)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*domain.DebtWorkRecord
	err := page.Apply(stmt).
		Order(filter.Sort.OrderClause()).
		Order("id desc").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *repo) FindAllByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.DebtWorkRecord, error) {
	var records []domain.DebtWorkRecord
	err := db.WithContext(ctx).
		Model(&domain.DebtWorkRecord{}).
		Where("customer_id = ?", customerID).
		Order("action_date asc, id asc").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 1, nil
	}
	result := db.WithContext(ctx).
		Model(&domain.DebtWorkRecord{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM debt_work_records WHERE id = ?`, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
