package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (id, name, email, phone, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Name,
		customer.Email,
		customer.Phone,
		customer.Metadata,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, metadata, created_at, updated_at
		 FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.Customer, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*domain.Customer
	err := page.Apply(stmt).
		Order("created_at desc, id desc").
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 1, nil
	}
	result := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).Exec(`DELETE FROM customers WHERE id = ?`, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
