package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/pkg/db"
	"github.com/smallbiznis/collectra/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(req.Phone),
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Customer{}, domain.ErrDuplicateEmail
		}
		s.log.Error("failed to insert customer", zap.Error(err))
		return domain.Customer{}, domain.ErrInternal
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		s.log.Error("failed to look up customer", zap.Error(err), zap.String("customer_id", id.String()))
		return domain.Customer{}, domain.ErrInternal
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	page := pagination.Pagination{
		Limit:  req.Limit,
		Offset: req.Offset,
	}.Normalize()

	filter := domain.ListCustomerFilter{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}

	items, total, err := s.repo.List(ctx, s.db, filter, page)
	if err != nil {
		s.log.Error("failed to list customers", zap.Error(err))
		return domain.ListCustomerResponse{}, domain.ErrInternal
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	return domain.ListCustomerResponse{
		Customers: customers,
		Total:     total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Customer{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		s.log.Error("failed to look up customer", zap.Error(err), zap.String("customer_id", id.String()))
		return domain.Customer{}, domain.ErrInternal
	}
	if existing == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		fields["name"] = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email == "" || !strings.Contains(email, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		fields["email"] = email
	}
	if req.Phone != nil {
		fields["phone"] = strings.TrimSpace(*req.Phone)
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if _, err := s.repo.Update(ctx, s.db, id, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.Customer{}, domain.ErrDuplicateEmail
			}
			s.log.Error("failed to update customer", zap.Error(err), zap.String("customer_id", id.String()))
			return domain.Customer{}, domain.ErrInternal
		}
	}

	updated, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		s.log.Error("failed to reload customer", zap.Error(err), zap.String("customer_id", id.String()))
		return domain.Customer{}, domain.ErrInternal
	}
	if updated == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteCustomerRequest) error {
	id, err := s.parseID(req.ID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		s.log.Error("failed to delete customer", zap.Error(err), zap.String("customer_id", id.String()))
		return domain.ErrInternal
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
