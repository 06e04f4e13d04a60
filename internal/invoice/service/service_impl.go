package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/internal/invoice/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Customers customerdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	customers customerdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		customers: p.Customers,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.Invoice{}, domain.ErrInvalidCustomerID
	}

	customer, err := s.customers.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to look up customer", zap.Error(err), zap.String("customer_id", customerID.String()))
		return domain.Invoice{}, domain.ErrInternal
	}
	if customer == nil {
		return domain.Invoice{}, domain.ErrCustomerNotFound
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceStatusOpen
	}
	if !status.Valid() {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}
	if req.TotalAmount < 0 || req.PaidAmount < 0 || req.PaidAmount > req.TotalAmount {
		return domain.Invoice{}, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()
	invoice := domain.Invoice{
		ID:                s.genID.Generate(),
		CustomerID:        customerID,
		Number:            strings.TrimSpace(req.Number),
		Status:            status,
		TotalAmount:       req.TotalAmount,
		PaidAmount:        req.PaidAmount,
		Currency:          strings.ToUpper(strings.TrimSpace(req.Currency)),
		DueAt:             req.DueAt,
		ActualPaymentDate: req.ActualPaymentDate,
		Metadata:          datatypes.JSONMap{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		s.log.Error("failed to insert invoice", zap.Error(err), zap.String("customer_id", customerID.String()))
		return domain.Invoice{}, domain.ErrInternal
	}

	return invoice, nil
}

func (s *Service) ListByCustomer(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidCustomerID
	}

	customer, err := s.customers.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to look up customer", zap.Error(err), zap.String("customer_id", customerID.String()))
		return domain.ListInvoiceResponse{}, domain.ErrInternal
	}
	if customer == nil {
		return domain.ListInvoiceResponse{}, domain.ErrCustomerNotFound
	}

	invoices, err := s.repo.FindAllByCustomer(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to list invoices", zap.Error(err), zap.String("customer_id", customerID.String()))
		return domain.ListInvoiceResponse{}, domain.ErrInternal
	}

	return domain.ListInvoiceResponse{
		Invoices: invoices,
		Total:    len(invoices),
	}, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidCustomerID
	}
	return id, nil
}
