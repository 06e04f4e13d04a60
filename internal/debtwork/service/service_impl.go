package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/collectra/internal/clock"
	customerdomain "github.com/smallbiznis/collectra/internal/customer/domain"
	"github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/smallbiznis/collectra/internal/debtwork/episode"
	"github.com/smallbiznis/collectra/internal/debtwork/risk"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"github.com/smallbiznis/collectra/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var historySortColumns = []string{"action_date", "created_at"}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Customers customerdomain.Repository
	Invoices  invoicedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	customers customerdomain.Repository
	invoices  invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("debtwork.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		customers: p.Customers,
		invoices:  p.Invoices,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRecordRequest) (domain.DebtWorkRecord, error) {
	customerID, err := s.requireCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}
	if req.PerformedBy == 0 {
		vErr := &domain.ValidationErrors{}
		vErr.Add("performed_by", "invalid_performed_by", "acting user is required")
		return domain.DebtWorkRecord{}, vErr
	}

	invoiceID, err := validatePayload(req.Payload)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}

	if invoiceID != nil {
		// Best effort: a missing invoice does not block creation, the
		// reference just gets flagged in the log.
		invoice, err := s.invoices.FindByID(ctx, s.db, *invoiceID)
		if err != nil {
			s.log.Warn("invoice lookup failed during record create",
				zap.Error(err),
				zap.String("customer_id", customerID.String()),
				zap.String("invoice_id", invoiceID.String()),
			)
		} else if invoice == nil || invoice.CustomerID != customerID {
			s.log.Warn("debt work record references unknown or foreign invoice",
				zap.String("customer_id", customerID.String()),
				zap.String("invoice_id", invoiceID.String()),
			)
		}
	}

	now := time.Now().UTC()
	record := domain.DebtWorkRecord{
		ID:             s.genID.Generate(),
		CustomerID:     customerID,
		InvoiceID:      invoiceID,
		ActionType:     req.Payload.ActionType,
		ActionDate:     req.Payload.ActionDate.UTC(),
		PerformedBy:    req.PerformedBy,
		Result:         req.Payload.Result,
		Description:    strings.TrimSpace(req.Payload.Description),
		NextActionDate: req.Payload.NextActionDate,
		Amount:         req.Payload.Amount,
		Metadata:       datatypes.JSONMap{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		s.log.Error("failed to insert debt work record",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return domain.DebtWorkRecord{}, domain.ErrInternal
	}

	return record, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetRecordRequest) (domain.DebtWorkRecord, error) {
	customerID, err := s.requireCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}

	record, err := s.requireOwnedRecord(ctx, customerID, req.RecordID)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}
	return *record, nil
}

func (s *Service) GetHistory(ctx context.Context, req domain.HistoryRequest) (domain.HistoryResponse, error) {
	customerID, err := s.requireCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	filter := domain.ListRecordFilter{
		Sort: pagination.ParseSort(req.SortBy, req.SortOrder, historySortColumns, pagination.Sort{
			Column:     "action_date",
			Descending: true,
		}),
	}
	if raw := strings.TrimSpace(req.InvoiceID); raw != "" {
		invoiceID, parseErr := snowflake.ParseString(raw)
		if parseErr != nil || invoiceID == 0 {
			vErr := &domain.ValidationErrors{}
			vErr.Add("invoice_id", "invalid_invoice_id", "invoice id is not a valid identifier")
			return domain.HistoryResponse{}, vErr
		}
		filter.InvoiceID = &invoiceID
	}

	page := pagination.Pagination{Limit: req.Limit, Offset: req.Offset}.Normalize()

	records, total, err := s.repo.FindByCustomer(ctx, s.db, customerID, filter, page)
	if err != nil {
		s.log.Error("failed to list debt work records",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return domain.HistoryResponse{}, domain.ErrInternal
	}

	stats, err := s.computeStats(ctx, customerID)
	if err != nil {
		return domain.HistoryResponse{}, err
	}

	items := make([]domain.DebtWorkRecord, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		items = append(items, *rec)
	}

	return domain.HistoryResponse{
		Records: items,
		Stats:   stats,
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRecordRequest) (domain.DebtWorkRecord, error) {
	customerID, err := s.requireCustomer(ctx, req.CustomerID)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}

	record, err := s.requireOwnedRecord(ctx, customerID, req.RecordID)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}

	fields, err := patchFields(req.Patch)
	if err != nil {
		return domain.DebtWorkRecord{}, err
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		affected, err := s.repo.Update(ctx, s.db, record.ID, fields)
		if err != nil {
			s.log.Error("failed to update debt work record",
				zap.Error(err),
				zap.String("customer_id", customerID.String()),
				zap.String("record_id", record.ID.String()),
			)
			return domain.DebtWorkRecord{}, domain.ErrInternal
		}
		if affected == 0 {
			// The record passed the ownership check moments ago. Losing it
			// mid-update is an inconsistency, not a no-op.
			s.log.Error("debt work record vanished during update",
				zap.String("customer_id", customerID.String()),
				zap.String("record_id", record.ID.String()),
			)
			return domain.DebtWorkRecord{}, domain.ErrInternal
		}
	}

	updated, err := s.repo.FindByID(ctx, s.db, record.ID)
	if err != nil {
		s.log.Error("failed to reload debt work record",
			zap.Error(err),
			zap.String("record_id", record.ID.String()),
		)
		return domain.DebtWorkRecord{}, domain.ErrInternal
	}
	if updated == nil {
		return domain.DebtWorkRecord{}, domain.ErrInternal
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, req domain.DeleteRecordRequest) error {
	customerID, err := s.requireCustomer(ctx, req.CustomerID)
	if err != nil {
		return err
	}

	record, err := s.requireOwnedRecord(ctx, customerID, req.RecordID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, record.ID)
	if err != nil {
		s.log.Error("failed to delete debt work record",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("record_id", record.ID.String()),
		)
		return domain.ErrInternal
	}
	if !deleted {
		s.log.Error("debt work record vanished during delete",
			zap.String("customer_id", customerID.String()),
			zap.String("record_id", record.ID.String()),
		)
		return domain.ErrInternal
	}
	return nil
}

// computeStats derives the customer's risk profile from a point-in-time
// snapshot of records and invoices. Nothing is cached; two calls on the same
// data return the same result.
func (s *Service) computeStats(ctx context.Context, customerID snowflake.ID) (domain.CustomerDebtWorkStats, error) {
	records, err := s.repo.FindAllByCustomer(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to load debt work records for stats",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return domain.CustomerDebtWorkStats{}, domain.ErrInternal
	}

	invoices, err := s.invoices.FindAllByCustomer(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to load invoices for stats",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return domain.CustomerDebtWorkStats{}, domain.ErrInternal
	}

	episodes := episode.Reconstruct(invoices, s.clock.Now())
	epStats := episode.Summarize(episodes)
	actStats := risk.AggregateActions(records)
	score := risk.Score(epStats, actStats)

	return domain.CustomerDebtWorkStats{
		TotalDebtWorkRecords:      actStats.TotalRecords,
		TotalCalls:                actStats.TotalCalls,
		TotalLegalActions:         actStats.TotalLegalActions,
		LastContactDate:           actStats.LastContactDate,
		TotalDebtEpisodes:         epStats.TotalEpisodes,
		AverageDebtResolutionDays: epStats.AverageResolutionDays,
		LongestDebtDays:           epStats.LongestDays,
		RiskScore:                 score,
		RiskLevel:                 risk.Classify(score),
	}, nil
}

func (s *Service) requireCustomer(ctx context.Context, raw string) (snowflake.ID, error) {
	customerID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || customerID == 0 {
		return 0, domain.ErrInvalidCustomerID
	}

	customer, err := s.customers.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to look up customer",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, domain.ErrInternal
	}
	if customer == nil {
		return 0, domain.ErrCustomerNotFound
	}
	return customerID, nil
}

func (s *Service) requireOwnedRecord(ctx context.Context, customerID snowflake.ID, raw string) (*domain.DebtWorkRecord, error) {
	recordID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || recordID == 0 {
		return nil, domain.ErrInvalidRecordID
	}

	record, err := s.repo.FindByID(ctx, s.db, recordID)
	if err != nil {
		s.log.Error("failed to look up debt work record",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
			zap.String("record_id", recordID.String()),
		)
		return nil, domain.ErrInternal
	}
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	if record.CustomerID != customerID {
		return nil, domain.ErrRecordOwnership
	}
	return record, nil
}

func validatePayload(p domain.RecordPayload) (*snowflake.ID, error) {
	vErr := &domain.ValidationErrors{}

	if !p.ActionType.Valid() {
		vErr.Add("action_type", "invalid_action_type", "unknown action type")
	}
	if !p.Result.Valid() {
		vErr.Add("result", "invalid_result", "unknown action result")
	}
	if p.ActionDate.IsZero() {
		vErr.Add("action_date", "invalid_action_date", "action date is required")
	}
	if p.Amount != nil && *p.Amount < 0 {
		vErr.Add("amount", "invalid_amount", "amount must not be negative")
	}

	var invoiceID *snowflake.ID
	if raw := strings.TrimSpace(p.InvoiceID); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil || parsed == 0 {
			vErr.Add("invoice_id", "invalid_invoice_id", "invoice id is not a valid identifier")
		} else {
			invoiceID = &parsed
		}
	}

	if vErr.HasErrors() {
		return nil, vErr
	}
	return invoiceID, nil
}

func patchFields(p domain.RecordPatch) (map[string]any, error) {
	vErr := &domain.ValidationErrors{}
	fields := map[string]any{}

	if p.ActionType != nil {
		if !p.ActionType.Valid() {
			vErr.Add("action_type", "invalid_action_type", "unknown action type")
		} else {
			fields["action_type"] = *p.ActionType
		}
	}
	if p.Result != nil {
		if !p.Result.Valid() {
			vErr.Add("result", "invalid_result", "unknown action result")
		} else {
			fields["result"] = *p.Result
		}
	}
	if p.ActionDate != nil {
		if p.ActionDate.IsZero() {
			vErr.Add("action_date", "invalid_action_date", "action date cannot be empty")
		} else {
			fields["action_date"] = p.ActionDate.UTC()
		}
	}
	if p.Amount != nil {
		if *p.Amount < 0 {
			vErr.Add("amount", "invalid_amount", "amount must not be negative")
		} else {
			fields["amount"] = *p.Amount
		}
	}
	if p.InvoiceID != nil {
		raw := strings.TrimSpace(*p.InvoiceID)
		if raw == "" {
			fields["invoice_id"] = nil
		} else {
			parsed, err := snowflake.ParseString(raw)
			if err != nil || parsed == 0 {
				vErr.Add("invoice_id", "invalid_invoice_id", "invoice id is not a valid identifier")
			} else {
				fields["invoice_id"] = parsed
			}
		}
	}
	if p.Description != nil {
		fields["description"] = strings.TrimSpace(*p.Description)
	}
	if p.NextActionDate != nil {
		fields["next_action_date"] = p.NextActionDate
	}

	if vErr.HasErrors() {
		return nil, vErr
	}
	return fields, nil
}
