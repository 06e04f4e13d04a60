package service

import (
	"context"
	"time"

	"github.com/smallbiznis/collectra/internal/clock"
	"github.com/smallbiznis/collectra/internal/config"
	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
	"github.com/smallbiznis/collectra/internal/receivables/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Config   *config.ReceivablesConfigHolder
	Invoices invoicedomain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	config   *config.ReceivablesConfigHolder
	invoices invoicedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("receivables.service"),
		clock:    p.Clock,
		config:   p.Config,
		invoices: p.Invoices,
	}
}

func (s *Service) AgingReport(ctx context.Context) (domain.AgingReport, error) {
	invoices, err := s.invoices.FindAllOutstanding(ctx, s.db)
	if err != nil {
		s.log.Error("failed to load outstanding invoices", zap.Error(err))
		return domain.AgingReport{}, domain.ErrInternal
	}

	report := BuildAgingReport(invoices, s.config.Get().AgingBuckets, s.clock.Now())
	return report, nil
}

// BuildAgingReport assigns every outstanding invoice to the first bucket
// whose day range contains its age. Invoices not yet due count as age zero.
func BuildAgingReport(invoices []invoicedomain.Invoice, buckets []config.AgingBucket, now time.Time) domain.AgingReport {
	report := domain.AgingReport{
		Buckets: make([]domain.AgingBucketSummary, 0, len(buckets)),
	}
	for _, b := range buckets {
		report.Buckets = append(report.Buckets, domain.AgingBucketSummary{
			Label:   b.Label,
			MinDays: b.MinDays,
			MaxDays: b.MaxDays,
		})
	}

	for _, inv := range invoices {
		outstanding := inv.Outstanding()
		if outstanding <= 0 {
			continue
		}

		age := 0
		if inv.DueAt != nil && inv.DueAt.Before(now) {
			age = int(now.Sub(*inv.DueAt) / (24 * time.Hour))
		}

		for i, b := range buckets {
			if age < b.MinDays {
				continue
			}
			if b.MaxDays != nil && age > *b.MaxDays {
				continue
			}
			report.Buckets[i].InvoiceCount++
			report.Buckets[i].Outstanding += outstanding
			break
		}

		report.TotalOutstanding += outstanding
		report.TotalInvoices++
	}

	return report
}
