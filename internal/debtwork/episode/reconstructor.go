// Package episode derives debt episodes from a customer's invoice history.
// An episode is a continuous period during which an invoice was overdue,
// from its due date to payment, or to "now" while unresolved.
package episode

import (
	"time"

	invoicedomain "github.com/smallbiznis/collectra/internal/invoice/domain"
)

// Episode is one overdue period. EndDate is nil while the episode is open.
type Episode struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Days      int        `json:"days"`
}

// Stats summarizes a customer's episode set.
type Stats struct {
	TotalEpisodes         int
	AverageResolutionDays int
	LongestDays           int
}

// Reconstruct classifies each invoice against now:
//   - unpaid and past due: open episode, days elapsed since due date
//   - paid after the due date: closed episode, days between due date and payment
//   - paid on time or not yet due: no episode
//
// Invoices without a due date are skipped. Partial payments do not shorten an
// episode; only the recorded payment date closes it.
func Reconstruct(invoices []invoicedomain.Invoice, now time.Time) []Episode {
	episodes := make([]Episode, 0, len(invoices))
	for _, inv := range invoices {
		if inv.DueAt == nil || inv.DueAt.IsZero() {
			continue
		}
		due := *inv.DueAt

		if inv.Status != invoicedomain.InvoiceStatusPaid {
			if due.Before(now) {
				episodes = append(episodes, Episode{
					StartDate: due,
					Days:      daysBetween(due, now),
				})
			}
			continue
		}

		if inv.ActualPaymentDate == nil {
			continue
		}
		paid := *inv.ActualPaymentDate
		if due.Before(paid) {
			end := paid
			episodes = append(episodes, Episode{
				StartDate: due,
				EndDate:   &end,
				Days:      daysBetween(due, paid),
			})
		}
	}
	return episodes
}

// Summarize reduces an episode set to the counts the risk scorer consumes.
// The average is rounded to the nearest whole day.
func Summarize(episodes []Episode) Stats {
	stats := Stats{TotalEpisodes: len(episodes)}
	if len(episodes) == 0 {
		return stats
	}

	total := 0
	for _, ep := range episodes {
		total += ep.Days
		if ep.Days > stats.LongestDays {
			stats.LongestDays = ep.Days
		}
	}
	stats.AverageResolutionDays = (total + len(episodes)/2) / len(episodes)
	return stats
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from) / (24 * time.Hour))
}
