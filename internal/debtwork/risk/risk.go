// Package risk turns a customer's collection history into a bounded score
// and a discrete tier. Scoring is a pure function over in-memory aggregates
// so it can be tested without any persistence.
package risk

import (
	"time"

	"github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/smallbiznis/collectra/internal/debtwork/episode"
)

// ActionStats summarizes a customer's debt-work record stream.
type ActionStats struct {
	TotalRecords      int
	TotalCalls        int
	TotalLegalActions int
	LastContactDate   *time.Time
	// ContactSuccessRate is the fraction of calls with a constructive
	// outcome. With zero calls it is 1.0: no evidence of failed contact.
	ContactSuccessRate float64
}

// AggregateActions reduces the full record set to counts and timestamps.
func AggregateActions(records []domain.DebtWorkRecord) ActionStats {
	stats := ActionStats{TotalRecords: len(records)}

	successfulCalls := 0
	for _, rec := range records {
		if rec.ActionType == domain.ActionCall {
			stats.TotalCalls++
			if rec.Result.IsSuccessfulContact() {
				successfulCalls++
			}
		}
		if rec.ActionType.IsLegal() {
			stats.TotalLegalActions++
		}
		if rec.ActionType.IsContact() {
			if stats.LastContactDate == nil || rec.ActionDate.After(*stats.LastContactDate) {
				contact := rec.ActionDate
				stats.LastContactDate = &contact
			}
		}
	}

	if stats.TotalCalls == 0 {
		stats.ContactSuccessRate = 1.0
	} else {
		stats.ContactSuccessRate = float64(successfulCalls) / float64(stats.TotalCalls)
	}

	return stats
}

// Score combines episode and action aggregates into [0, 100]. Five factors
// contribute independently capped buckets of 25+20+20+20+15; the clamp at
// the end is defensive only.
func Score(ep episode.Stats, act ActionStats) int {
	score := episodeCountPoints(ep.TotalEpisodes) +
		resolutionDaysPoints(ep.AverageResolutionDays) +
		longestDebtPoints(ep.LongestDays) +
		legalActionPoints(act.TotalLegalActions) +
		contactRatePoints(act.ContactSuccessRate)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Classify maps a score to its tier. Boundary values belong to the lower
// tier: exactly 30 is LOW, 60 MEDIUM, 80 HIGH.
func Classify(score int) domain.RiskLevel {
	switch {
	case score <= 30:
		return domain.RiskLow
	case score <= 60:
		return domain.RiskMedium
	case score <= 80:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

func episodeCountPoints(episodes int) int {
	switch {
	case episodes <= 0:
		return 0
	case episodes == 1:
		return 5
	case episodes <= 3:
		return 10
	case episodes <= 5:
		return 15
	default:
		return 25
	}
}

func resolutionDaysPoints(days int) int {
	switch {
	case days <= 0:
		return 0
	case days <= 15:
		return 5
	case days <= 30:
		return 10
	case days <= 60:
		return 15
	default:
		return 20
	}
}

func longestDebtPoints(days int) int {
	switch {
	case days <= 0:
		return 0
	case days <= 30:
		return 5
	case days <= 60:
		return 10
	case days <= 90:
		return 15
	default:
		return 20
	}
}

func legalActionPoints(actions int) int {
	switch {
	case actions <= 0:
		return 0
	case actions == 1:
		return 10
	case actions <= 3:
		return 15
	default:
		return 20
	}
}

func contactRatePoints(rate float64) int {
	switch {
	case rate >= 0.8:
		return 0
	case rate >= 0.5:
		return 5
	case rate >= 0.3:
		return 10
	default:
		return 15
	}
}
