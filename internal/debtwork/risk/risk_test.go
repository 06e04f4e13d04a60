package risk

import (
	"testing"
	"time"

	"github.com/smallbiznis/collectra/internal/debtwork/domain"
	"github.com/smallbiznis/collectra/internal/debtwork/episode"
	"github.com/stretchr/testify/assert"
)

func TestScoreZeroHistory(t *testing.T) {
	score := Score(episode.Stats{}, ActionStats{ContactSuccessRate: 1.0})
	assert.Equal(t, 0, score)
	assert.Equal(t, domain.RiskLow, Classify(score))
}

func TestScoreMaxRisk(t *testing.T) {
	ep := episode.Stats{
		TotalEpisodes:         6,
		AverageResolutionDays: 70,
		LongestDays:           95,
	}
	act := ActionStats{
		TotalCalls:         10,
		TotalLegalActions:  4,
		ContactSuccessRate: 0.2,
	}

	score := Score(ep, act)
	assert.Equal(t, 100, score)
	assert.Equal(t, domain.RiskCritical, Classify(score))
}

func TestScoreBuckets(t *testing.T) {
	tests := []struct {
		name string
		ep   episode.Stats
		act  ActionStats
		want int
	}{
		{"one episode", episode.Stats{TotalEpisodes: 1}, perfectContact(), 5},
		{"two episodes", episode.Stats{TotalEpisodes: 2}, perfectContact(), 10},
		{"three episodes", episode.Stats{TotalEpisodes: 3}, perfectContact(), 10},
		{"five episodes", episode.Stats{TotalEpisodes: 5}, perfectContact(), 15},
		{"six episodes", episode.Stats{TotalEpisodes: 6}, perfectContact(), 25},
		{"avg 15 days", episode.Stats{AverageResolutionDays: 15}, perfectContact(), 5},
		{"avg 16 days", episode.Stats{AverageResolutionDays: 16}, perfectContact(), 10},
		{"avg 30 days", episode.Stats{AverageResolutionDays: 30}, perfectContact(), 10},
		{"avg 31 days", episode.Stats{AverageResolutionDays: 31}, perfectContact(), 15},
		{"avg 60 days", episode.Stats{AverageResolutionDays: 60}, perfectContact(), 15},
		{"avg 61 days", episode.Stats{AverageResolutionDays: 61}, perfectContact(), 20},
		{"longest 30 days", episode.Stats{LongestDays: 30}, perfectContact(), 5},
		{"longest 31 days", episode.Stats{LongestDays: 31}, perfectContact(), 10},
		{"longest 60 days", episode.Stats{LongestDays: 60}, perfectContact(), 10},
		{"longest 90 days", episode.Stats{LongestDays: 90}, perfectContact(), 15},
		{"longest 91 days", episode.Stats{LongestDays: 91}, perfectContact(), 20},
		{"one legal action", episode.Stats{}, withLegal(1), 10},
		{"three legal actions", episode.Stats{}, withLegal(3), 15},
		{"four legal actions", episode.Stats{}, withLegal(4), 20},
		{"contact rate 0.8", episode.Stats{}, withRate(0.8), 0},
		{"contact rate 0.5", episode.Stats{}, withRate(0.5), 5},
		{"contact rate 0.3", episode.Stats{}, withRate(0.3), 10},
		{"contact rate 0.29", episode.Stats{}, withRate(0.29), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.ep, tt.act))
		})
	}
}

func TestScoreBounded(t *testing.T) {
	extreme := episode.Stats{
		TotalEpisodes:         1000,
		AverageResolutionDays: 10000,
		LongestDays:           10000,
	}
	act := ActionStats{
		TotalCalls:         100,
		TotalLegalActions:  100,
		ContactSuccessRate: 0,
	}

	score := Score(extreme, act)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestScoreMonotonicPerFactor(t *testing.T) {
	base := episode.Stats{TotalEpisodes: 2, AverageResolutionDays: 20, LongestDays: 40}
	act := ActionStats{TotalCalls: 4, TotalLegalActions: 1, ContactSuccessRate: 0.6}
	baseScore := Score(base, act)

	worseEpisodes := base
	worseEpisodes.TotalEpisodes = 6
	assert.GreaterOrEqual(t, Score(worseEpisodes, act), baseScore)

	worseAvg := base
	worseAvg.AverageResolutionDays = 80
	assert.GreaterOrEqual(t, Score(worseAvg, act), baseScore)

	worseLongest := base
	worseLongest.LongestDays = 120
	assert.GreaterOrEqual(t, Score(base, ActionStats{
		TotalCalls:         act.TotalCalls,
		TotalLegalActions:  5,
		ContactSuccessRate: act.ContactSuccessRate,
	}), baseScore)
	assert.GreaterOrEqual(t, Score(worseLongest, act), baseScore)
}

func TestClassifyCoversAllScores(t *testing.T) {
	for score := 0; score <= 100; score++ {
		level := Classify(score)
		switch {
		case score <= 30:
			assert.Equal(t, domain.RiskLow, level, "score %d", score)
		case score <= 60:
			assert.Equal(t, domain.RiskMedium, level, "score %d", score)
		case score <= 80:
			assert.Equal(t, domain.RiskHigh, level, "score %d", score)
		default:
			assert.Equal(t, domain.RiskCritical, level, "score %d", score)
		}
	}
}

func TestAggregateActionsCounts(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	records := []domain.DebtWorkRecord{
		{ActionType: domain.ActionCall, Result: domain.ResultContacted, ActionDate: day(0)},
		{ActionType: domain.ActionCall, Result: domain.ResultNoContact, ActionDate: day(1)},
		{ActionType: domain.ActionEmail, Result: domain.ResultNoContact, ActionDate: day(5)},
		{ActionType: domain.ActionLetter, Result: domain.ResultCompleted, ActionDate: day(3)},
		{ActionType: domain.ActionSMS, Result: domain.ResultNoContact, ActionDate: day(9)},
		{ActionType: domain.ActionClaim, Result: domain.ResultInProgress, ActionDate: day(2)},
		{ActionType: domain.ActionCourtClaim, Result: domain.ResultInProgress, ActionDate: day(4)},
	}

	stats := AggregateActions(records)
	assert.Equal(t, 7, stats.TotalRecords)
	assert.Equal(t, 2, stats.TotalCalls)
	assert.Equal(t, 2, stats.TotalLegalActions)
	assert.InDelta(t, 0.5, stats.ContactSuccessRate, 1e-9)

	// SMS is not a contact-type action, so the email on day 5 wins.
	if assert.NotNil(t, stats.LastContactDate) {
		assert.Equal(t, day(5), *stats.LastContactDate)
	}
}

func TestAggregateActionsNoCalls(t *testing.T) {
	records := []domain.DebtWorkRecord{
		{ActionType: domain.ActionClaim, Result: domain.ResultInProgress, ActionDate: time.Now()},
	}

	stats := AggregateActions(records)
	assert.Equal(t, 0, stats.TotalCalls)
	// No calls means no evidence of failed contact.
	assert.Equal(t, 1.0, stats.ContactSuccessRate)
	assert.Nil(t, stats.LastContactDate)
}

func TestAggregateActionsEmpty(t *testing.T) {
	stats := AggregateActions(nil)
	assert.Equal(t, 0, stats.TotalRecords)
	assert.Equal(t, 1.0, stats.ContactSuccessRate)
	assert.Equal(t, 0, Score(episode.Stats{}, stats))
}

func perfectContact() ActionStats {
	return ActionStats{ContactSuccessRate: 1.0}
}

func withLegal(n int) ActionStats {
	return ActionStats{TotalLegalActions: n, ContactSuccessRate: 1.0}
}

func withRate(rate float64) ActionStats {
	return ActionStats{TotalCalls: 10, ContactSuccessRate: rate}
}
