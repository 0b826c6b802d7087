package analytics

import "github.com/Tholomir/ChronoRex/internal/models"

// InsightsResult is either EmptyInsights or ReadyInsights. Callers switch on the concrete type.
type InsightsResult interface {
	isInsightsResult()
}

// EmptyInsights means there is no check-in history to analyze
type EmptyInsights struct{}

// ReadyInsights holds the computed trend and correlations
type ReadyInsights struct {
	Trend        *TrendInsights        `json:"trend,omitempty"`
	Correlations []CorrelationInsights `json:"correlations"`
	GeneratedAt  string                `json:"generated_at"` // latest metric date, YYYY-MM-DD
}

func (EmptyInsights) isInsightsResult() {}
func (ReadyInsights) isInsightsResult() {}

// Calculate runs the full insights pipeline over a snapshot of the diary.
func Calculate(days []models.Day, symptoms []models.SymptomEntry, activities []models.ActivityEntry) InsightsResult {
	if len(days) == 0 {
		return EmptyInsights{}
	}

	metrics := BuildDailyMetrics(days, symptoms, activities)
	generatedAt, ok := latestDate(metrics)
	if !ok {
		return EmptyInsights{}
	}

	return ReadyInsights{
		Trend:        BuildTrend(metrics),
		Correlations: BuildCorrelations(metrics),
		GeneratedAt:  generatedAt,
	}
}
