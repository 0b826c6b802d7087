package models

import "time"

// WeeklyReview is a stored seven-day digest
type WeeklyReview struct {
	ID                    string    `json:"id"`
	StartDate             string    `json:"start_date"` // YYYY-MM-DD format
	EndDate               string    `json:"end_date"`   // YYYY-MM-DD format
	GeneratedAt           time.Time `json:"generated_at"`
	TrendHighlights       []string  `json:"trend_highlights"`
	CorrelationHighlights []string  `json:"correlation_highlights"`
	BestDay               *string   `json:"best_day,omitempty"`
	ToughestDay           *string   `json:"toughest_day,omitempty"`
	AdherenceSummary      string    `json:"adherence_summary"`
	NeedsInAppNudge       bool      `json:"needs_in_app_nudge"`
}
