package models

import "time"

// SymptomEntry is a single symptom logged during a day
type SymptomEntry struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"` // YYYY-MM-DD format
	Time     time.Time `json:"time"`
	Name     string    `json:"name"`
	Severity int       `json:"severity"` // 1-10
	Note     *string   `json:"note,omitempty"`
}

// ActivityEntry is a single activity logged during a day
type ActivityEntry struct {
	ID                  string    `json:"id"`
	Date                string    `json:"date"` // YYYY-MM-DD format
	Time                time.Time `json:"time"`
	Type                string    `json:"type"`
	DurationMin         *int      `json:"duration_min,omitempty"`
	PerceivedExhaustion int       `json:"perceived_exhaustion"` // 1-10
	Note                *string   `json:"note,omitempty"`
}
