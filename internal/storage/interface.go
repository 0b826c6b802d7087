package storage

import "github.com/Tholomir/ChronoRex/internal/models"

// Provider is the diary store. Both backends implement it.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Check-ins, keyed by date
	SaveDay(models.Day) error
	GetDay(date string) (models.Day, error)
	GetAllDays() ([]models.Day, error)
	DeleteDay(date string) error

	// Symptoms
	AddSymptom(models.SymptomEntry) error
	GetAllSymptoms() ([]models.SymptomEntry, error)
	DeleteSymptom(id string) error

	// Activities
	AddActivity(models.ActivityEntry) error
	GetAllActivities() ([]models.ActivityEntry, error)
	DeleteActivity(id string) error

	// Weekly reviews
	SaveWeeklyReview(models.WeeklyReview) error
	// GetLatestWeeklyReview returns the most recently generated review, or nil when none is stored.
	GetLatestWeeklyReview() (*models.WeeklyReview, error)
	GetAllWeeklyReviews() ([]models.WeeklyReview, error)
	// MarkWeeklyReviewSeen clears the nudge flag. It only applies to the latest review.
	MarkWeeklyReviewSeen(id string) error
}
