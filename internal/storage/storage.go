package storage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load before Init has created the store
	ErrNotInitialized = errors.New("storage not initialized")
)

// NotFound wraps ErrNotFound with the kind and key of the missing record.
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// IsPostgresTarget reports whether target is a PostgreSQL URL rather than a SQLite path.
func IsPostgresTarget(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string carries a password,
// either in URL userinfo or as a DSN password= pair.
func HasEmbeddedCredentials(connStr string) bool {
	if IsPostgresTarget(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if _, set := u.User.Password(); set {
			return true
		}
		return u.Query().Has("password")
	}
	for _, pair := range strings.Fields(connStr) {
		key, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "password") {
			return true
		}
	}
	return false
}

// Snapshot is a full read of the diary records used by analytics and export.
type Snapshot struct {
	Days       []models.Day
	Symptoms   []models.SymptomEntry
	Activities []models.ActivityEntry
}

// LoadSnapshot reads every day, symptom and activity from p.
func LoadSnapshot(p Provider) (Snapshot, error) {
	days, err := p.GetAllDays()
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading days: %w", err)
	}
	symptoms, err := p.GetAllSymptoms()
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading symptoms: %w", err)
	}
	activities, err := p.GetAllActivities()
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading activities: %w", err)
	}
	return Snapshot{Days: days, Symptoms: symptoms, Activities: activities}, nil
}
