package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/backup"
	"github.com/Tholomir/ChronoRex/internal/config"
	"github.com/Tholomir/ChronoRex/internal/keyring"
	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/review"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/storage/postgres"
	"github.com/Tholomir/ChronoRex/internal/storage/sqlite"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigFile string
	Clock      analytics.Clock
}

// PerformAutomaticBackup snapshots a SQLite database after a change. Failures are logged, never returned.
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.Backup.Automatic {
		return
	}
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath(), c.maxBackups())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func (c *Context) maxBackups() int {
	if c.Config == nil {
		return 0
	}
	return c.Config.Backup.MaxBackups
}

// BackupManager returns the backup manager for the current SQLite database.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.maxBackups()), nil
}

// Today returns the diary date for the current instant, honoring the timezone and
// before-4am settings.
func (c *Context) Today() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return utils.EntryDate(c.Clock.Now(), loc, settings.BeforeFourAmIsYesterday), nil
}

// ResolveDate accepts "", "today", "yesterday" or a YYYY-MM-DD date.
func (c *Context) ResolveDate(arg string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return c.Today()
	case "yesterday":
		today, err := c.Today()
		if err != nil {
			return "", err
		}
		return utils.AddDays(today, -1)
	}
	if !utils.ValidateDateFormat(arg) {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, 'today' or 'yesterday')", arg)
	}
	return arg, nil
}

// OffsetMinutes returns the current UTC offset in the configured timezone.
func (c *Context) OffsetMinutes() (int, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return 0, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return 0, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return utils.OffsetMinutes(c.Clock.Now(), loc), nil
}

// TargetSource names where the database target came from.
type TargetSource string

const (
	SourceFlag        TargetSource = "flag"
	SourceEnvironment TargetSource = "environment"
	SourceKeyring     TargetSource = "keyring"
	SourceConfig      TargetSource = "config"
)

// Target is a SQLite path or a PostgreSQL connection string.
type Target struct {
	Value  string
	Source TargetSource
}

// IsPostgres reports whether the target is a PostgreSQL URL or key=value DSN.
func (t Target) IsPostgres() bool {
	return storage.IsPostgresTarget(t.Value) || isKeyValueDSN(t.Value)
}

// isKeyValueDSN reports whether s is made only of key=value fields and names a host.
func isKeyValueDSN(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	hasHost := false
	for _, field := range fields {
		key, _, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return false
		}
		if strings.EqualFold(key, "host") {
			hasHost = true
		}
	}
	return hasHost
}

// ResolveTarget picks the database: an explicit --db wins, then CHRONOREX_DB_CONNECTION or the
// keyring, then the config file.
func ResolveTarget(flagValue string, cfg *config.Config) Target {
	if flagValue != "" {
		return Target{Value: flagValue, Source: SourceFlag}
	}

	connStr, source, err := keyring.ResolveConnectionString()
	if err == nil {
		if source == keyring.SourceEnv {
			return Target{Value: connStr, Source: SourceEnvironment}
		}
		return Target{Value: connStr, Source: SourceKeyring}
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}

	return Target{Value: cfg.Database, Source: SourceConfig}
}

// OpenStore builds the store for t without connecting. Passwords are only accepted from the
// environment or the keyring.
func OpenStore(t Target) (storage.Provider, error) {
	if !t.IsPostgres() {
		return sqlite.New(config.ExpandPath(t.Value)), nil
	}

	err := postgres.ValidateConnString(t.Value)
	switch {
	case err == nil:
	case errors.Is(err, postgres.ErrEmbeddedCredentials):
		if t.Source == SourceFlag || t.Source == SourceConfig {
			return nil, EmbeddedCredentialsError()
		}
	default:
		return nil, err
	}
	return postgres.New(t.Value), nil
}

// EntryTime combines a diary date with an optional HH:MM time in the configured timezone.
// Without a time, today's entries use the current instant and older ones use local noon.
func (c *Context) EntryTime(date, at string) (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}

	if at == "" {
		today := utils.EntryDate(c.Clock.Now(), loc, settings.BeforeFourAmIsYesterday)
		if date == today {
			return c.Clock.Now(), nil
		}
		at = "12:00"
	}

	clock, err := utils.ParseTime(at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", at, err)
	}
	day, err := utils.ParseDate(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// ParseTags splits comma separated tags, trimming blanks.
func ParseTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// AfterDiaryChange backs up the database and brings the weekly review up to date.
// Neither step fails the command that changed the diary.
func (c *Context) AfterDiaryChange() {
	c.PerformAutomaticBackup()

	result, err := review.NewService(c.Store, c.Clock).Refresh(false)
	if err != nil {
		logger.Warn("Weekly review refresh failed", "error", err)
		return
	}
	switch result.Outcome {
	case review.OutcomeCreated, review.OutcomeReplaced:
		fmt.Printf("✓ New weekly review for %s to %s. Run 'chronorex review show'.\n",
			result.Review.StartDate, result.Review.EndDate)
	}
}
