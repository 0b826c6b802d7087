package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/review"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/storage/sqlite"
	"github.com/Tholomir/ChronoRex/internal/utils"
	"github.com/Tholomir/ChronoRex/internal/validation"
)

type DoctorCmd struct{}

// errWarning marks a check result that is reported but does not fail the run.
var errWarning = errors.New("warning")

type check struct {
	name  string
	needs bool // requires a reachable database
	run   func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	checks := []check{
		{"Schema version", true, checkSchemaVersion},
		{"Backups present", false, checkBackupsPresent},
		{"Data validation", true, checkValidation},
		{"Clock/timezone", true, checkClockTimezone},
		{"Weekly review", true, checkWeeklyReview},
	}

	for _, c := range checks {
		if c.needs && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errWarning):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %s\n", strings.TrimSuffix(err.Error(), ": "+errWarning.Error()))
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func warnf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errWarning)...)
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

func checkSchemaVersion(ctx *cli.Context) error {
	versioned, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := versioned.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'chronorex init')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return warnf("%v", err)
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found - consider creating one with 'chronorex backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}
	report := validation.ValidateDataset(snap.Days, snap.Symptoms, snap.Activities)

	var invalid, orphans []string
	for _, issue := range report.Issues {
		if issue.Type == validation.IssueInvalidRecord {
			invalid = append(invalid, issue.Description)
		} else {
			orphans = append(orphans, issue.Description)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%d invalid records:\n     %s", len(invalid), strings.Join(invalid, "\n     "))
	}
	if len(orphans) > 0 {
		return warnf("%s", strings.Join(orphans, "\n   "))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02T15:04:05Z07:00"))
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return checkSettings(settings)
}

func checkSettings(settings models.Settings) error {
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone setting %q", settings.Timezone)
	}
	if !utils.ValidateTimeFormat(settings.ReminderTime) {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", settings.ReminderTime)
	}
	return nil
}

func checkWeeklyReview(ctx *cli.Context) error {
	status, err := review.NewService(ctx.Store, ctx.Clock).Status()
	if err != nil {
		return err
	}
	if status.Due {
		return warnf("a weekly review is due - run 'chronorex review refresh'")
	}
	return nil
}
