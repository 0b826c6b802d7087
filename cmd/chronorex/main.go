package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/cli/backups"
	"github.com/Tholomir/ChronoRex/internal/cli/diary"
	"github.com/Tholomir/ChronoRex/internal/cli/insights"
	"github.com/Tholomir/ChronoRex/internal/cli/settings"
	"github.com/Tholomir/ChronoRex/internal/cli/system"
	"github.com/Tholomir/ChronoRex/internal/config"
	"github.com/Tholomir/ChronoRex/internal/constants"
	chronoerrors "github.com/Tholomir/ChronoRex/internal/errors"
	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/review"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `name:"db" help:"SQLite database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring, CHRONOREX_DB_CONNECTION or .pgpass instead." type:"string"`
	Config  string `help:"Config file path." type:"path" default:"${config_file}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd   `cmd:"" help:"Initialize chronorex storage."`
	Checkin diary.CheckinCmd `cmd:"" help:"Log or update the morning check-in."`
	Day     struct {
		Show   diary.DayShowCmd   `cmd:"" help:"Show a check-in with its symptoms and activities." default:"withargs"`
		Delete diary.DayDeleteCmd `cmd:"" help:"Delete a check-in."`
	} `cmd:"" help:"Inspect check-ins."`
	Symptom struct {
		Add    diary.SymptomAddCmd    `cmd:"" help:"Log a symptom."`
		List   diary.SymptomListCmd   `cmd:"" help:"List logged symptoms."`
		Delete diary.SymptomDeleteCmd `cmd:"" help:"Delete a symptom entry."`
	} `cmd:"" help:"Manage symptom entries."`
	Activity struct {
		Add    diary.ActivityAddCmd    `cmd:"" help:"Log an activity."`
		List   diary.ActivityListCmd   `cmd:"" help:"List logged activities."`
		Delete diary.ActivityDeleteCmd `cmd:"" help:"Delete an activity entry."`
	} `cmd:"" help:"Manage activity entries."`
	Insights insights.InsightsCmd `cmd:"" help:"Show the fatigue trend and correlations."`
	Review   struct {
		Show    insights.ReviewShowCmd    `cmd:"" help:"Show the latest weekly review." default:"1"`
		Refresh insights.ReviewRefreshCmd `cmd:"" help:"Generate a weekly review if one is due."`
		Seen    insights.ReviewSeenCmd    `cmd:"" help:"Mark a weekly review as seen."`
		List    insights.ReviewListCmd    `cmd:"" help:"List stored weekly reviews."`
		Status  insights.ReviewStatusCmd  `cmd:"" help:"Show whether a weekly review is due."`
	} `cmd:"" help:"Weekly reviews."`
	Export struct {
		CSV    insights.ExportCSVCmd    `cmd:"" name:"csv" help:"Export all data as CSV files."`
		Report insights.ExportReportCmd `cmd:"" help:"Export an insights report as Markdown and HTML."`
	} `cmd:"" help:"Export diary data."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	DBConnection struct {
		Set    system.DBConnectionSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.DBConnectionGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.DBConnectionDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.DBConnectionStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" name:"db-connection" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Doctor   system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// noStoreCommands open the database themselves, or never touch it.
var noStoreCommands = map[string]bool{
	"init":          true,
	"db-connection": true,
	"doctor":        true,
}

// nudgeCommands print the weekly review banner after running.
var nudgeCommands = map[string]bool{
	"checkin":  true,
	"day":      true,
	"symptom":  true,
	"activity": true,
	"insights": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal health diary: morning check-ins, symptoms, activities and fatigue insights"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		chronoerrors.Fatal(err)
	}
	debug := CLI.Debug || cfg.Debug
	if err := logger.Init(logger.Config{
		Debug:      debug,
		ConfigDir:  config.Dir(CLI.Config),
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}); err != nil {
		chronoerrors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	target := cli.ResolveTarget(CLI.DB, cfg)
	logger.Debug("Resolved database", "source", target.Source, "postgres", target.IsPostgres())
	store, err := cli.OpenStore(target)
	if err != nil {
		chronoerrors.Fatal(err)
	}

	command := strings.Fields(ctx.Command())[0]
	if !noStoreCommands[command] {
		if err := store.Load(); err != nil {
			chronoerrors.Fatal(chronoerrors.WithHint(err, "run 'chronorex init' to create the database"))
		}
	}

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigFile: CLI.Config,
		Clock:      utils.SystemClock{},
	}

	err = ctx.Run(appCtx)
	if err == nil && nudgeCommands[command] {
		printNudge(appCtx)
	}
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close database", "error", closeErr)
	}
	chronoerrors.Fatal(err)
}

func printNudge(ctx *cli.Context) {
	status, err := review.NewService(ctx.Store, ctx.Clock).Status()
	if err != nil {
		logger.Debug("Weekly review status unavailable", "error", err)
		return
	}
	if banner := cli.RenderNudge(status); banner != "" {
		fmt.Println()
		fmt.Println(banner)
	}
}
