package system

import (
	"encoding/json"
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/models"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" help:"Show database and log paths."`
	DumpDay      DebugDumpDayCmd      `cmd:"" help:"Dump a check-in and its entries as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpReview   DebugDumpReviewCmd   `cmd:"" help:"Dump the latest weekly review as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.ConfigFile,
		"log":    logger.Path(),
	})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD, today or yesterday)."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Store.GetDay(date)
	if err != nil {
		return fmt.Errorf("failed to get check-in: %w", err)
	}

	symptoms, err := ctx.Store.GetAllSymptoms()
	if err != nil {
		return fmt.Errorf("failed to get symptoms: %w", err)
	}
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}

	output := map[string]any{
		"day":        day,
		"fatigue":    day.Fatigue(),
		"symptoms":   filterSymptoms(symptoms, date),
		"activities": filterActivities(activities, date),
	}
	return printJSON(output)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}

type DebugDumpReviewCmd struct{}

func (cmd *DebugDumpReviewCmd) Run(ctx *cli.Context) error {
	latest, err := ctx.Store.GetLatestWeeklyReview()
	if err != nil {
		return fmt.Errorf("failed to get weekly review: %w", err)
	}
	return printJSON(latest)
}

func filterSymptoms(entries []models.SymptomEntry, date string) []models.SymptomEntry {
	out := []models.SymptomEntry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

func filterActivities(entries []models.ActivityEntry, date string) []models.ActivityEntry {
	out := []models.ActivityEntry{}
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}
