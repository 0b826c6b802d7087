package diary

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/validation"
)

const listTimeFormat = "15:04"

func optionalNote(note string) *string {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil
	}
	return &note
}

// warnIfNoCheckIn tells the user an entry will not count until the day has a check-in.
func warnIfNoCheckIn(ctx *cli.Context, date string) {
	_, err := ctx.Store.GetDay(date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("No check-in for %s yet; this entry is left out of insights until you log one.", date)))
	}
}

type SymptomAddCmd struct {
	Name     string `arg:"" help:"Symptom name."`
	Severity int    `short:"s" required:"" help:"Severity, 1-10."`
	Note     string `help:"Optional note."`
	Date     string `help:"Date of the symptom (YYYY-MM-DD, today or yesterday)." default:"today"`
	At       string `help:"Time of day (HH:MM). Defaults to now for today."`
}

func (c *SymptomAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	at, err := ctx.EntryTime(date, c.At)
	if err != nil {
		return err
	}

	entry := models.SymptomEntry{
		ID:       uuid.New().String(),
		Date:     date,
		Time:     at,
		Name:     strings.TrimSpace(c.Name),
		Severity: c.Severity,
		Note:     optionalNote(c.Note),
	}
	if err := validation.ValidateSymptom(entry); err != nil {
		return fmt.Errorf("invalid symptom: %w", err)
	}
	if err := ctx.Store.AddSymptom(entry); err != nil {
		return fmt.Errorf("failed to add symptom: %w", err)
	}

	fmt.Printf("✓ Logged symptom %q (severity %d) on %s [%s]\n", entry.Name, entry.Severity, entry.Date, entry.ID)
	warnIfNoCheckIn(ctx, date)
	ctx.AfterDiaryChange()
	return nil
}

type SymptomListCmd struct {
	Date  string `help:"Only show entries for this date (YYYY-MM-DD, today or yesterday)."`
	Limit int    `help:"Maximum number of entries to show (0 for all)." default:"20"`
}

func (c *SymptomListCmd) Run(ctx *cli.Context) error {
	symptoms, err := ctx.Store.GetAllSymptoms()
	if err != nil {
		return fmt.Errorf("failed to list symptoms: %w", err)
	}
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		symptoms = filterByDate(symptoms, date, func(s models.SymptomEntry) string { return s.Date })
	}

	sort.SliceStable(symptoms, func(i, j int) bool { return symptoms[i].Time.After(symptoms[j].Time) })
	symptoms = limit(symptoms, c.Limit)

	if len(symptoms) == 0 {
		fmt.Println("No symptoms logged.")
		return nil
	}
	for _, s := range symptoms {
		fmt.Printf("%s %s  %-20s severity %2d  %s\n", s.Date, s.Time.Local().Format(listTimeFormat), s.Name, s.Severity, s.ID)
		if s.Note != nil {
			fmt.Printf("    %s\n", *s.Note)
		}
	}
	return nil
}

type SymptomDeleteCmd struct {
	ID string `arg:"" help:"ID of the symptom entry."`
}

func (c *SymptomDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteSymptom(c.ID); err != nil {
		return fmt.Errorf("failed to delete symptom: %w", err)
	}
	fmt.Printf("✓ Deleted symptom %s\n", c.ID)
	ctx.AfterDiaryChange()
	return nil
}

type ActivityAddCmd struct {
	Type       string `arg:"" help:"Activity type, e.g. walk or work."`
	Exhaustion int    `short:"e" required:"" help:"Perceived exhaustion, 1-10."`
	Duration   *int   `short:"d" help:"Duration in minutes."`
	Note       string `help:"Optional note."`
	Date       string `help:"Date of the activity (YYYY-MM-DD, today or yesterday)." default:"today"`
	At         string `help:"Time of day (HH:MM). Defaults to now for today."`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	at, err := ctx.EntryTime(date, c.At)
	if err != nil {
		return err
	}

	entry := models.ActivityEntry{
		ID:                  uuid.New().String(),
		Date:                date,
		Time:                at,
		Type:                strings.TrimSpace(c.Type),
		DurationMin:         c.Duration,
		PerceivedExhaustion: c.Exhaustion,
		Note:                optionalNote(c.Note),
	}
	if err := validation.ValidateActivity(entry); err != nil {
		return fmt.Errorf("invalid activity: %w", err)
	}
	if err := ctx.Store.AddActivity(entry); err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}

	fmt.Printf("✓ Logged activity %q (exhaustion %d) on %s [%s]\n", entry.Type, entry.PerceivedExhaustion, entry.Date, entry.ID)
	warnIfNoCheckIn(ctx, date)
	ctx.AfterDiaryChange()
	return nil
}

type ActivityListCmd struct {
	Date  string `help:"Only show entries for this date (YYYY-MM-DD, today or yesterday)."`
	Limit int    `help:"Maximum number of entries to show (0 for all)." default:"20"`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	if c.Date != "" {
		date, err := ctx.ResolveDate(c.Date)
		if err != nil {
			return err
		}
		activities = filterByDate(activities, date, func(a models.ActivityEntry) string { return a.Date })
	}

	sort.SliceStable(activities, func(i, j int) bool { return activities[i].Time.After(activities[j].Time) })
	activities = limit(activities, c.Limit)

	if len(activities) == 0 {
		fmt.Println("No activities logged.")
		return nil
	}
	for _, a := range activities {
		duration := "-"
		if a.DurationMin != nil {
			duration = fmt.Sprintf("%d min", *a.DurationMin)
		}
		fmt.Printf("%s %s  %-20s exhaustion %2d  %-8s %s\n", a.Date, a.Time.Local().Format(listTimeFormat), a.Type, a.PerceivedExhaustion, duration, a.ID)
		if a.Note != nil {
			fmt.Printf("    %s\n", *a.Note)
		}
	}
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"ID of the activity entry."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	fmt.Printf("✓ Deleted activity %s\n", c.ID)
	ctx.AfterDiaryChange()
	return nil
}

func filterByDate[T any](entries []T, date string, dateOf func(T) string) []T {
	var out []T
	for _, e := range entries {
		if dateOf(e) == date {
			out = append(out, e)
		}
	}
	return out
}

func limit[T any](entries []T, n int) []T {
	if n > 0 && len(entries) > n {
		return entries[:n]
	}
	return entries
}
