package diary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

type DayShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, today or yesterday)." default:"today"`
}

func (c *DayShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	day, err := ctx.Store.GetDay(date)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No check-in for %s.\n", date)
	} else if err != nil {
		return fmt.Errorf("failed to load check-in: %w", err)
	} else {
		fmt.Printf("Check-in %s\n", day.Date)
		fmt.Printf("  Restedness:    %d (fatigue %d)\n", day.Restedness, day.Fatigue())
		fmt.Printf("  Sleep quality: %d/5\n", day.SleepQuality)
		if len(day.Tags) > 0 {
			fmt.Printf("  Tags:          %s\n", strings.Join(day.Tags, ", "))
		}
		if day.Illness || day.Travel {
			fmt.Printf("  Flags:         %s\n", flagList(day.Illness, day.Travel))
		}
		if day.Notes != "" {
			fmt.Printf("  Notes:         %s\n", day.Notes)
		}
	}

	symptoms, err := ctx.Store.GetAllSymptoms()
	if err != nil {
		return fmt.Errorf("failed to list symptoms: %w", err)
	}
	for _, s := range symptoms {
		if s.Date == date {
			fmt.Printf("  Symptom:  %s (severity %d)\n", s.Name, s.Severity)
		}
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to list activities: %w", err)
	}
	for _, a := range activities {
		if a.Date == date {
			fmt.Printf("  Activity: %s (exhaustion %d)\n", a.Type, a.PerceivedExhaustion)
		}
	}
	return nil
}

func flagList(illness, travel bool) string {
	var flags []string
	if illness {
		flags = append(flags, "illness")
	}
	if travel {
		flags = append(flags, "travel")
	}
	return strings.Join(flags, ", ")
}

type DayDeleteCmd struct {
	Date string `arg:"" help:"Date of the check-in to delete (YYYY-MM-DD)."`
}

func (c *DayDeleteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteDay(date); err != nil {
		return fmt.Errorf("failed to delete check-in: %w", err)
	}
	fmt.Printf("✓ Deleted check-in for %s\n", date)
	ctx.AfterDiaryChange()
	return nil
}
