package diary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/Tholomir/ChronoRex/internal/cli"
	chronoerrors "github.com/Tholomir/ChronoRex/internal/errors"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/validation"
)

type CheckinCmd struct {
	Date         string   `help:"Date of the check-in (YYYY-MM-DD, today or yesterday)." default:"today"`
	Restedness   *int     `short:"r" help:"How rested you feel, 0-100."`
	SleepQuality *int     `short:"s" name:"sleep" help:"Sleep quality, 1-5."`
	Notes        *string  `help:"Free-form notes."`
	Tags         []string `help:"Tags, comma separated."`
	Illness      *bool    `help:"Mark the day as an illness day."`
	Travel       *bool    `help:"Mark the day as a travel day."`
	Interactive  bool     `short:"i" help:"Fill in the check-in with a form."`
}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetDay(date)
	found := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to load check-in: %w", err)
	}

	day := models.Day{Date: date}
	if found {
		day = existing
	}

	if c.Interactive {
		if err := runCheckinForm(&day, found); err != nil {
			return err
		}
	} else if err := c.apply(&day, found); err != nil {
		return err
	}

	if day.TimezoneOffsetMinutes, err = ctx.OffsetMinutes(); err != nil {
		return err
	}
	if err := validation.ValidateDay(day); err != nil {
		return fmt.Errorf("invalid check-in: %w", err)
	}
	if err := ctx.Store.SaveDay(day); err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	if err := completeOnboarding(ctx); err != nil {
		return err
	}

	verb := "Logged"
	if found {
		verb = "Updated"
	}
	fmt.Printf("✓ %s check-in for %s (restedness %d, sleep %d/5)\n", verb, date, day.Restedness, day.SleepQuality)

	ctx.AfterDiaryChange()
	return nil
}

// apply merges the flags into day. A new check-in needs both ratings.
func (c *CheckinCmd) apply(day *models.Day, found bool) error {
	if !found && (c.Restedness == nil || c.SleepQuality == nil) {
		return chronoerrors.WithHint(
			errors.New("a new check-in needs --restedness and --sleep"),
			"run 'chronorex checkin --interactive' to fill in a form",
		)
	}
	if c.Restedness != nil {
		day.Restedness = *c.Restedness
	}
	if c.SleepQuality != nil {
		day.SleepQuality = *c.SleepQuality
	}
	if c.Notes != nil {
		day.Notes = strings.TrimSpace(*c.Notes)
	}
	if len(c.Tags) > 0 {
		day.Tags = cli.ParseTags(c.Tags)
	}
	if c.Illness != nil {
		day.Illness = *c.Illness
	}
	if c.Travel != nil {
		day.Travel = *c.Travel
	}
	return nil
}

func completeOnboarding(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.OnboardingCompleted {
		return nil
	}
	settings.OnboardingCompleted = true
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

type checkinForm struct {
	Restedness   string
	SleepQuality int
	Tags         string
	Notes        string
	Illness      bool
	Travel       bool
}

func newCheckinFormModel(day models.Day, found bool) *checkinForm {
	fm := &checkinForm{
		Restedness:   "50",
		SleepQuality: 3,
	}
	if found {
		fm.Restedness = strconv.Itoa(day.Restedness)
		fm.SleepQuality = day.SleepQuality
		fm.Tags = strings.Join(day.Tags, ", ")
		fm.Notes = day.Notes
		fm.Illness = day.Illness
		fm.Travel = day.Travel
	}
	return fm
}

// applyTo copies the submitted form into day. The form validators have already checked the values.
func (fm *checkinForm) applyTo(day *models.Day) error {
	restedness, err := strconv.Atoi(strings.TrimSpace(fm.Restedness))
	if err != nil {
		return fmt.Errorf("invalid restedness %q: %w", fm.Restedness, err)
	}
	day.Restedness = restedness
	day.SleepQuality = fm.SleepQuality
	day.Tags = cli.ParseTags([]string{fm.Tags})
	day.Notes = strings.TrimSpace(fm.Notes)
	day.Illness = fm.Illness
	day.Travel = fm.Travel
	return nil
}

func intInRange(label string, lo, hi int) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", label)
		}
		if i < lo || i > hi {
			return fmt.Errorf("%s must be %d-%d", label, lo, hi)
		}
		return nil
	}
}

func newCheckinForm(day models.Day, fm *checkinForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Morning check-in").
				Description(day.Date),
			huh.NewInput().
				Title("Restedness (0-100)").
				Description("Higher means more rested").
				Value(&fm.Restedness).
				Validate(intInRange("restedness", 0, 100)),
			huh.NewSelect[int]().
				Title("Sleep quality").
				Options(
					huh.NewOption("1 - Very poor", 1),
					huh.NewOption("2 - Poor", 2),
					huh.NewOption("3 - Okay", 3),
					huh.NewOption("4 - Good", 4),
					huh.NewOption("5 - Excellent", 5),
				).
				Value(&fm.SleepQuality),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&fm.Tags),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
			huh.NewConfirm().
				Title("Feeling ill today?").
				Value(&fm.Illness),
			huh.NewConfirm().
				Title("Travelling today?").
				Value(&fm.Travel),
		),
	).WithTheme(huh.ThemeDracula())
}

func runCheckinForm(day *models.Day, found bool) error {
	fm := newCheckinFormModel(*day, found)
	if err := newCheckinForm(*day, fm).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("check-in cancelled")
		}
		return fmt.Errorf("check-in form failed: %w", err)
	}
	return fm.applyTo(day)
}
