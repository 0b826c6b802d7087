package settings

import (
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	ReminderTime        *string `help:"Local time for the morning check-in reminder (HH:MM)."`
	Timezone            *string `help:"IANA timezone for diary dates, or 'Local' for the system timezone."`
	BeforeFourAm        *bool   `help:"Count entries logged before 04:00 toward the previous day." negatable:""`
	NotificationsDenied *bool   `help:"Record that notifications are unavailable so reviews are surfaced in-app." negatable:""`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Reminder Time:          %s\n", settings.ReminderTime)
		fmt.Printf("  Timezone:               %s\n", settings.Timezone)
		fmt.Printf("  Before 4am = Yesterday: %v\n", settings.BeforeFourAmIsYesterday)
		fmt.Printf("  Notifications Denied:   %v\n", settings.NotificationsDenied)
		fmt.Printf("  Onboarding Completed:   %v\n", settings.OnboardingCompleted)
		return nil
	}

	updated := false
	if c.ReminderTime != nil {
		if !utils.ValidateTimeFormat(*c.ReminderTime) {
			return fmt.Errorf("invalid reminder time %q (expected HH:MM)", *c.ReminderTime)
		}
		settings.ReminderTime = *c.ReminderTime
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.BeforeFourAm != nil {
		settings.BeforeFourAmIsYesterday = *c.BeforeFourAm
		updated = true
	}
	if c.NotificationsDenied != nil {
		settings.NotificationsDenied = *c.NotificationsDenied
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
