package models

import (
	"fmt"
	"strconv"

	"github.com/Tholomir/ChronoRex/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingReminderTime:
			settings.ReminderTime = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingBeforeFourAmIsYesterday:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.BeforeFourAmIsYesterday = b
		case constants.SettingNotificationsDenied:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.NotificationsDenied = b
		case constants.SettingOnboardingCompleted:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.OnboardingCompleted = b
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingReminderTime:            settings.ReminderTime,
		constants.SettingTimezone:                settings.Timezone,
		constants.SettingBeforeFourAmIsYesterday: strconv.FormatBool(settings.BeforeFourAmIsYesterday),
		constants.SettingNotificationsDenied:     strconv.FormatBool(settings.NotificationsDenied),
		constants.SettingOnboardingCompleted:     strconv.FormatBool(settings.OnboardingCompleted),
	}
}

// DefaultSettings returns the settings a fresh store is initialized with.
func DefaultSettings() Settings {
	return Settings{
		ReminderTime:            constants.DefaultReminderTime,
		Timezone:                constants.DefaultTimezone,
		BeforeFourAmIsYesterday: constants.DefaultBeforeFourAmIsYesterday,
		NotificationsDenied:     constants.DefaultNotificationsDenied,
		OnboardingCompleted:     constants.DefaultOnboardingCompleted,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.ReminderTime == "" {
		settings.ReminderTime = constants.DefaultReminderTime
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
