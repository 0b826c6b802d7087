package models

import (
	"testing"

	"github.com/Tholomir/ChronoRex/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{
		ReminderTime:            "07:30",
		Timezone:                "Europe/Berlin",
		BeforeFourAmIsYesterday: true,
		NotificationsDenied:     true,
	}

	out, err := MapToSettings(SettingsToMap(in))
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettingsInvalidBool(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingNotificationsDenied: "maybe"})
	if err == nil {
		t.Error("expected error for invalid boolean value")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	s := Settings{NotificationsDenied: true}
	ApplyDefaultSettings(&s)

	if s.ReminderTime != constants.DefaultReminderTime {
		t.Errorf("ReminderTime = %q, want %q", s.ReminderTime, constants.DefaultReminderTime)
	}
	if s.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", s.Timezone, constants.DefaultTimezone)
	}
	if !s.NotificationsDenied {
		t.Error("ApplyDefaultSettings should not reset explicit values")
	}
}

func TestDayFatigue(t *testing.T) {
	tests := []struct {
		restedness int
		want       int
	}{
		{0, 100},
		{40, 60},
		{80, 20},
		{100, 0},
	}
	for _, tt := range tests {
		if got := (Day{Restedness: tt.restedness}).Fatigue(); got != tt.want {
			t.Errorf("Fatigue() for restedness %d = %d, want %d", tt.restedness, got, tt.want)
		}
	}
}
