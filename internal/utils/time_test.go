package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone Europe/London",
			timezone: "Europe/London",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		n       int
		want    string
		wantErr bool
	}{
		{name: "previous day", date: "2024-03-01", n: -1, want: "2024-02-29"},
		{name: "six days back", date: "2024-01-14", n: -6, want: "2024-01-08"},
		{name: "year rollover", date: "2023-12-31", n: 1, want: "2024-01-01"},
		{name: "zero", date: "2024-05-05", n: 0, want: "2024-05-05"},
		{name: "invalid", date: "2024-13-01", n: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddDays(tt.date, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddDays() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("AddDays() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-08", 7},
		{"2024-01-08", "2024-01-01", -7},
		{"2024-02-28", "2024-03-01", 2},
		{"2024-03-30", "2024-04-02", 3},
	}
	for _, tt := range tests {
		got, err := DaysBetween(tt.from, tt.to)
		if err != nil {
			t.Fatalf("DaysBetween(%s, %s) error = %v", tt.from, tt.to, err)
		}
		if got != tt.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}

	if _, err := DaysBetween("bad", "2024-01-01"); err == nil {
		t.Error("expected error for invalid from date")
	}
}

func TestEntryDate(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	early := time.Date(2024, 6, 10, 1, 30, 0, 0, loc)
	morning := time.Date(2024, 6, 10, 9, 0, 0, 0, loc)

	tests := []struct {
		name     string
		now      time.Time
		rollover bool
		want     string
	}{
		{name: "early without rollover", now: early, rollover: false, want: "2024-06-10"},
		{name: "early with rollover", now: early, rollover: true, want: "2024-06-09"},
		{name: "morning with rollover", now: morning, rollover: true, want: "2024-06-10"},
		{name: "utc instant converted", now: time.Date(2024, 6, 9, 23, 30, 0, 0, time.UTC), rollover: false, want: "2024-06-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EntryDate(tt.now, loc, tt.rollover); got != tt.want {
				t.Errorf("EntryDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOffsetMinutes(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	if got := OffsetMinutes(time.Now(), loc); got != -300 {
		t.Errorf("OffsetMinutes() = %d, want -300", got)
	}
}

func TestValidateTimeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"08:00", true},
		{"23:59", true},
		{"24:00", false},
		{"8am", false},
	}
	for _, tt := range tests {
		if got := ValidateTimeFormat(tt.in); got != tt.want {
			t.Errorf("ValidateTimeFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") {
		t.Error("Local should be valid")
	}
	if !ValidateTimezone("America/New_York") {
		t.Error("America/New_York should be valid")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("Mars/Olympus should be invalid")
	}
}
