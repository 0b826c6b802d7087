package utils

import (
	"fmt"
	"time"

	"github.com/Tholomir/ChronoRex/internal/constants"
)

// SystemClock reads the wall clock. It is the production clock handed to the analytics package.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDate parses a date string (YYYY-MM-DD) to midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ValidateDateFormat checks if the string is a valid YYYY-MM-DD date.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return d.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the number of calendar days from one YYYY-MM-DD date to another.
// The result is negative when to is before from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", from, err)
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", to, err)
	}
	// Both are UTC midnights so the difference is an exact multiple of 24h.
	return int(t.Sub(f).Hours() / 24), nil
}

// EntryDate returns the diary date an instant belongs to in the given location.
// With beforeFourAmIsYesterday set, instants before the rollover hour count toward the previous day.
func EntryDate(now time.Time, loc *time.Location, beforeFourAmIsYesterday bool) string {
	local := now.In(loc)
	if beforeFourAmIsYesterday && local.Hour() < constants.DayRolloverHour {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(constants.DateFormat)
}

// OffsetMinutes returns the UTC offset of the instant in the given location, in minutes.
func OffsetMinutes(now time.Time, loc *time.Location) int {
	_, offset := now.In(loc).Zone()
	return offset / 60
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
