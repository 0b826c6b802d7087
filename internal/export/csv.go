package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

type csvFile struct {
	kind string
	rows [][]string
}

// WriteCSV writes one file per record kind plus a data dictionary.
func (e *Exporter) WriteCSV() (Result, error) {
	snap, err := storage.LoadSnapshot(e.store)
	if err != nil {
		return Result{}, err
	}
	settings, err := e.store.GetSettings()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load settings: %w", err)
	}
	reviews, err := e.store.GetAllWeeklyReviews()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load weekly reviews: %w", err)
	}

	if err := e.prepareDir(); err != nil {
		return Result{}, err
	}

	files := []csvFile{
		{"days", DaysRows(snap.Days)},
		{"symptoms", SymptomRows(snap.Symptoms)},
		{"activities", ActivityRows(snap.Activities)},
		{"settings", SettingsRows(settings)},
		{"weekly_reviews", WeeklyReviewRows(reviews)},
		{"data_dictionary", DataDictionaryRows()},
	}

	result := Result{Dir: e.dir}
	for _, f := range files {
		data, err := encodeCSV(f.rows)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode %s: %w", f.kind, err)
		}
		path, err := e.writeFile(e.fileName(f.kind, "csv"), data)
		if err != nil {
			return Result{}, err
		}
		result.Files = append(result.Files, path)
	}

	logger.Info("CSV export written", "dir", e.dir, "files", len(result.Files))
	return result, nil
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DaysRows returns the header and one row per check-in, oldest first.
func DaysRows(days []models.Day) [][]string {
	sorted := append([]models.Day(nil), days...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	rows := [][]string{{
		"date", "timezone_offset_minutes", "restedness_0_100", "sleep_quality_1_5",
		"notes", "tags", "illness", "travel",
	}}
	for _, d := range sorted {
		rows = append(rows, []string{
			d.Date,
			strconv.Itoa(d.TimezoneOffsetMinutes),
			strconv.Itoa(d.Restedness),
			strconv.Itoa(d.SleepQuality),
			d.Notes,
			strings.Join(d.Tags, " "),
			strconv.FormatBool(d.Illness),
			strconv.FormatBool(d.Travel),
		})
	}
	return rows
}

// SymptomRows returns the header and one row per symptom in logging order.
func SymptomRows(symptoms []models.SymptomEntry) [][]string {
	sorted := append([]models.SymptomEntry(nil), symptoms...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	rows := [][]string{{"id", "date", "time", "name", "severity_1_10", "note"}}
	for _, s := range sorted {
		rows = append(rows, []string{
			s.ID,
			s.Date,
			formatInstant(s.Time),
			s.Name,
			strconv.Itoa(s.Severity),
			deref(s.Note),
		})
	}
	return rows
}

// ActivityRows returns the header and one row per activity in logging order.
func ActivityRows(activities []models.ActivityEntry) [][]string {
	sorted := append([]models.ActivityEntry(nil), activities...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	rows := [][]string{{"id", "date", "time", "type", "duration_minutes", "perceived_exhaustion_1_10", "note"}}
	for _, a := range sorted {
		duration := ""
		if a.DurationMin != nil {
			duration = strconv.Itoa(*a.DurationMin)
		}
		rows = append(rows, []string{
			a.ID,
			a.Date,
			formatInstant(a.Time),
			a.Type,
			duration,
			strconv.Itoa(a.PerceivedExhaustion),
			deref(a.Note),
		})
	}
	return rows
}

func SettingsRows(settings models.Settings) [][]string {
	return [][]string{
		{"reminder_time", "timezone", "before_four_am_is_yesterday", "notifications_denied", "onboarding_completed"},
		{
			settings.ReminderTime,
			settings.Timezone,
			strconv.FormatBool(settings.BeforeFourAmIsYesterday),
			strconv.FormatBool(settings.NotificationsDenied),
			strconv.FormatBool(settings.OnboardingCompleted),
		},
	}
}

// WeeklyReviewRows returns the header and one row per review, newest first.
// Highlight lists are joined with " | ".
func WeeklyReviewRows(reviews []models.WeeklyReview) [][]string {
	sorted := append([]models.WeeklyReview(nil), reviews...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].GeneratedAt.After(sorted[j].GeneratedAt) })

	rows := [][]string{{
		"id", "start_date", "end_date", "generated_at", "trend_highlights", "correlation_highlights",
		"best_day", "toughest_day", "adherence_summary", "needs_in_app_nudge",
	}}
	for _, r := range sorted {
		rows = append(rows, []string{
			r.ID,
			r.StartDate,
			r.EndDate,
			formatInstant(r.GeneratedAt),
			strings.Join(r.TrendHighlights, " | "),
			strings.Join(r.CorrelationHighlights, " | "),
			deref(r.BestDay),
			deref(r.ToughestDay),
			r.AdherenceSummary,
			strconv.FormatBool(r.NeedsInAppNudge),
		})
	}
	return rows
}

func DataDictionaryRows() [][]string {
	return [][]string{
		{"entity", "column", "description"},
		{"Day", "date", "ISO-8601 day for the AM check-in"},
		{"Day", "timezone_offset_minutes", "UTC offset of the device when the check-in was logged"},
		{"Day", "restedness_0_100", "User reported restedness (higher is better); fatigue is 100 minus this value"},
		{"Day", "sleep_quality_1_5", "Sleep quality rating"},
		{"SymptomEntry", "severity_1_10", "Symptom severity rating"},
		{"ActivityEntry", "duration_minutes", "Optional activity duration"},
		{"ActivityEntry", "perceived_exhaustion_1_10", "Activity exhaustion rating"},
		{"Settings", "reminder_time", "Local reminder time for AM check-in"},
		{"Settings", "before_four_am_is_yesterday", "Entries before 04:00 count toward the previous day"},
		{"WeeklyReview", "trend_highlights", "Summary bullets generated for seven-day window"},
		{"WeeklyReview", "correlation_highlights", "Narrative describing correlation strength"},
		{"WeeklyReview", "adherence_summary", "Text summary of adherence for the week"},
	}
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
