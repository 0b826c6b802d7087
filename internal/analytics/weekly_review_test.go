package analytics

import (
	"strings"
	"testing"

	"github.com/Tholomir/ChronoRex/internal/models"
)

func TestGenerateWeeklyReview_InsufficientData(t *testing.T) {
	if review := GenerateWeeklyReview(nil, nil, nil, false, testClock); review != nil {
		t.Errorf("Expected nil review for no days, got %+v", review)
	}

	days := consecutiveDays(50, 50, 50, 50, 50, 50)
	if review := GenerateWeeklyReview(days, nil, nil, false, testClock); review != nil {
		t.Errorf("Expected nil review for 6 days, got %+v", review)
	}
}

func TestGenerateWeeklyReview_ExactlySevenDaysNoFlags(t *testing.T) {
	days := consecutiveDays(70, 60, 50, 90, 40, 60, 70)

	review := GenerateWeeklyReview(days, nil, nil, true, testClock)
	if review == nil {
		t.Fatal("Expected review")
	}
	if review.StartDate != "2024-01-01" || review.EndDate != "2024-01-07" {
		t.Errorf("Unexpected window %s..%s", review.StartDate, review.EndDate)
	}
	want := []string{
		"Average fatigue was 37.1",
		"Most rested day: 2024-01-04 (restedness 90)",
		"No illness or travel flags this week",
	}
	if len(review.TrendHighlights) != len(want) {
		t.Fatalf("Expected %d highlights, got %v", len(want), review.TrendHighlights)
	}
	for i := range want {
		if review.TrendHighlights[i] != want[i] {
			t.Errorf("Highlight %d = %q, want %q", i, review.TrendHighlights[i], want[i])
		}
	}
	if !review.NeedsInAppNudge {
		t.Error("Expected nudge when notifications are denied")
	}
	if !review.GeneratedAt.Equal(testClock.At) {
		t.Errorf("Expected generatedAt %v, got %v", testClock.At, review.GeneratedAt)
	}
	if review.ID == "" {
		t.Error("Expected review ID")
	}
	if review.BestDay == nil || *review.BestDay != "2024-01-04" {
		t.Errorf("Expected best day 2024-01-04, got %v", review.BestDay)
	}
	if review.ToughestDay == nil || *review.ToughestDay != "2024-01-05" {
		t.Errorf("Expected toughest day 2024-01-05, got %v", review.ToughestDay)
	}
	if review.AdherenceSummary != "Logged 7/7 check-ins, symptoms on 0 days, activities on 0 days." {
		t.Errorf("Unexpected adherence: %q", review.AdherenceSummary)
	}
}

func TestGenerateWeeklyReview_AlternatingFortnight(t *testing.T) {
	days, symptoms, activities := alternatingFortnight()

	review := GenerateWeeklyReview(days, symptoms, activities, false, testClock)
	if review == nil {
		t.Fatal("Expected review")
	}
	if review.StartDate != "2024-01-08" || review.EndDate != "2024-01-14" {
		t.Errorf("Expected window 2024-01-08..2024-01-14, got %s..%s", review.StartDate, review.EndDate)
	}

	// The day 10 symptom falls inside the window; the day 5 activity does not.
	if review.AdherenceSummary != "Logged 7/7 check-ins, symptoms on 1 day, activities on 0 days." {
		t.Errorf("Unexpected adherence: %q", review.AdherenceSummary)
	}
	if review.TrendHighlights[0] != "Average fatigue was 42.9 (5.7 points higher than last week)" {
		t.Errorf("Unexpected average highlight: %q", review.TrendHighlights[0])
	}
	if review.TrendHighlights[1] != "Most rested day: 2024-01-09 (restedness 80)" {
		t.Errorf("Unexpected rested highlight: %q", review.TrendHighlights[1])
	}
	if review.BestDay == nil || *review.BestDay != "2024-01-09" {
		t.Errorf("Expected best day 2024-01-09, got %v", review.BestDay)
	}
	if review.ToughestDay == nil || *review.ToughestDay != "2024-01-08" {
		t.Errorf("Expected toughest day 2024-01-08, got %v", review.ToughestDay)
	}
	if len(review.CorrelationHighlights) != 0 {
		t.Errorf("Expected no correlation highlights, got %v", review.CorrelationHighlights)
	}
	if review.NeedsInAppNudge {
		t.Error("Expected no nudge when notifications are allowed")
	}
}

func TestGenerateWeeklyReview_FlagsAndLowerDelta(t *testing.T) {
	// previous week fatigue 60, current week fatigue 40
	rested := []int{40, 40, 40, 40, 40, 40, 40, 60, 60, 60, 60, 60, 60, 60}
	days := consecutiveDays(rested...)
	days[8].Illness = true
	days[10].Travel = true
	days[11].Travel = true

	review := GenerateWeeklyReview(days, nil, nil, false, testClock)
	if review == nil {
		t.Fatal("Expected review")
	}
	if review.TrendHighlights[0] != "Average fatigue was 40.0 (20.0 points lower than last week)" {
		t.Errorf("Unexpected average highlight: %q", review.TrendHighlights[0])
	}
	if review.TrendHighlights[2] != "Flags: illness on 1 day, travel on 2 days" {
		t.Errorf("Unexpected flags highlight: %q", review.TrendHighlights[2])
	}
}

func TestGenerateWeeklyReview_SparseWindow(t *testing.T) {
	days := []models.Day{
		{Date: "2024-01-01", Restedness: 50},
		{Date: "2024-01-02", Restedness: 50},
		{Date: "2024-01-03", Restedness: 50},
		{Date: "2024-01-04", Restedness: 50},
		{Date: "2024-01-05", Restedness: 50},
		{Date: "2024-01-06", Restedness: 50},
		{Date: "2024-01-20", Restedness: 70},
	}

	review := GenerateWeeklyReview(days, nil, nil, false, testClock)
	if review == nil {
		t.Fatal("Expected review")
	}
	if review.StartDate != "2024-01-14" || review.EndDate != "2024-01-20" {
		t.Errorf("Unexpected window %s..%s", review.StartDate, review.EndDate)
	}
	if review.AdherenceSummary != "Logged 1/7 check-ins, symptoms on 0 days, activities on 0 days." {
		t.Errorf("Unexpected adherence: %q", review.AdherenceSummary)
	}
	if strings.Contains(review.TrendHighlights[0], "last week") {
		t.Errorf("Expected no comparison when previous week is empty: %q", review.TrendHighlights[0])
	}
}

func TestGenerateWeeklyReview_CorrelationHighlightsRanked(t *testing.T) {
	days := consecutiveDays(90, 20, 70, 30, 80, 10, 60, 40)
	var symptoms []models.SymptomEntry
	var activities []models.ActivityEntry
	symptomSeverity := []int{1, 9, 3, 7, 2, 10, 4, 6}
	activityExhaustion := []int{5, 4, 6, 2, 7, 5, 3, 6}
	for i, d := range days {
		symptoms = append(symptoms, models.SymptomEntry{ID: d.Date + "-s", Date: d.Date, Severity: symptomSeverity[i]})
		activities = append(activities, models.ActivityEntry{ID: d.Date + "-a", Date: d.Date, PerceivedExhaustion: activityExhaustion[i]})
	}

	review := GenerateWeeklyReview(days, symptoms, activities, false, testClock)
	if review == nil {
		t.Fatal("Expected review")
	}
	if len(review.CorrelationHighlights) == 0 || len(review.CorrelationHighlights) > 3 {
		t.Fatalf("Expected 1-3 correlation highlights, got %d", len(review.CorrelationHighlights))
	}
	for _, h := range review.CorrelationHighlights {
		if !strings.HasSuffix(h, "Not causal.") {
			t.Errorf("Highlight missing disclaimer: %q", h)
		}
	}
	// symptoms track fatigue almost exactly, so the same-day symptom pairing ranks first
	if !strings.HasPrefix(review.CorrelationHighlights[0], "Higher symptom severity today") {
		t.Errorf("Unexpected top highlight: %q", review.CorrelationHighlights[0])
	}
}

func TestShouldGenerateReview(t *testing.T) {
	stored := &models.WeeklyReview{EndDate: "2024-01-14"}

	tests := []struct {
		name   string
		latest *models.WeeklyReview
		newest string
		want   bool
	}{
		{"nothing stored", nil, "2024-01-01", true},
		{"same end date", stored, "2024-01-14", false},
		{"newer data but under a week", stored, "2024-01-20", false},
		{"exactly a week later", stored, "2024-01-21", true},
		{"well past a week", stored, "2024-03-01", true},
		{"older data", stored, "2024-01-10", false},
		{"no data", stored, "", false},
		{"malformed date", stored, "2024-13-40", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldGenerateReview(tt.latest, tt.newest); got != tt.want {
				t.Errorf("ShouldGenerateReview() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldReplaceReview(t *testing.T) {
	older := &models.WeeklyReview{EndDate: "2024-01-07"}
	newer := &models.WeeklyReview{EndDate: "2024-01-14"}

	if !ShouldReplaceReview(nil, older) {
		t.Error("Expected replacement when nothing is stored")
	}
	if !ShouldReplaceReview(older, newer) {
		t.Error("Expected newer review to replace older")
	}
	if ShouldReplaceReview(newer, older) {
		t.Error("Expected older review not to replace newer")
	}
	if ShouldReplaceReview(newer, &models.WeeklyReview{EndDate: "2024-01-14"}) {
		t.Error("Expected same end date not to replace")
	}
	if ShouldReplaceReview(newer, nil) {
		t.Error("Expected nil fresh review not to replace")
	}
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{37.142857, 1, "37.1"},
		{5.714285, 1, "5.7"},
		{80, 0, "80"},
		{0.125, 2, "0.13"},
		{-0.004, 2, "-0.00"},
		{0.004, 2, "0.00"},
		{-0.3471, 2, "-0.35"},
	}
	for _, tt := range tests {
		if got := formatFixed(tt.v, tt.decimals); got != tt.want {
			t.Errorf("formatFixed(%v, %d) = %s, want %s", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestNewestMetricDate(t *testing.T) {
	days := []models.Day{{Date: "2024-01-03"}, {Date: "2024-02-01"}, {Date: "2024-01-20"}}
	if got := NewestMetricDate(days); got != "2024-02-01" {
		t.Errorf("NewestMetricDate() = %s", got)
	}
	if got := NewestMetricDate(nil); got != "" {
		t.Errorf("NewestMetricDate(nil) = %q", got)
	}
}
