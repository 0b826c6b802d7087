package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

// GenerateWeeklyReview builds the digest for the 7 calendar days ending on the newest check-in.
// Returns nil until at least seven days have been logged.
func GenerateWeeklyReview(
	days []models.Day,
	symptoms []models.SymptomEntry,
	activities []models.ActivityEntry,
	notificationsDenied bool,
	clock Clock,
) *models.WeeklyReview {
	if len(days) == 0 {
		return nil
	}

	metrics := BuildDailyMetrics(days, symptoms, activities)
	if len(metrics) < constants.ReviewMinMetrics {
		return nil
	}

	endDate, _ := latestDate(metrics)
	startDate, err := utils.AddDays(endDate, -(constants.ReviewWindowDays - 1))
	if err != nil {
		return nil
	}
	periodMetrics := metricsBetween(metrics, startDate, endDate)
	if len(periodMetrics) == 0 {
		return nil
	}

	previousStart, err := utils.AddDays(startDate, -constants.ReviewWindowDays)
	if err != nil {
		return nil
	}
	previousEnd, err := utils.AddDays(startDate, -1)
	if err != nil {
		return nil
	}
	previousMetrics := metricsBetween(metrics, previousStart, previousEnd)

	checkIns := daysInWindow(uniqueDays(days), startDate, endDate)
	best, toughest := fatigueExtremes(periodMetrics)

	return &models.WeeklyReview{
		ID:                    uuid.New().String(),
		StartDate:             startDate,
		EndDate:               endDate,
		GeneratedAt:           clock.Now(),
		TrendHighlights:       trendHighlights(periodMetrics, previousMetrics, checkIns),
		CorrelationHighlights: correlationHighlights(days, symptoms, activities),
		BestDay:               best,
		ToughestDay:           toughest,
		AdherenceSummary:      adherenceSummary(startDate, endDate, checkIns, symptoms, activities),
		NeedsInAppNudge:       notificationsDenied,
	}
}

// ShouldGenerateReview reports whether a new review is due given the stored one and the newest
// metric date. A review is due when none is stored, or when the stored window ended before the
// newest data and at least a week has passed since it ended.
func ShouldGenerateReview(latest *models.WeeklyReview, newestMetricDate string) bool {
	if latest == nil {
		return true
	}
	if newestMetricDate == "" || latest.EndDate >= newestMetricDate {
		return false
	}
	gap, err := utils.DaysBetween(latest.EndDate, newestMetricDate)
	if err != nil {
		return false
	}
	return gap >= constants.ReviewRegenerationDays
}

// ShouldReplaceReview reports whether fresh supersedes stored.
func ShouldReplaceReview(stored, fresh *models.WeeklyReview) bool {
	if fresh == nil {
		return false
	}
	return stored == nil || fresh.EndDate > stored.EndDate
}

// NewestMetricDate returns the newest date that would appear in the daily metrics, or "" when there is none.
func NewestMetricDate(days []models.Day) string {
	newest := ""
	for _, d := range days {
		if d.Date > newest {
			newest = d.Date
		}
	}
	return newest
}

func metricsBetween(metrics []DailyMetrics, start, end string) []DailyMetrics {
	var out []DailyMetrics
	for _, m := range sortedMetrics(metrics) {
		if m.Date >= start && m.Date <= end {
			out = append(out, m)
		}
	}
	return out
}

func daysInWindow(days []models.Day, start, end string) []models.Day {
	var out []models.Day
	for _, d := range days {
		if d.Date >= start && d.Date <= end {
			out = append(out, d)
		}
	}
	return out
}

func meanFatigue(metrics []DailyMetrics) float64 {
	sum := 0.0
	for _, m := range metrics {
		sum += m.Fatigue
	}
	return sum / float64(len(metrics))
}

// fatigueExtremes returns the first date with the lowest and the first date with the highest fatigue.
func fatigueExtremes(metrics []DailyMetrics) (best, toughest *string) {
	if len(metrics) == 0 {
		return nil, nil
	}
	minIdx, maxIdx := 0, 0
	for i, m := range metrics {
		if m.Fatigue < metrics[minIdx].Fatigue {
			minIdx = i
		}
		if m.Fatigue > metrics[maxIdx].Fatigue {
			maxIdx = i
		}
	}
	bestDate := metrics[minIdx].Date
	toughestDate := metrics[maxIdx].Date
	return &bestDate, &toughestDate
}

func trendHighlights(period, previous []DailyMetrics, checkIns []models.Day) []string {
	current := meanFatigue(period)
	average := "Average fatigue was " + formatFixed(current, 1)
	if len(previous) > 0 {
		delta := current - meanFatigue(previous)
		direction := "lower"
		if delta > 0 {
			direction = "higher"
		}
		average += fmt.Sprintf(" (%s points %s than last week)", formatFixed(math.Abs(delta), 1), direction)
	}
	highlights := []string{average}

	if best, _ := fatigueExtremes(period); best != nil {
		for _, m := range period {
			if m.Date == *best {
				highlights = append(highlights,
					fmt.Sprintf("Most rested day: %s (restedness %s)", m.Date, formatFixed(100-m.Fatigue, 0)))
				break
			}
		}
	}

	illness, travel := 0, 0
	for _, d := range checkIns {
		if d.Illness {
			illness++
		}
		if d.Travel {
			travel++
		}
	}
	if illness == 0 && travel == 0 {
		return append(highlights, "No illness or travel flags this week")
	}

	var parts []string
	if illness > 0 {
		parts = append(parts, "illness on "+pluralDays(illness))
	}
	if travel > 0 {
		parts = append(parts, "travel on "+pluralDays(travel))
	}
	return append(highlights, "Flags: "+strings.Join(parts, ", "))
}

func correlationHighlights(days []models.Day, symptoms []models.SymptomEntry, activities []models.ActivityEntry) []string {
	ready, ok := Calculate(days, symptoms, activities).(ReadyInsights)
	if !ok {
		return []string{}
	}

	ranked := make([]CorrelationInsights, len(ready.Correlations))
	copy(ranked, ready.Correlations)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Coefficient) > math.Abs(ranked[j].Coefficient)
	})
	if len(ranked) > constants.ReviewMaxCorrelationHighlights {
		ranked = ranked[:constants.ReviewMaxCorrelationHighlights]
	}

	out := make([]string, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Narrative())
	}
	return out
}

func adherenceSummary(start, end string, checkIns []models.Day, symptoms []models.SymptomEntry, activities []models.ActivityEntry) string {
	symptomDates := make(map[string]struct{})
	for _, s := range symptoms {
		if s.Date >= start && s.Date <= end {
			symptomDates[s.Date] = struct{}{}
		}
	}
	activityDates := make(map[string]struct{})
	for _, a := range activities {
		if a.Date >= start && a.Date <= end {
			activityDates[a.Date] = struct{}{}
		}
	}

	return fmt.Sprintf("Logged %d/%d check-ins, symptoms on %s, activities on %s.",
		len(checkIns), constants.ReviewWindowDays, pluralDays(len(symptomDates)), pluralDays(len(activityDates)))
}
