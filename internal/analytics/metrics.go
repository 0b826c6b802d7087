// Package analytics turns raw diary records into trends, correlations and weekly reviews.
// Every function is a pure transformation over in-memory snapshots.
package analytics

import (
	"sort"

	"github.com/Tholomir/ChronoRex/internal/models"
)

// DailyMetrics is the per-day aggregate of a check-in and the entries logged that day
type DailyMetrics struct {
	Date                  string         `json:"date"`
	Fatigue               float64        `json:"fatigue"`
	SymptomAverage        *float64       `json:"symptom_average,omitempty"`
	SymptomSampleSize     int            `json:"symptom_sample_size"`
	ActivityAverage       *float64       `json:"activity_average,omitempty"`
	ActivitySampleSize    int            `json:"activity_sample_size"`
	ActivityMinutesByType map[string]int `json:"activity_minutes_by_type"`
}

// BuildDailyMetrics folds the raw records into one DailyMetrics per check-in date, ordered by date.
// Symptoms and activities on dates without a check-in are ignored.
func BuildDailyMetrics(days []models.Day, symptoms []models.SymptomEntry, activities []models.ActivityEntry) []DailyMetrics {
	checkIns := uniqueDays(days)
	if len(checkIns) == 0 {
		return []DailyMetrics{}
	}

	symptomsByDate := make(map[string][]models.SymptomEntry)
	for _, s := range symptoms {
		symptomsByDate[s.Date] = append(symptomsByDate[s.Date], s)
	}
	activitiesByDate := make(map[string][]models.ActivityEntry)
	for _, a := range activities {
		activitiesByDate[a.Date] = append(activitiesByDate[a.Date], a)
	}

	metrics := make([]DailyMetrics, 0, len(checkIns))
	for _, day := range checkIns {
		m := DailyMetrics{
			Date:                  day.Date,
			Fatigue:               float64(day.Fatigue()),
			ActivityMinutesByType: make(map[string]int),
		}

		if list := symptomsByDate[day.Date]; len(list) > 0 {
			total := 0
			for _, s := range list {
				total += s.Severity
			}
			avg := float64(total) / float64(len(list))
			m.SymptomAverage = &avg
			m.SymptomSampleSize = len(list)
		}

		if list := activitiesByDate[day.Date]; len(list) > 0 {
			total := 0
			for _, a := range list {
				total += a.PerceivedExhaustion
				minutes := 0
				if a.DurationMin != nil {
					minutes = *a.DurationMin
				}
				m.ActivityMinutesByType[a.Type] += minutes
			}
			avg := float64(total) / float64(len(list))
			m.ActivityAverage = &avg
			m.ActivitySampleSize = len(list)
		}

		metrics = append(metrics, m)
	}

	return metrics
}

// uniqueDays returns one check-in per date, sorted ascending. A later duplicate replaces an earlier one.
func uniqueDays(days []models.Day) []models.Day {
	byDate := make(map[string]models.Day, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	out := make([]models.Day, 0, len(byDate))
	for _, d := range byDate {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// sortedMetrics returns a copy of metrics ordered by date.
func sortedMetrics(metrics []DailyMetrics) []DailyMetrics {
	out := make([]DailyMetrics, len(metrics))
	copy(out, metrics)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// latestDate returns the newest date in metrics.
func latestDate(metrics []DailyMetrics) (string, bool) {
	if len(metrics) == 0 {
		return "", false
	}
	latest := metrics[0].Date
	for _, m := range metrics[1:] {
		if m.Date > latest {
			latest = m.Date
		}
	}
	return latest, true
}
