package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/review"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"bounds", []float64{0, 100}, "▁█"},
		{"middle", []float64{50}, "▄"},
		{"clamped", []float64{-20, 140}, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values); got != tt.want {
				t.Errorf("Sparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestRenderInsights(t *testing.T) {
	empty := RenderInsights(analytics.EmptyInsights{})
	if !strings.Contains(empty, "No check-ins yet") {
		t.Errorf("expected empty-state message, got %q", empty)
	}

	delta := -4.5
	ready := analytics.ReadyInsights{
		Trend: &analytics.TrendInsights{
			Points:        []analytics.TrendPoint{{Date: "2024-01-07", MovingAverage: 40}, {Date: "2024-01-08", MovingAverage: 35.5}},
			LatestAverage: 35.5,
			AverageDelta:  &delta,
		},
		Correlations: []analytics.CorrelationInsights{{
			Type:        analytics.CorrelationSymptomsSameDay,
			Coefficient: 0.62,
			SampleSize:  12,
			Effect:      "large",
			Confidence:  "medium",
		}},
		GeneratedAt: "2024-01-08",
	}
	out := RenderInsights(ready)
	for _, want := range []string{"Data through 2024-01-08", "latest 35.5", "(-4.5)", "Symptoms vs fatigue (same day)", "Not causal."} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	noTrend := RenderInsights(analytics.ReadyInsights{GeneratedAt: "2024-01-02"})
	if !strings.Contains(noTrend, "Log at least 7 days") {
		t.Errorf("expected trend placeholder, got %q", noTrend)
	}
	if !strings.Contains(noTrend, "Not enough paired days yet") {
		t.Errorf("expected correlation placeholder, got %q", noTrend)
	}
}

func TestRenderReview(t *testing.T) {
	if out := RenderReview(nil); !strings.Contains(out, "No weekly review yet") {
		t.Errorf("expected empty review message, got %q", out)
	}

	best, toughest := "2024-01-10", "2024-01-12"
	r := &models.WeeklyReview{
		ID:                    "r1",
		StartDate:             "2024-01-09",
		EndDate:               "2024-01-15",
		GeneratedAt:           time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC),
		TrendHighlights:       []string{"Average fatigue: 42"},
		CorrelationHighlights: []string{"Symptoms vs fatigue (same day)"},
		BestDay:               &best,
		ToughestDay:           &toughest,
		AdherenceSummary:      "Logged 7 of 7 days",
	}
	out := RenderReview(r)
	for _, want := range []string{"Weekly review 2024-01-09 to 2024-01-15", "Average fatigue: 42", "Patterns", "Best day:     2024-01-10", "Toughest day: 2024-01-12", "Logged 7 of 7 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderNudge(t *testing.T) {
	if got := RenderNudge(review.Status{}); got != "" {
		t.Errorf("expected no nudge without a review, got %q", got)
	}

	r := &models.WeeklyReview{StartDate: "2024-01-09", EndDate: "2024-01-15"}
	if got := RenderNudge(review.Status{Latest: r}); got != "" {
		t.Errorf("expected no nudge when in-app nudge is off, got %q", got)
	}

	r.NeedsInAppNudge = true
	got := RenderNudge(review.Status{Latest: r})
	if !strings.Contains(got, "2024-01-09") || !strings.Contains(got, "chronorex review show") {
		t.Errorf("unexpected nudge: %q", got)
	}
}
