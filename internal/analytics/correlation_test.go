package analytics

import (
	"fmt"
	"math"
	"testing"

	"github.com/Tholomir/ChronoRex/internal/models"
)

func metricsWithSymptoms(t *testing.T, fatigue []float64, symptoms []*float64) []DailyMetrics {
	t.Helper()
	out := make([]DailyMetrics, 0, len(fatigue))
	for i := range fatigue {
		out = append(out, DailyMetrics{
			Date:           dateAfter(t, "2024-03-01", i),
			Fatigue:        fatigue[i],
			SymptomAverage: symptoms[i],
		})
	}
	return out
}

func findCorrelation(list []CorrelationInsights, kind CorrelationType) (CorrelationInsights, bool) {
	for _, c := range list {
		if c.Type == kind {
			return c, true
		}
	}
	return CorrelationInsights{}, false
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		want   float64
		wantOK bool
	}{
		{"perfect positive", []float64{1, 2, 3, 4, 5}, []float64{3, 5, 7, 9, 11}, 1, true},
		{"perfect negative", []float64{1, 2, 3, 4}, []float64{8, 6, 4, 2}, -1, true},
		{"constant y", []float64{1, 2, 3}, []float64{4, 4, 4}, 0, false},
		{"constant x", []float64{2, 2, 2}, []float64{1, 5, 9}, 0, false},
		{"constant repeating fraction", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, []float64{7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3, 7.0 / 3}, 0, false},
		{"length mismatch", []float64{1, 2}, []float64{1}, 0, false},
		{"empty", nil, nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pearson(tt.xs, tt.ys)
			if ok != tt.wantOK {
				t.Fatalf("pearson() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("pearson() = %v, want %v", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("pearson() = %v outside [-1, 1]", got)
			}
		})
	}
}

func TestBuildCorrelations_LinearSameDay(t *testing.T) {
	fatigue := []float64{10, 20, 30, 40, 50}
	symptoms := []*float64{ptr(21.0), ptr(41.0), ptr(61.0), ptr(81.0), ptr(101.0)}

	correlations := BuildCorrelations(metricsWithSymptoms(t, fatigue, symptoms))
	c, ok := findCorrelation(correlations, CorrelationSymptomsSameDay)
	if !ok {
		t.Fatal("Expected same-day symptom correlation")
	}
	if math.Abs(c.Coefficient-1) > 1e-9 {
		t.Errorf("Expected coefficient ~1, got %v", c.Coefficient)
	}
	if c.Effect != "large" {
		t.Errorf("Expected large effect, got %s", c.Effect)
	}
	if c.Confidence != "Low" {
		t.Errorf("Expected Low confidence, got %s", c.Confidence)
	}
	if c.SampleSize != 5 {
		t.Errorf("Expected sample size 5, got %d", c.SampleSize)
	}
}

func TestBuildCorrelations_ConstantSignalOmitted(t *testing.T) {
	tests := []struct {
		name    string
		days    int
		average float64
	}{
		{"exact average", 5, 4.0},
		{"repeating fraction", 10, 7.0 / 3.0},
		{"repeating fraction, 11 days", 11, 7.0 / 3.0},
		{"repeating fraction, 12 days", 12, 7.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fatigue := make([]float64, tt.days)
			symptoms := make([]*float64, tt.days)
			for i := range fatigue {
				fatigue[i] = float64(90 - i*5)
				symptoms[i] = ptr(tt.average)
			}

			correlations := BuildCorrelations(metricsWithSymptoms(t, fatigue, symptoms))
			if c, ok := findCorrelation(correlations, CorrelationSymptomsSameDay); ok {
				t.Errorf("Expected zero-variance pairing to be omitted, got r=%v", c.Coefficient)
			}
			if c, ok := findCorrelation(correlations, CorrelationSymptomsLagOne); ok {
				t.Errorf("Expected zero-variance lag pairing to be omitted, got r=%v", c.Coefficient)
			}
		})
	}
}

func TestBuildCorrelations_ConstantAverageFromEntries(t *testing.T) {
	var days []models.Day
	var symptoms []models.SymptomEntry
	for i := 0; i < 12; i++ {
		date := dateAfter(t, "2024-03-01", i)
		days = append(days, models.Day{Date: date, Restedness: 30 + i*5, SleepQuality: 3})
		for j, severity := range []int{2, 2, 3} {
			symptoms = append(symptoms, models.SymptomEntry{
				ID:       fmt.Sprintf("%s-%d", date, j),
				Date:     date,
				Name:     "Headache",
				Severity: severity,
			})
		}
	}

	correlations := BuildCorrelations(BuildDailyMetrics(days, symptoms, nil))
	for _, c := range correlations {
		if c.Type.IsSymptom() {
			t.Errorf("Expected %s to be omitted for a constant daily average, got r=%v (n=%d)",
				c.Type, c.Coefficient, c.SampleSize)
		}
	}
}

func TestBuildCorrelations_MinimumSamples(t *testing.T) {
	fatigue := []float64{10, 60, 30, 90}
	symptoms := []*float64{ptr(1.0), ptr(9.0), nil, nil}

	correlations := BuildCorrelations(metricsWithSymptoms(t, fatigue, symptoms))
	for _, c := range correlations {
		if c.SampleSize < 3 {
			t.Errorf("%s reported with %d samples", c.Type, c.SampleSize)
		}
	}
	if _, ok := findCorrelation(correlations, CorrelationSymptomsSameDay); ok {
		t.Error("Expected same-day pairing with 2 samples to be omitted")
	}
}

func TestBuildCorrelations_LagRequiresPreviousCalendarDay(t *testing.T) {
	metrics := []DailyMetrics{
		{Date: "2024-03-01", Fatigue: 10, ActivityAverage: ptr(2.0)},
		{Date: "2024-03-02", Fatigue: 30, ActivityAverage: ptr(5.0)},
		{Date: "2024-03-03", Fatigue: 70, ActivityAverage: ptr(9.0)},
		{Date: "2024-03-04", Fatigue: 90},
		// gap: 2024-03-06 has no metrics for 2024-03-05
		{Date: "2024-03-06", Fatigue: 20},
	}

	correlations := BuildCorrelations(metrics)

	lag, ok := findCorrelation(correlations, CorrelationActivitiesLagOne)
	if !ok {
		t.Fatal("Expected lagged activity correlation")
	}
	if lag.SampleSize != 3 {
		t.Errorf("Expected 3 lagged pairs, got %d", lag.SampleSize)
	}
	if lag.Coefficient <= 0 {
		t.Errorf("Expected positive lagged coefficient, got %v", lag.Coefficient)
	}

	same, ok := findCorrelation(correlations, CorrelationActivitiesSameDay)
	if !ok {
		t.Fatal("Expected same-day activity correlation")
	}
	if same.SampleSize != 3 {
		t.Errorf("Expected 3 same-day pairs, got %d", same.SampleSize)
	}
}

func TestBuildCorrelations_Order(t *testing.T) {
	metrics := []DailyMetrics{
		{Date: "2024-03-01", Fatigue: 10, SymptomAverage: ptr(1.0), ActivityAverage: ptr(9.0)},
		{Date: "2024-03-02", Fatigue: 50, SymptomAverage: ptr(4.0), ActivityAverage: ptr(2.0)},
		{Date: "2024-03-03", Fatigue: 20, SymptomAverage: ptr(8.0), ActivityAverage: ptr(6.0)},
		{Date: "2024-03-04", Fatigue: 80, SymptomAverage: ptr(3.0), ActivityAverage: ptr(1.0)},
	}

	correlations := BuildCorrelations(metrics)
	want := []CorrelationType{
		CorrelationSymptomsSameDay,
		CorrelationActivitiesSameDay,
		CorrelationSymptomsLagOne,
		CorrelationActivitiesLagOne,
	}
	if len(correlations) != len(want) {
		t.Fatalf("Expected %d correlations, got %d", len(want), len(correlations))
	}
	for i, kind := range want {
		if correlations[i].Type != kind {
			t.Errorf("Position %d: expected %s, got %s", i, kind, correlations[i].Type)
		}
	}
}

func TestEffectSizeLabel(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0.5, "large"},
		{-0.75, "large"},
		{0.3, "medium"},
		{-0.49, "medium"},
		{0.1, "small"},
		{0.29, "small"},
		{0.09, "trace"},
		{0, "trace"},
	}
	for _, tt := range tests {
		if got := effectSizeLabel(tt.r); got != tt.want {
			t.Errorf("effectSizeLabel(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{3, "Low"},
		{9, "Low"},
		{10, "Medium"},
		{20, "Medium"},
		{21, "High"},
		{100, "High"},
	}
	for _, tt := range tests {
		if got := confidenceLabel(tt.n); got != tt.want {
			t.Errorf("confidenceLabel(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestCorrelationNarrative(t *testing.T) {
	tests := []struct {
		name string
		c    CorrelationInsights
		want string
	}{
		{
			name: "lagged symptoms higher",
			c:    CorrelationInsights{Type: CorrelationSymptomsLagOne, Coefficient: 0.8234, Effect: "large", Confidence: "Low"},
			want: "Higher symptom severity yesterday correlated with fatigue today (r 0.82, large effect, Low confidence). Not causal.",
		},
		{
			name: "same-day activity lower",
			c:    CorrelationInsights{Type: CorrelationActivitiesSameDay, Coefficient: -0.3471, Effect: "medium", Confidence: "Medium"},
			want: "Lower activity exhaustion today correlated with fatigue today (r -0.35, medium effect, Medium confidence). Not causal.",
		},
		{
			name: "similar within threshold",
			c:    CorrelationInsights{Type: CorrelationSymptomsSameDay, Coefficient: 0.05, Effect: "trace", Confidence: "High"},
			want: "Similar symptom severity today correlated with fatigue today (r 0.05, trace effect, High confidence). Not causal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Narrative(); got != tt.want {
				t.Errorf("Narrative() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCorrelationHeadline(t *testing.T) {
	c := CorrelationInsights{Type: CorrelationActivitiesLagOne}
	if got := c.Headline(); got != "Activity exhaustion yesterday vs fatigue today" {
		t.Errorf("Headline() = %q", got)
	}
}
