package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

// CorrelationType identifies which signal is paired with fatigue, and at what lag
type CorrelationType string

const (
	CorrelationSymptomsSameDay   CorrelationType = "symptoms_same_day"
	CorrelationActivitiesSameDay CorrelationType = "activities_same_day"
	CorrelationSymptomsLagOne    CorrelationType = "symptoms_lag_one"
	CorrelationActivitiesLagOne  CorrelationType = "activities_lag_one"
)

// IsLagged reports whether the signal is taken from the previous day.
func (t CorrelationType) IsLagged() bool {
	return t == CorrelationSymptomsLagOne || t == CorrelationActivitiesLagOne
}

// IsSymptom reports whether the paired signal is symptom severity.
func (t CorrelationType) IsSymptom() bool {
	return t == CorrelationSymptomsSameDay || t == CorrelationSymptomsLagOne
}

// CorrelationInsights is a reported association between fatigue and one signal
type CorrelationInsights struct {
	Type        CorrelationType `json:"type"`
	Coefficient float64         `json:"coefficient"`
	SampleSize  int             `json:"sample_size"`
	Effect      string          `json:"effect"`
	Confidence  string          `json:"confidence"`
}

// Headline is the short title shown above a correlation.
func (c CorrelationInsights) Headline() string {
	switch c.Type {
	case CorrelationSymptomsSameDay:
		return "Symptoms vs fatigue (same day)"
	case CorrelationActivitiesSameDay:
		return "Activity exhaustion vs fatigue (same day)"
	case CorrelationSymptomsLagOne:
		return "Symptoms yesterday vs fatigue today"
	case CorrelationActivitiesLagOne:
		return "Activity exhaustion yesterday vs fatigue today"
	default:
		return "Correlation"
	}
}

// Narrative describes the association in plain words. It always ends with "Not causal."
func (c CorrelationInsights) Narrative() string {
	direction := "similar"
	switch {
	case c.Coefficient > constants.DirectionThreshold:
		direction = "higher"
	case c.Coefficient < -constants.DirectionThreshold:
		direction = "lower"
	}

	target := "activity exhaustion"
	if c.Type.IsSymptom() {
		target = "symptom severity"
	}

	timing := "today"
	if c.Type.IsLagged() {
		timing = "yesterday"
	}

	return fmt.Sprintf("%s %s %s correlated with fatigue today (r %s, %s effect, %s confidence). Not causal.",
		strings.ToUpper(direction[:1])+direction[1:],
		target,
		timing,
		formatFixed(c.Coefficient, 2),
		c.Effect,
		c.Confidence,
	)
}

// pairSample is one (fatigue, signal) observation
type pairSample struct {
	fatigue float64
	signal  float64
}

// BuildCorrelations computes the four fatigue pairings. A pairing is omitted when it has fewer
// than the minimum paired samples or when either side has no variance.
func BuildCorrelations(metrics []DailyMetrics) []CorrelationInsights {
	sorted := sortedMetrics(metrics)
	byDate := make(map[string]DailyMetrics, len(sorted))
	for _, m := range sorted {
		byDate[m.Date] = m
	}

	var sameDaySymptoms, sameDayActivities, lagSymptoms, lagActivities []pairSample
	for _, today := range sorted {
		if today.SymptomAverage != nil {
			sameDaySymptoms = append(sameDaySymptoms, pairSample{today.Fatigue, *today.SymptomAverage})
		}
		if today.ActivityAverage != nil {
			sameDayActivities = append(sameDayActivities, pairSample{today.Fatigue, *today.ActivityAverage})
		}

		prevDate, err := utils.AddDays(today.Date, -1)
		if err != nil {
			continue
		}
		// A missing check-in yesterday drops the pair; nothing is imputed.
		yesterday, ok := byDate[prevDate]
		if !ok {
			continue
		}
		if yesterday.SymptomAverage != nil {
			lagSymptoms = append(lagSymptoms, pairSample{today.Fatigue, *yesterday.SymptomAverage})
		}
		if yesterday.ActivityAverage != nil {
			lagActivities = append(lagActivities, pairSample{today.Fatigue, *yesterday.ActivityAverage})
		}
	}

	candidates := []struct {
		kind    CorrelationType
		samples []pairSample
	}{
		{CorrelationSymptomsSameDay, sameDaySymptoms},
		{CorrelationActivitiesSameDay, sameDayActivities},
		{CorrelationSymptomsLagOne, lagSymptoms},
		{CorrelationActivitiesLagOne, lagActivities},
	}

	correlations := make([]CorrelationInsights, 0, len(candidates))
	for _, c := range candidates {
		if insight, ok := correlationFromSamples(c.kind, c.samples); ok {
			correlations = append(correlations, insight)
		}
	}
	return correlations
}

func correlationFromSamples(kind CorrelationType, samples []pairSample) (CorrelationInsights, bool) {
	if len(samples) < constants.MinCorrelationSamples {
		return CorrelationInsights{}, false
	}

	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.fatigue
		ys[i] = s.signal
	}

	r, ok := pearson(xs, ys)
	if !ok {
		return CorrelationInsights{}, false
	}

	return CorrelationInsights{
		Type:        kind,
		Coefficient: r,
		SampleSize:  len(samples),
		Effect:      effectSizeLabel(r),
		Confidence:  confidenceLabel(len(samples)),
	}, true
}

// pearson computes the Pearson correlation coefficient, clamped to [-1, 1].
// ok is false when the vectors differ in length, are empty, or either has zero variance.
func pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, false
	}
	// Rounding in the mean leaves a tiny spread on constant input, so compare values directly.
	if isConstant(xs) || isConstant(ys) {
		return 0, false
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0, false
	}

	r := numerator / math.Sqrt(denomX*denomY)
	return math.Max(-1, math.Min(1, r)), true
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

func effectSizeLabel(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= constants.EffectLargeThreshold:
		return "large"
	case abs >= constants.EffectMediumThreshold:
		return "medium"
	case abs >= constants.EffectSmallThreshold:
		return "small"
	default:
		return "trace"
	}
}

func confidenceLabel(n int) string {
	switch {
	case n < constants.ConfidenceLowMaxSamples:
		return "Low"
	case n < constants.ConfidenceMediumMaxSamples:
		return "Medium"
	default:
		return "High"
	}
}
