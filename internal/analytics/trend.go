package analytics

import "github.com/Tholomir/ChronoRex/internal/constants"

// TrendPoint is one moving-average value, stamped with the last date in its window
type TrendPoint struct {
	Date          string  `json:"date"`
	MovingAverage float64 `json:"moving_average"`
}

// TrendInsights is the bounded moving-average series over fatigue
type TrendInsights struct {
	Points        []TrendPoint `json:"points"`
	LatestAverage float64      `json:"latest_average"`
	AverageDelta  *float64     `json:"average_delta,omitempty"`
}

// fatigueWindow is a fixed-capacity ring buffer holding the most recent fatigue values.
type fatigueWindow struct {
	values []float64
	next   int
	count  int
	sum    float64
}

func newFatigueWindow(size int) *fatigueWindow {
	return &fatigueWindow{values: make([]float64, size)}
}

func (w *fatigueWindow) push(v float64) {
	if w.count == len(w.values) {
		w.sum -= w.values[w.next]
	} else {
		w.count++
	}
	w.values[w.next] = v
	w.sum += v
	w.next = (w.next + 1) % len(w.values)
}

func (w *fatigueWindow) full() bool {
	return w.count == len(w.values)
}

func (w *fatigueWindow) mean() float64 {
	return w.sum / float64(w.count)
}

// BuildTrend computes the 7-entry moving average of fatigue. The window advances over logged
// days, so calendar gaps between check-ins are not visible in the series.
// Returns nil when no window fills up.
func BuildTrend(metrics []DailyMetrics) *TrendInsights {
	if len(metrics) == 0 {
		return nil
	}

	window := newFatigueWindow(constants.TrendWindowSize)
	var points []TrendPoint
	for _, m := range sortedMetrics(metrics) {
		window.push(m.Fatigue)
		if window.full() {
			points = append(points, TrendPoint{
				Date:          m.Date,
				MovingAverage: window.mean(),
			})
		}
	}

	if len(points) == 0 {
		return nil
	}

	latest := points[len(points)-1]
	trend := &TrendInsights{LatestAverage: latest.MovingAverage}
	if len(points) > 1 {
		delta := latest.MovingAverage - points[len(points)-2].MovingAverage
		trend.AverageDelta = &delta
	}

	if len(points) > constants.MaxTrendPoints {
		points = points[len(points)-constants.MaxTrendPoints:]
	}
	trend.Points = points

	return trend
}
