package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/review"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws values scaled to 0-100 as block characters.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		idx := int(v / 100 * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// RenderInsights formats an insights result for the terminal.
func RenderInsights(result analytics.InsightsResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Insights"))
	b.WriteString("\n")

	ready, ok := result.(analytics.ReadyInsights)
	if !ok {
		b.WriteString(mutedStyle.Render("No check-ins yet. Log one with 'chronorex checkin'."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(mutedStyle.Render("Data through " + ready.GeneratedAt))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Fatigue trend"))
	b.WriteString("\n")
	if ready.Trend == nil {
		fmt.Fprintf(&b, "Log at least %d days to see a %d-day moving average.\n",
			constants.TrendWindowSize, constants.TrendWindowSize)
	} else {
		values := make([]float64, len(ready.Trend.Points))
		for i, p := range ready.Trend.Points {
			values[i] = p.MovingAverage
		}
		fmt.Fprintf(&b, "%s  latest %s", Sparkline(values), strconv.FormatFloat(ready.Trend.LatestAverage, 'f', 1, 64))
		if d := ready.Trend.AverageDelta; d != nil {
			fmt.Fprintf(&b, " (%+.1f)", *d)
		}
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Correlations"))
	b.WriteString("\n")
	if len(ready.Correlations) == 0 {
		fmt.Fprintf(&b, "Not enough paired days yet (%d needed per signal).\n", constants.MinCorrelationSamples)
	}
	for _, c := range ready.Correlations {
		fmt.Fprintf(&b, "• %s\n  %s\n", c.Headline(), mutedStyle.Render(c.Narrative()))
	}
	return b.String()
}

// RenderReview formats a stored weekly review.
func RenderReview(r *models.WeeklyReview) string {
	if r == nil {
		return mutedStyle.Render("No weekly review yet. Reviews appear after seven check-ins.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Weekly review %s to %s", r.StartDate, r.EndDate)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Generated " + r.GeneratedAt.Local().Format("2006-01-02 15:04")))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Highlights"))
	b.WriteString("\n")
	for _, h := range r.TrendHighlights {
		fmt.Fprintf(&b, "• %s\n", h)
	}
	if len(r.CorrelationHighlights) > 0 {
		b.WriteString(headingStyle.Render("Patterns"))
		b.WriteString("\n")
		for _, h := range r.CorrelationHighlights {
			fmt.Fprintf(&b, "• %s\n", h)
		}
	}

	b.WriteString("\n")
	if r.BestDay != nil {
		fmt.Fprintf(&b, "Best day:     %s\n", *r.BestDay)
	}
	if r.ToughestDay != nil {
		fmt.Fprintf(&b, "Toughest day: %s\n", *r.ToughestDay)
	}
	b.WriteString(r.AdherenceSummary)
	b.WriteString("\n")
	return b.String()
}

// RenderNudge returns the in-app banner for an unseen review, or "" when there is nothing to show.
func RenderNudge(status review.Status) string {
	if !status.NeedsNudge() {
		return ""
	}
	msg := fmt.Sprintf("Your weekly review for %s to %s is ready. Run 'chronorex review show'.",
		status.Latest.StartDate, status.Latest.EndDate)
	return bannerStyle.Render(msg)
}

// RenderWarning styles a non-fatal notice.
func RenderWarning(msg string) string {
	return warningStyle.Render(msg)
}
