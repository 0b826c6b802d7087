package export

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

const (
	reportTitle         = "ChronoRex Insights Report"
	reportTrendRows     = 7
	reportTopSymptoms   = 5
	reportTopActivities = 5
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// ReportData is everything the insights report is built from.
type ReportData struct {
	GeneratedOn string // YYYY-MM-DD
	Snapshot    storage.Snapshot
	Insights    analytics.InsightsResult
	Review      *models.WeeklyReview
}

// WriteReport writes the insights report as Markdown and as a standalone HTML page.
func (e *Exporter) WriteReport() (Result, error) {
	snap, err := storage.LoadSnapshot(e.store)
	if err != nil {
		return Result{}, err
	}
	latest, err := e.store.GetLatestWeeklyReview()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load latest weekly review: %w", err)
	}

	markdown := BuildReportMarkdown(ReportData{
		GeneratedOn: e.clock.Now().Format(constants.DateFormat),
		Snapshot:    snap,
		Insights:    analytics.Calculate(snap.Days, snap.Symptoms, snap.Activities),
		Review:      latest,
	})
	page, err := RenderHTML(reportTitle, markdown)
	if err != nil {
		return Result{}, err
	}

	if err := e.prepareDir(); err != nil {
		return Result{}, err
	}
	result := Result{Dir: e.dir}
	for _, f := range []struct {
		ext  string
		data []byte
	}{
		{"md", []byte(markdown)},
		{"html", page},
	} {
		path, err := e.writeFile(e.fileName("report", f.ext), f.data)
		if err != nil {
			return Result{}, err
		}
		result.Files = append(result.Files, path)
	}

	logger.Info("Insights report written", "dir", e.dir, "days", len(snap.Days))
	return result, nil
}

// RenderHTML converts the Markdown body to HTML and wraps it in a page.
func RenderHTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{title, template.HTML(body.String())}) //nolint: gosec
	if err != nil {
		return nil, fmt.Errorf("failed to render report page: %w", err)
	}
	return page.Bytes(), nil
}

// BuildReportMarkdown lays out the report sections.
func BuildReportMarkdown(data ReportData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\nGenerated %s\n\n", reportTitle, data.GeneratedOn)

	writeOverview(&b, data.Snapshot)

	ready, ok := data.Insights.(analytics.ReadyInsights)
	if !ok {
		b.WriteString("## Insights\n\nNo check-ins logged yet.\n\n")
	} else {
		writeTrend(&b, ready.Trend)
		writeCorrelations(&b, ready.Correlations)
	}

	writeSymptoms(&b, data.Snapshot.Symptoms)
	writeActivities(&b, data.Snapshot.Activities)
	writeReview(&b, data.Review)

	return b.String()
}

func writeOverview(b *strings.Builder, snap storage.Snapshot) {
	b.WriteString("## Overview\n\n")
	if len(snap.Days) == 0 {
		b.WriteString("- Check-ins: 0\n")
	} else {
		first, last := snap.Days[0].Date, snap.Days[0].Date
		for _, d := range snap.Days {
			if d.Date < first {
				first = d.Date
			}
			if d.Date > last {
				last = d.Date
			}
		}
		fmt.Fprintf(b, "- Check-ins: %d (%s to %s)\n", len(snap.Days), first, last)
	}
	fmt.Fprintf(b, "- Symptoms logged: %d\n", len(snap.Symptoms))
	fmt.Fprintf(b, "- Activities logged: %d\n\n", len(snap.Activities))
}

func writeTrend(b *strings.Builder, trend *analytics.TrendInsights) {
	b.WriteString("## Fatigue trend\n\n")
	if trend == nil {
		fmt.Fprintf(b, "Not enough check-ins for a trend yet (%d needed).\n\n", constants.TrendWindowSize)
		return
	}

	fmt.Fprintf(b, "Latest %d-day average fatigue: %s", constants.TrendWindowSize, oneDecimal(trend.LatestAverage))
	if trend.AverageDelta != nil {
		fmt.Fprintf(b, " (%s from the previous window)", signed(*trend.AverageDelta))
	}
	b.WriteString("\n\n")

	points := trend.Points
	if len(points) > reportTrendRows {
		points = points[len(points)-reportTrendRows:]
	}
	b.WriteString("| Date | Average fatigue |\n|---|---|\n")
	for _, p := range points {
		fmt.Fprintf(b, "| %s | %s |\n", p.Date, oneDecimal(p.MovingAverage))
	}
	b.WriteString("\n")
}

func writeCorrelations(b *strings.Builder, correlations []analytics.CorrelationInsights) {
	b.WriteString("## Correlations\n\n")
	if len(correlations) == 0 {
		b.WriteString("No correlations with enough paired data yet.\n\n")
		return
	}
	for _, c := range correlations {
		fmt.Fprintf(b, "- **%s**: %s\n", c.Headline(), c.Narrative())
	}
	b.WriteString("\n")
}

type tally struct {
	name  string
	count int
	sum   int
}

func (t tally) average() float64 {
	return float64(t.sum) / float64(t.count)
}

// topTallies orders by count descending, then name.
func topTallies(byName map[string]*tally, limit int) []tally {
	out := make([]tally, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func writeSymptoms(b *strings.Builder, symptoms []models.SymptomEntry) {
	if len(symptoms) == 0 {
		return
	}
	byName := make(map[string]*tally)
	for _, s := range symptoms {
		t, ok := byName[s.Name]
		if !ok {
			t = &tally{name: s.Name}
			byName[s.Name] = t
		}
		t.count++
		t.sum += s.Severity
	}

	b.WriteString("## Most frequent symptoms\n\n| Symptom | Entries | Average severity |\n|---|---|---|\n")
	for _, t := range topTallies(byName, reportTopSymptoms) {
		fmt.Fprintf(b, "| %s | %d | %s |\n", escapeCell(t.name), t.count, oneDecimal(t.average()))
	}
	b.WriteString("\n")
}

func writeActivities(b *strings.Builder, activities []models.ActivityEntry) {
	if len(activities) == 0 {
		return
	}
	byType := make(map[string]*tally)
	for _, a := range activities {
		t, ok := byType[a.Type]
		if !ok {
			t = &tally{name: a.Type}
			byType[a.Type] = t
		}
		t.count++
		t.sum += a.PerceivedExhaustion
	}

	b.WriteString("## Most frequent activities\n\n| Activity | Entries | Average exhaustion |\n|---|---|---|\n")
	for _, t := range topTallies(byType, reportTopActivities) {
		fmt.Fprintf(b, "| %s | %d | %s |\n", escapeCell(t.name), t.count, oneDecimal(t.average()))
	}
	b.WriteString("\n")
}

func writeReview(b *strings.Builder, review *models.WeeklyReview) {
	b.WriteString("## Latest weekly review\n\n")
	if review == nil {
		b.WriteString("No weekly review generated yet.\n")
		return
	}

	fmt.Fprintf(b, "### %s to %s\n\n", review.StartDate, review.EndDate)
	for _, h := range review.TrendHighlights {
		fmt.Fprintf(b, "- %s\n", h)
	}
	for _, h := range review.CorrelationHighlights {
		fmt.Fprintf(b, "- %s\n", h)
	}
	b.WriteString("\n")
	if review.BestDay != nil {
		fmt.Fprintf(b, "Best day: %s\n\n", *review.BestDay)
	}
	if review.ToughestDay != nil {
		fmt.Fprintf(b, "Toughest day: %s\n\n", *review.ToughestDay)
	}
	fmt.Fprintf(b, "%s\n", review.AdherenceSummary)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func signed(v float64) string {
	if v > 0 {
		return "+" + oneDecimal(v)
	}
	return oneDecimal(v)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
