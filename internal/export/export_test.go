package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/storage/sqlite"
)

var exportClock = analytics.FixedClock{At: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func setupStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.New(filepath.Join(t.TempDir(), "chronorex.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		day := models.Day{
			Date:         base.AddDate(0, 0, i).Format("2006-01-02"),
			Restedness:   50 + 5*(i%3),
			SleepQuality: 3,
			Tags:         []string{"work"},
		}
		if err := store.SaveDay(day); err != nil {
			t.Fatalf("SaveDay failed: %v", err)
		}
	}
	if err := store.AddSymptom(models.SymptomEntry{
		ID: "s1", Date: "2024-01-02", Time: base.AddDate(0, 0, 1), Name: "Headache", Severity: 6,
		Note: strPtr("after lunch, mild"),
	}); err != nil {
		t.Fatalf("AddSymptom failed: %v", err)
	}
	if err := store.AddActivity(models.ActivityEntry{
		ID: "a1", Date: "2024-01-03", Time: base.AddDate(0, 0, 2), Type: "walk",
		DurationMin: intPtr(30), PerceivedExhaustion: 4,
	}); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	return store
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteCSV(t *testing.T) {
	store := setupStore(t)
	dir := filepath.Join(t.TempDir(), "exports")

	result, err := NewExporter(store, exportClock, dir).WriteCSV()
	if err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	wantNames := []string{
		"chronorex_days_20240301_0900.csv",
		"chronorex_symptoms_20240301_0900.csv",
		"chronorex_activities_20240301_0900.csv",
		"chronorex_settings_20240301_0900.csv",
		"chronorex_weekly_reviews_20240301_0900.csv",
		"chronorex_data_dictionary_20240301_0900.csv",
	}
	if len(result.Files) != len(wantNames) {
		t.Fatalf("Expected %d files, got %d", len(wantNames), len(result.Files))
	}
	for i, want := range wantNames {
		if filepath.Base(result.Files[i]) != want {
			t.Errorf("File %d = %s, want %s", i, filepath.Base(result.Files[i]), want)
		}
	}

	days := readCSV(t, result.Files[0])
	if len(days) != 9 {
		t.Errorf("Expected header plus 8 days, got %d rows", len(days))
	}
	if days[1][0] != "2024-01-01" || days[1][5] != "work" {
		t.Errorf("Unexpected first day row: %v", days[1])
	}

	symptoms := readCSV(t, result.Files[1])
	if got := symptoms[1][5]; got != "after lunch, mild" {
		t.Errorf("Expected note with comma to round-trip, got %q", got)
	}
	if got := symptoms[1][2]; got != "2024-01-02T08:00:00Z" {
		t.Errorf("Unexpected symptom time %q", got)
	}

	activities := readCSV(t, result.Files[2])
	if activities[1][4] != "30" || activities[1][5] != "4" {
		t.Errorf("Unexpected activity row: %v", activities[1])
	}

	reviews := readCSV(t, result.Files[4])
	if len(reviews) != 1 {
		t.Errorf("Expected header only for weekly reviews, got %d rows", len(reviews))
	}
}

func TestWeeklyReviewRows(t *testing.T) {
	older := models.WeeklyReview{
		ID: "old", StartDate: "2024-01-01", EndDate: "2024-01-07",
		GeneratedAt:     time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC),
		TrendHighlights: []string{"a", "b"},
	}
	newer := models.WeeklyReview{
		ID: "new", StartDate: "2024-01-08", EndDate: "2024-01-14",
		GeneratedAt: time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC),
		BestDay:     strPtr("2024-01-09"),
	}

	rows := WeeklyReviewRows([]models.WeeklyReview{older, newer})
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "new" || rows[2][0] != "old" {
		t.Errorf("Expected newest first, got %s then %s", rows[1][0], rows[2][0])
	}
	if rows[2][4] != "a | b" {
		t.Errorf("Expected joined highlights, got %q", rows[2][4])
	}
	if rows[1][6] != "2024-01-09" || rows[2][6] != "" {
		t.Errorf("Unexpected best day columns: %q, %q", rows[1][6], rows[2][6])
	}
}

func TestSettingsRows(t *testing.T) {
	rows := SettingsRows(models.DefaultSettings())
	if len(rows) != 2 || len(rows[0]) != len(rows[1]) {
		t.Fatalf("Expected header and one row of equal width, got %v", rows)
	}
	if rows[1][0] != "08:00" || rows[1][3] != "false" {
		t.Errorf("Unexpected settings row: %v", rows[1])
	}
}

func TestBuildReportMarkdown(t *testing.T) {
	store := setupStore(t)
	snap, err := storage.LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	markdown := BuildReportMarkdown(ReportData{
		GeneratedOn: "2024-03-01",
		Snapshot:    snap,
		Insights:    analytics.Calculate(snap.Days, snap.Symptoms, snap.Activities),
	})

	for _, want := range []string{
		"# ChronoRex Insights Report",
		"Generated 2024-03-01",
		"- Check-ins: 8 (2024-01-01 to 2024-01-08)",
		"## Fatigue trend",
		"| 2024-01-08 |",
		"| Headache | 1 | 6.0 |",
		"| walk | 1 | 4.0 |",
		"No weekly review generated yet.",
	} {
		if !strings.Contains(markdown, want) {
			t.Errorf("Report missing %q:\n%s", want, markdown)
		}
	}
}

func TestBuildReportMarkdown_Empty(t *testing.T) {
	markdown := BuildReportMarkdown(ReportData{
		GeneratedOn: "2024-03-01",
		Insights:    analytics.EmptyInsights{},
	})
	if !strings.Contains(markdown, "No check-ins logged yet.") {
		t.Errorf("Expected empty insights notice:\n%s", markdown)
	}
	if strings.Contains(markdown, "Most frequent symptoms") {
		t.Error("Did not expect a symptoms section without symptoms")
	}
}

func TestRenderHTML(t *testing.T) {
	page, err := RenderHTML("Report <1>", "# Title\n\n| A | B |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	html := string(page)
	for _, want := range []string{"<title>Report &lt;1&gt;</title>", "<h1>Title</h1>", "<table>", "<td>1</td>"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
}

func TestWriteReport(t *testing.T) {
	store := setupStore(t)
	dir := t.TempDir()

	result, err := NewExporter(store, exportClock, dir).WriteReport()
	if err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("Expected 2 files, got %v", result.Files)
	}
	if filepath.Base(result.Files[1]) != "chronorex_report_20240301_0900.html" {
		t.Errorf("Unexpected HTML file name %s", result.Files[1])
	}
	data, err := os.ReadFile(result.Files[1])
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "<h2>Correlations</h2>") {
		t.Errorf("Expected correlations heading in HTML")
	}
}
