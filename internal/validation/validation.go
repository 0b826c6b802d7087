// Package validation checks diary records before they are stored and audits a stored dataset.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

// FieldError reports one invalid field on a record
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func rangeError(field string, value, lo, hi int) error {
	return &FieldError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, value)}
}

func validateDate(date string) error {
	if !utils.ValidateDateFormat(date) {
		return &FieldError{Field: "date", Message: fmt.Sprintf("must be YYYY-MM-DD, got %q", date)}
	}
	return nil
}

// ValidateDay checks a check-in's ranges.
func ValidateDay(day models.Day) error {
	if err := validateDate(day.Date); err != nil {
		return err
	}
	if day.Restedness < 0 || day.Restedness > 100 {
		return rangeError("restedness", day.Restedness, 0, 100)
	}
	if day.SleepQuality < 1 || day.SleepQuality > 5 {
		return rangeError("sleep quality", day.SleepQuality, 1, 5)
	}
	for _, tag := range day.Tags {
		if strings.TrimSpace(tag) == "" {
			return &FieldError{Field: "tags", Message: "must not contain empty tags"}
		}
	}
	return nil
}

// ValidateSymptom checks a symptom entry.
func ValidateSymptom(entry models.SymptomEntry) error {
	if err := validateDate(entry.Date); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Name) == "" {
		return &FieldError{Field: "name", Message: "is required"}
	}
	if entry.Severity < 1 || entry.Severity > 10 {
		return rangeError("severity", entry.Severity, 1, 10)
	}
	return nil
}

// ValidateActivity checks an activity entry.
func ValidateActivity(entry models.ActivityEntry) error {
	if err := validateDate(entry.Date); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Type) == "" {
		return &FieldError{Field: "type", Message: "is required"}
	}
	if entry.PerceivedExhaustion < 1 || entry.PerceivedExhaustion > 10 {
		return rangeError("perceived exhaustion", entry.PerceivedExhaustion, 1, 10)
	}
	if entry.DurationMin != nil && *entry.DurationMin < 0 {
		return &FieldError{Field: "duration", Message: fmt.Sprintf("must not be negative, got %d", *entry.DurationMin)}
	}
	return nil
}

// IssueType classifies a dataset problem
type IssueType string

const (
	IssueOrphanSymptoms   IssueType = "orphan_symptoms"
	IssueOrphanActivities IssueType = "orphan_activities"
	IssueInvalidRecord    IssueType = "invalid_record"
)

// Issue is one problem found in the stored dataset
type Issue struct {
	Type        IssueType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // IDs of the records involved
}

// Report collects dataset issues
type Report struct {
	Issues []Issue
}

// HasIssues returns true if any issue was found
func (r *Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable summary
func (r *Report) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}

	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// ValidateDataset audits stored records. Symptoms and activities on dates without a check-in are
// reported, since analytics ignores them.
func ValidateDataset(days []models.Day, symptoms []models.SymptomEntry, activities []models.ActivityEntry) Report {
	var report Report

	checkIns := make(map[string]bool, len(days))
	for _, d := range days {
		checkIns[d.Date] = true
		if err := ValidateDay(d); err != nil {
			report.Issues = append(report.Issues, Issue{
				Type:        IssueInvalidRecord,
				Description: fmt.Sprintf("Check-in %s: %v", d.Date, err),
				Date:        d.Date,
			})
		}
	}

	orphanSymptoms := make(map[string][]string)
	for _, s := range symptoms {
		if err := ValidateSymptom(s); err != nil {
			report.Issues = append(report.Issues, Issue{
				Type:        IssueInvalidRecord,
				Description: fmt.Sprintf("Symptom %s: %v", s.ID, err),
				Date:        s.Date,
				Items:       []string{s.ID},
			})
		}
		if !checkIns[s.Date] {
			orphanSymptoms[s.Date] = append(orphanSymptoms[s.Date], s.ID)
		}
	}

	orphanActivities := make(map[string][]string)
	for _, a := range activities {
		if err := ValidateActivity(a); err != nil {
			report.Issues = append(report.Issues, Issue{
				Type:        IssueInvalidRecord,
				Description: fmt.Sprintf("Activity %s: %v", a.ID, err),
				Date:        a.Date,
				Items:       []string{a.ID},
			})
		}
		if !checkIns[a.Date] {
			orphanActivities[a.Date] = append(orphanActivities[a.Date], a.ID)
		}
	}

	report.Issues = append(report.Issues, orphanIssues(IssueOrphanSymptoms, "symptom", orphanSymptoms)...)
	report.Issues = append(report.Issues, orphanIssues(IssueOrphanActivities, "activity", orphanActivities)...)
	return report
}

func orphanIssues(kind IssueType, noun string, byDate map[string][]string) []Issue {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	issues := make([]Issue, 0, len(dates))
	for _, date := range dates {
		ids := byDate[date]
		label := noun
		if len(ids) != 1 {
			label = pluralNoun(noun)
		}
		issues = append(issues, Issue{
			Type:        kind,
			Description: fmt.Sprintf("%d %s on %s without a check-in (excluded from insights)", len(ids), label, date),
			Date:        date,
			Items:       ids,
		})
	}
	return issues
}

func pluralNoun(noun string) string {
	if strings.HasSuffix(noun, "y") {
		return strings.TrimSuffix(noun, "y") + "ies"
	}
	return noun + "s"
}
