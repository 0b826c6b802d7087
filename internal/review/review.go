// Package review keeps the stored weekly review in step with the diary.
package review

import (
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/constants"
	"github.com/Tholomir/ChronoRex/internal/logger"
	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

// Outcome describes what a refresh did.
type Outcome string

const (
	OutcomeCreated          Outcome = "created"
	OutcomeReplaced         Outcome = "replaced"
	OutcomeUpToDate         Outcome = "up_to_date"
	OutcomeInsufficientData Outcome = "insufficient_data"
)

// RefreshResult is the outcome of a refresh and the review that is current afterwards (nil when none).
type RefreshResult struct {
	Outcome Outcome
	Review  *models.WeeklyReview
}

// Status summarizes the stored review for banner display.
type Status struct {
	Latest           *models.WeeklyReview
	NewestMetricDate string
	Due              bool
}

// NeedsNudge reports whether the latest review should be surfaced in the app.
func (s Status) NeedsNudge() bool {
	return s.Latest != nil && s.Latest.NeedsInAppNudge
}

type Service struct {
	store storage.Provider
	clock analytics.Clock
}

func NewService(store storage.Provider, clock analytics.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// Refresh generates a review when one is due and stores it when it supersedes the latest.
// With force set the due check is skipped, and a review for the same window replaces the stored one.
func (s *Service) Refresh(force bool) (RefreshResult, error) {
	snap, err := storage.LoadSnapshot(s.store)
	if err != nil {
		return RefreshResult{}, err
	}
	latest, err := s.store.GetLatestWeeklyReview()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to load latest weekly review: %w", err)
	}

	newest := analytics.NewestMetricDate(snap.Days)
	if !force && !analytics.ShouldGenerateReview(latest, newest) {
		logger.Debug("Weekly review not due", "newest_metric_date", newest)
		return RefreshResult{Outcome: OutcomeUpToDate, Review: latest}, nil
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("failed to load settings: %w", err)
	}

	fresh := analytics.GenerateWeeklyReview(snap.Days, snap.Symptoms, snap.Activities, settings.NotificationsDenied, s.clock)
	if fresh == nil {
		logger.Info("Not enough check-ins for a weekly review", "days", len(snap.Days))
		return RefreshResult{Outcome: OutcomeInsufficientData, Review: latest}, nil
	}

	sameWindow := force && latest != nil && latest.EndDate == fresh.EndDate
	if sameWindow {
		fresh.ID = latest.ID
	} else if !analytics.ShouldReplaceReview(latest, fresh) {
		return RefreshResult{Outcome: OutcomeUpToDate, Review: latest}, nil
	}

	if err := s.store.SaveWeeklyReview(*fresh); err != nil {
		return RefreshResult{}, err
	}

	outcome := OutcomeCreated
	if latest != nil {
		outcome = OutcomeReplaced
	}
	logger.Info("Stored weekly review", "id", fresh.ID, "start", fresh.StartDate, "end", fresh.EndDate, "outcome", outcome)
	return RefreshResult{Outcome: outcome, Review: fresh}, nil
}

// MarkSeen clears the nudge flag on the latest review. An empty id selects the latest review.
func (s *Service) MarkSeen(id string) error {
	if id == "" {
		latest, err := s.store.GetLatestWeeklyReview()
		if err != nil {
			return fmt.Errorf("failed to load latest weekly review: %w", err)
		}
		if latest == nil {
			return storage.NotFound("weekly review", "latest")
		}
		id = latest.ID
	}
	if err := s.store.MarkWeeklyReviewSeen(id); err != nil {
		return err
	}
	logger.Debug("Marked weekly review seen", "id", id)
	return nil
}

// Status reports the latest review and whether a refresh would generate a new one.
func (s *Service) Status() (Status, error) {
	latest, err := s.store.GetLatestWeeklyReview()
	if err != nil {
		return Status{}, fmt.Errorf("failed to load latest weekly review: %w", err)
	}
	days, err := s.store.GetAllDays()
	if err != nil {
		return Status{}, fmt.Errorf("failed to load days: %w", err)
	}
	newest := analytics.NewestMetricDate(days)
	due := len(days) >= constants.ReviewMinMetrics && analytics.ShouldGenerateReview(latest, newest)
	return Status{Latest: latest, NewestMetricDate: newest, Due: due}, nil
}
