package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

const reviewColumns = `id, start_date, end_date, generated_at, trend_highlights, correlation_highlights,
	best_day, toughest_day, adherence_summary, needs_in_app_nudge`

func (s *Store) SaveWeeklyReview(review models.WeeklyReview) error {
	trend, err := json.Marshal(nonNilStrings(review.TrendHighlights))
	if err != nil {
		return fmt.Errorf("failed to encode trend highlights: %w", err)
	}
	correlations, err := json.Marshal(nonNilStrings(review.CorrelationHighlights))
	if err != nil {
		return fmt.Errorf("failed to encode correlation highlights: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO weekly_reviews (`+reviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			generated_at = EXCLUDED.generated_at,
			trend_highlights = EXCLUDED.trend_highlights,
			correlation_highlights = EXCLUDED.correlation_highlights,
			best_day = EXCLUDED.best_day,
			toughest_day = EXCLUDED.toughest_day,
			adherence_summary = EXCLUDED.adherence_summary,
			needs_in_app_nudge = EXCLUDED.needs_in_app_nudge`,
		review.ID, review.StartDate, review.EndDate, review.GeneratedAt,
		string(trend), string(correlations),
		nullString(review.BestDay), nullString(review.ToughestDay),
		review.AdherenceSummary, review.NeedsInAppNudge,
	)
	if err != nil {
		return fmt.Errorf("failed to save weekly review: %w", err)
	}
	return nil
}

func (s *Store) GetLatestWeeklyReview() (*models.WeeklyReview, error) {
	row := s.db.QueryRow("SELECT " + reviewColumns + " FROM weekly_reviews ORDER BY generated_at DESC, end_date DESC LIMIT 1")
	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) GetAllWeeklyReviews() ([]models.WeeklyReview, error) {
	rows, err := s.db.Query("SELECT " + reviewColumns + " FROM weekly_reviews ORDER BY generated_at DESC, end_date DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.WeeklyReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func (s *Store) MarkWeeklyReviewSeen(id string) error {
	latest, err := s.GetLatestWeeklyReview()
	if err != nil {
		return err
	}
	if latest == nil || latest.ID != id {
		return storage.NotFound("latest weekly review", id)
	}
	if !latest.NeedsInAppNudge {
		return nil
	}
	_, err = s.db.Exec("UPDATE weekly_reviews SET needs_in_app_nudge = FALSE WHERE id = $1", id)
	return err
}

func scanReview(row scanner) (models.WeeklyReview, error) {
	var r models.WeeklyReview
	var trend, correlations []byte
	var best, toughest sql.NullString
	if err := row.Scan(&r.ID, &r.StartDate, &r.EndDate, &r.GeneratedAt, &trend, &correlations,
		&best, &toughest, &r.AdherenceSummary, &r.NeedsInAppNudge); err != nil {
		return models.WeeklyReview{}, err
	}
	if err := json.Unmarshal(trend, &r.TrendHighlights); err != nil {
		return models.WeeklyReview{}, fmt.Errorf("weekly review %s: decoding trend highlights: %w", r.ID, err)
	}
	if err := json.Unmarshal(correlations, &r.CorrelationHighlights); err != nil {
		return models.WeeklyReview{}, fmt.Errorf("weekly review %s: decoding correlation highlights: %w", r.ID, err)
	}
	r.BestDay = stringPtr(best)
	r.ToughestDay = stringPtr(toughest)
	return r, nil
}
