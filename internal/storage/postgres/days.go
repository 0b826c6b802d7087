package postgres

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

const dayColumns = "date, timezone_offset_minutes, restedness, sleep_quality, notes, tags, illness, travel"

func (s *Store) SaveDay(day models.Day) error {
	tags, err := json.Marshal(nonNilStrings(day.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO days (`+dayColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (date) DO UPDATE SET
			timezone_offset_minutes = EXCLUDED.timezone_offset_minutes,
			restedness = EXCLUDED.restedness,
			sleep_quality = EXCLUDED.sleep_quality,
			notes = EXCLUDED.notes,
			tags = EXCLUDED.tags,
			illness = EXCLUDED.illness,
			travel = EXCLUDED.travel`,
		day.Date, day.TimezoneOffsetMinutes, day.Restedness, day.SleepQuality,
		day.Notes, string(tags), day.Illness, day.Travel,
	)
	if err != nil {
		return fmt.Errorf("failed to save day %s: %w", day.Date, err)
	}
	return nil
}

func (s *Store) GetDay(date string) (models.Day, error) {
	row := s.db.QueryRow("SELECT "+dayColumns+" FROM days WHERE date = $1", date)
	day, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Day{}, storage.NotFound("day", date)
	}
	return day, err
}

func (s *Store) GetAllDays() ([]models.Day, error) {
	rows, err := s.db.Query("SELECT " + dayColumns + " FROM days ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.Day
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) DeleteDay(date string) error {
	res, err := s.db.Exec("DELETE FROM days WHERE date = $1", date)
	if err != nil {
		return err
	}
	return requireAffected(res, "day", date)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDay(row scanner) (models.Day, error) {
	var day models.Day
	var tags string
	if err := row.Scan(&day.Date, &day.TimezoneOffsetMinutes, &day.Restedness, &day.SleepQuality,
		&day.Notes, &tags, &day.Illness, &day.Travel); err != nil {
		return models.Day{}, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &day.Tags); err != nil {
			return models.Day{}, fmt.Errorf("failed to decode tags for %s: %w", day.Date, err)
		}
	}
	return day, nil
}

func requireAffected(res sql.Result, kind, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.NotFound(kind, key)
	}
	return nil
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
