package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Tholomir/ChronoRex/internal/models"
)

func (s *Store) AddSymptom(entry models.SymptomEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO symptoms (id, date, time, name, severity, note) VALUES (?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Date, formatTime(entry.Time), entry.Name, entry.Severity, nullString(entry.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to add symptom: %w", err)
	}
	return nil
}

func (s *Store) GetAllSymptoms() ([]models.SymptomEntry, error) {
	rows, err := s.db.Query("SELECT id, date, time, name, severity, note FROM symptoms ORDER BY date, time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.SymptomEntry
	for rows.Next() {
		var e models.SymptomEntry
		var ts string
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &ts, &e.Name, &e.Severity, &note); err != nil {
			return nil, err
		}
		if e.Time, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("symptom %s: %w", e.ID, err)
		}
		e.Note = stringPtr(note)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteSymptom(id string) error {
	res, err := s.db.Exec("DELETE FROM symptoms WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, "symptom", id)
}

func (s *Store) AddActivity(entry models.ActivityEntry) error {
	var duration sql.NullInt64
	if entry.DurationMin != nil {
		duration = sql.NullInt64{Int64: int64(*entry.DurationMin), Valid: true}
	}

	_, err := s.db.Exec(
		"INSERT INTO activities (id, date, time, type, duration_min, perceived_exhaustion, note) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Date, formatTime(entry.Time), entry.Type, duration, entry.PerceivedExhaustion, nullString(entry.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

func (s *Store) GetAllActivities() ([]models.ActivityEntry, error) {
	rows, err := s.db.Query("SELECT id, date, time, type, duration_min, perceived_exhaustion, note FROM activities ORDER BY date, time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		var ts string
		var duration sql.NullInt64
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &ts, &e.Type, &duration, &e.PerceivedExhaustion, &note); err != nil {
			return nil, err
		}
		if e.Time, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("activity %s: %w", e.ID, err)
		}
		if duration.Valid {
			d := int(duration.Int64)
			e.DurationMin = &d
		}
		e.Note = stringPtr(note)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteActivity(id string) error {
	res, err := s.db.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res, "activity", id)
}

// timestampLayout is fixed-width UTC so stored instants sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
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
