package postgres

import (
	"database/sql"
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/models"
)

func (s *Store) AddSymptom(entry models.SymptomEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO symptoms (id, date, time, name, severity, note) VALUES ($1, $2, $3, $4, $5, $6)",
		entry.ID, entry.Date, entry.Time, entry.Name, entry.Severity, nullString(entry.Note),
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
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Name, &e.Severity, &note); err != nil {
			return nil, err
		}
		e.Note = stringPtr(note)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteSymptom(id string) error {
	res, err := s.db.Exec("DELETE FROM symptoms WHERE id = $1", id)
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
		"INSERT INTO activities (id, date, time, type, duration_min, perceived_exhaustion, note) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		entry.ID, entry.Date, entry.Time, entry.Type, duration, entry.PerceivedExhaustion, nullString(entry.Note),
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
		var duration sql.NullInt64
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Type, &duration, &e.PerceivedExhaustion, &note); err != nil {
			return nil, err
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
	res, err := s.db.Exec("DELETE FROM activities WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(res, "activity", id)
}
