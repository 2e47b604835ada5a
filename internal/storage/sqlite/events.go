package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

const eventColumns = `id, kind, title, notes, range_order, duration_min, start_on, repeat_rule, weekday_filter, archived, created_at, updated_at`

func (s *Store) AddEvent(event models.Event) error {
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	repeatJSON, filterJSON, err := encodeEventRules(event)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, string(event.Kind), event.Title, event.Notes,
		event.RangeOrder, event.DurationMin, event.StartOn,
		repeatJSON, filterJSON, event.Archived,
		event.CreatedAt.Format(time.RFC3339), event.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *Store) GetEvent(id string) (models.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (s *Store) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY range_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *Store) UpdateEvent(event models.Event) error {
	event.UpdatedAt = time.Now().UTC()

	repeatJSON, filterJSON, err := encodeEventRules(event)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE events
		SET kind = ?, title = ?, notes = ?, range_order = ?, duration_min = ?,
		    start_on = ?, repeat_rule = ?, weekday_filter = ?, archived = ?, updated_at = ?
		WHERE id = ?`,
		string(event.Kind), event.Title, event.Notes, event.RangeOrder, event.DurationMin,
		event.StartOn, repeatJSON, filterJSON, event.Archived,
		event.UpdatedAt.Format(time.RFC3339), event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event not found: %s", event.ID)
	}
	return nil
}

func (s *Store) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		e                      models.Event
		kind                   string
		repeatJSON, filterJSON string
		createdAt, updatedAt   string
	)

	err := row.Scan(
		&e.ID, &kind, &e.Title, &e.Notes, &e.RangeOrder, &e.DurationMin,
		&e.StartOn, &repeatJSON, &filterJSON, &e.Archived, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.Event{}, err
	}

	e.Kind = models.EventKind(kind)
	if err := json.Unmarshal([]byte(repeatJSON), &e.Repeat); err != nil {
		return models.Event{}, fmt.Errorf("corrupt repeat rule for event %s: %w", e.ID, err)
	}
	var weekdays []int
	if err := json.Unmarshal([]byte(filterJSON), &weekdays); err == nil {
		for _, w := range weekdays {
			e.WeekdayFilter = append(e.WeekdayFilter, time.Weekday(w))
		}
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		e.UpdatedAt = t
	}
	return e, nil
}

func encodeEventRules(event models.Event) (string, string, error) {
	repeatJSON, err := json.Marshal(event.Repeat)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode repeat rule: %w", err)
	}
	weekdays := make([]int, 0, len(event.WeekdayFilter))
	for _, w := range event.WeekdayFilter {
		weekdays = append(weekdays, int(w))
	}
	filterJSON, err := json.Marshal(weekdays)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode weekday filter: %w", err)
	}
	return string(repeatJSON), string(filterJSON), nil
}

// IsNotFound reports whether the error is the sql no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
