package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfigueroa/agendx/internal/models"
)

const sessionColumns = `id, day_key, status, started_at, ended_at, plan, progress, current_index, keep_until, created_at, updated_at`

func (s *Store) CreateSession(rec models.SessionRecord) (models.SessionRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	planJSON, progressJSON, err := encodeSessionBlobs(rec)
	if err != nil {
		return models.SessionRecord{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO day_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.DayKey, string(rec.Status),
		rec.StartedAt.Format(time.RFC3339), nullableTime(rec.EndedAt),
		planJSON, progressJSON, rec.CurrentIndex,
		rec.KeepUntil.Format(time.RFC3339),
		rec.CreatedAt.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to create day session: %w", err)
	}
	return rec, nil
}

func (s *Store) UpdateSession(rec models.SessionRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	planJSON, progressJSON, err := encodeSessionBlobs(rec)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE day_sessions
		SET day_key = ?, status = ?, started_at = ?, ended_at = ?, plan = ?,
		    progress = ?, current_index = ?, keep_until = ?, updated_at = ?
		WHERE id = ?`,
		rec.DayKey, string(rec.Status),
		rec.StartedAt.Format(time.RFC3339), nullableTime(rec.EndedAt),
		planJSON, progressJSON, rec.CurrentIndex,
		rec.KeepUntil.Format(time.RFC3339), rec.UpdatedAt.Format(time.RFC3339),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update day session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("day session not found: %s", rec.ID)
	}
	return nil
}

func (s *Store) GetSessions() ([]models.SessionRecord, error) {
	rows, err := s.db.Query(`SELECT ` + sessionColumns + ` FROM day_sessions ORDER BY started_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) DeleteSession(id string) error {
	_, err := s.db.Exec(`DELETE FROM day_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete day session: %w", err)
	}
	return nil
}

func scanSession(row rowScanner) (models.SessionRecord, error) {
	var (
		rec                    models.SessionRecord
		status                 string
		startedAt, keepUntil   string
		endedAt                sql.NullString
		planJSON, progressJSON string
		createdAt, updatedAt   string
	)

	err := row.Scan(
		&rec.ID, &rec.DayKey, &status, &startedAt, &endedAt,
		&planJSON, &progressJSON, &rec.CurrentIndex, &keepUntil,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return models.SessionRecord{}, err
	}

	rec.Status = models.SessionStatus(status)
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		rec.StartedAt = t
	}
	if endedAt.Valid {
		if t, err := time.Parse(time.RFC3339, endedAt.String); err == nil {
			rec.EndedAt = &t
		}
	}
	if t, err := time.Parse(time.RFC3339, keepUntil); err == nil {
		rec.KeepUntil = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = t
	}

	if err := json.Unmarshal([]byte(planJSON), &rec.Plan); err != nil {
		return models.SessionRecord{}, fmt.Errorf("corrupt plan for session %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(progressJSON), &rec.Progress); err != nil {
		return models.SessionRecord{}, fmt.Errorf("corrupt progress for session %s: %w", rec.ID, err)
	}
	return rec, nil
}

func encodeSessionBlobs(rec models.SessionRecord) (string, string, error) {
	plan := rec.Plan
	if plan == nil {
		plan = []models.Occurrence{}
	}
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode plan: %w", err)
	}
	progress := rec.Progress
	if progress == nil {
		progress = map[string]bool{}
	}
	progressJSON, err := json.Marshal(progress)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode progress: %w", err)
	}
	return string(planJSON), string(progressJSON), nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}
