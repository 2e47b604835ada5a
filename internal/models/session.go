package models

import "time"

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"
)

// DaySession is the in-memory state of a started day: the frozen plan for
// one day key plus the progress made through it. At most one exists
// system-wide.
type DaySession struct {
	RemoteID     string
	DayKey       string
	StartedAt    time.Time
	KeepUntil    time.Time
	Plan         []Occurrence
	Done         map[OccurrenceID]bool
	CurrentIndex int
}

// DoneCount returns how many plan occurrences are marked done.
func (s *DaySession) DoneCount() int {
	n := 0
	for _, occ := range s.Plan {
		if s.Done[occ.ID] {
			n++
		}
	}
	return n
}

// Completed reports whether every occurrence in the plan is done. This is a
// display state: finalizing remains an explicit action.
func (s *DaySession) Completed() bool {
	return len(s.Plan) > 0 && s.DoneCount() == len(s.Plan)
}

// SessionRecord is the durable form of a day session as the gateway stores
// it. Progress keys are kept as raw strings so legacy forms survive the trip
// and can be migrated on adoption.
type SessionRecord struct {
	ID           string          `json:"id"`
	DayKey       string          `json:"day_key"`
	Status       SessionStatus   `json:"status"`
	StartedAt    time.Time       `json:"started_at"`
	EndedAt      *time.Time      `json:"ended_at,omitempty"`
	Plan         []Occurrence    `json:"plan"`
	Progress     map[string]bool `json:"progress"`
	CurrentIndex int             `json:"current_index"`
	KeepUntil    time.Time       `json:"keep_until"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at,omitempty"`
}

// Record converts the session to its durable form at the given timestamp.
func (s *DaySession) Record(now time.Time) SessionRecord {
	progress := make(map[string]bool, len(s.Done))
	for id, done := range s.Done {
		progress[id.String()] = done
	}
	return SessionRecord{
		ID:           s.RemoteID,
		DayKey:       s.DayKey,
		Status:       SessionActive,
		StartedAt:    s.StartedAt,
		Plan:         s.Plan,
		Progress:     progress,
		CurrentIndex: s.CurrentIndex,
		KeepUntil:    s.KeepUntil,
		UpdatedAt:    now,
	}
}
