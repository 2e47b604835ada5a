// Package session owns the single active day session: the state machine
// that freezes a day's filtered occurrences into a plan, tracks progress
// through it, and keeps the durable copy in step through debounced writes.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mfigueroa/agendx/internal/constants"
	"github.com/mfigueroa/agendx/internal/logger"
	"github.com/mfigueroa/agendx/internal/models"
	"github.com/mfigueroa/agendx/internal/recurrence"
	"github.com/mfigueroa/agendx/internal/schedule"
	"github.com/mfigueroa/agendx/internal/storage"
	"github.com/mfigueroa/agendx/internal/utils"
)

var (
	ErrNoSession         = errors.New("no active day session")
	ErrSessionActive     = errors.New("a day session is already active")
	ErrNotToday          = errors.New("only today can be started")
	ErrEmptyPlan         = errors.New("no ranges planned for this day")
	ErrUnknownOccurrence = errors.New("occurrence is not part of the active plan")
)

// Manager is the day-session state machine. It is either idle (no active
// session) or active, and every transition goes through one of its methods.
// In-memory state is authoritative; the durable copy may lag by up to one
// debounce window, except for Start and Finalize which write through
// immediately.
type Manager struct {
	mu       sync.Mutex
	gateway  storage.Gateway
	active   *models.DaySession
	pending  *time.Timer
	debounce time.Duration
	now      func() time.Time
}

type Option func(*Manager)

// WithClock overrides the manager's time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithDebounce overrides the save coalescing window.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) { m.debounce = d }
}

func NewManager(gateway storage.Gateway, opts ...Option) *Manager {
	m := &Manager{
		gateway:  gateway,
		debounce: constants.SaveDebounce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the active session, or nil when idle. The returned value
// must be treated as read-only; all mutation goes through manager methods.
func (m *Manager) Session() *models.DaySession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Adopt installs a session recovered by the reconciliation service.
func (m *Manager) Adopt(sess *models.DaySession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = sess
}

// Start begins the day session for dayKey. It fails when a session is
// already active, when dayKey is not today, or when the filtered plan for
// the day is empty. The durable record is created immediately, after a
// best-effort sweep of any stale active records.
func (m *Manager) Start(dayKey string) (*models.DaySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		return nil, ErrSessionActive
	}
	now := m.now()
	if today := utils.DayKey(now); dayKey != today {
		return nil, fmt.Errorf("%w: %s is not %s", ErrNotToday, dayKey, today)
	}

	events, err := m.gateway.GetAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	plan, err := recurrence.BuildDayPlan(events, dayKey)
	if err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		return nil, ErrEmptyPlan
	}

	// Opportunistic at-most-one-active sweep. Not transactional: a genuine
	// concurrent second writer can still race this.
	if records, err := m.gateway.GetSessions(); err == nil {
		for _, rec := range records {
			if rec.Status == models.SessionActive {
				if err := m.gateway.DeleteSession(rec.ID); err != nil {
					logger.Warn("failed to sweep stale active session", "id", rec.ID, "error", err)
				}
			}
		}
	} else {
		logger.Warn("failed to list sessions before start", "error", err)
	}

	keepUntil, err := utils.KeepUntil(dayKey)
	if err != nil {
		return nil, err
	}

	done := make(map[models.OccurrenceID]bool, len(plan))
	for _, occ := range plan {
		done[occ.ID] = false
	}

	sess := &models.DaySession{
		DayKey:       dayKey,
		StartedAt:    now,
		KeepUntil:    keepUntil,
		Plan:         plan,
		Done:         done,
		CurrentIndex: 0,
	}

	rec := sess.Record(now)
	rec.CreatedAt = now
	created, err := m.gateway.CreateSession(rec)
	if err != nil {
		// No transition on a failed durable create.
		return nil, fmt.Errorf("failed to persist day session: %w", err)
	}
	sess.RemoteID = created.ID
	m.active = sess

	logger.Info("day started", "day", dayKey, "ranges", len(plan))
	return sess, nil
}

// Toggle flips the done state of the given occurrence. When the flipped
// occurrence was the current one and is now done, the pointer advances to
// the next pending occurrence. Toggling twice restores the original state.
func (m *Manager) Toggle(id models.OccurrenceID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoSession
	}
	if _, ok := m.active.Done[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOccurrence, id)
	}

	m.active.Done[id] = !m.active.Done[id]

	if current := m.currentLocked(); current != nil && m.active.Done[current.ID] {
		m.advanceLocked()
	}
	m.queueSaveLocked()
	return nil
}

// MarkCurrentDone marks the current occurrence done unconditionally and
// advances the pointer. It returns the occurrence that was marked, or nil
// when nothing is pending.
func (m *Manager) MarkCurrentDone() (*models.Occurrence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, ErrNoSession
	}
	current := m.currentLocked()
	if current == nil {
		return nil, nil
	}
	m.active.Done[current.ID] = true
	m.advanceLocked()
	m.queueSaveLocked()
	return current, nil
}

// Advance moves the pointer to the next pending occurrence without touching
// progress (a manual skip).
func (m *Manager) Advance() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoSession
	}
	m.advanceLocked()
	m.queueSaveLocked()
	return nil
}

// Recalc rebuilds the active plan from current events after an event edit.
// Progress carries forward for occurrences still present; the pointer stays
// on the same occurrence when it survives undone, otherwise it falls to the
// first pending occurrence. A plan that recalculates to empty auto-closes
// the session; Recalc then returns true.
func (m *Manager) Recalc() (closed bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return false, nil
	}

	events, err := m.gateway.GetAllEvents()
	if err != nil {
		return false, fmt.Errorf("failed to load events: %w", err)
	}
	newPlan, err := recurrence.BuildDayPlan(events, m.active.DayKey)
	if err != nil {
		return false, err
	}

	if len(newPlan) == 0 {
		// Persisting an active session with no plan would be invalid state.
		m.cancelPendingLocked()
		if err := m.gateway.DeleteSession(m.active.RemoteID); err != nil {
			logger.Warn("failed to delete emptied session record", "error", err)
		}
		logger.Info("day session auto-closed: plan recalculated to empty", "day", m.active.DayKey)
		m.active = nil
		return true, nil
	}

	var oldCurrentID models.OccurrenceID
	if current := m.currentLocked(); current != nil {
		oldCurrentID = current.ID
	}
	oldDone := m.active.Done

	newDone := make(map[models.OccurrenceID]bool, len(newPlan))
	for _, occ := range newPlan {
		newDone[occ.ID] = oldDone[occ.ID]
	}

	m.active.Plan = newPlan
	m.active.Done = newDone
	m.active.CurrentIndex = resolveIndex(newPlan, newDone, oldCurrentID)

	m.queueSaveLocked()
	return false, nil
}

// Finalize closes the active session and deletes its durable record
// immediately, cancelling any pending debounced write so a stale snapshot
// cannot resurrect the session.
func (m *Manager) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return ErrNoSession
	}
	m.cancelPendingLocked()
	if err := m.gateway.DeleteSession(m.active.RemoteID); err != nil {
		return fmt.Errorf("failed to delete day session record: %w", err)
	}
	logger.Info("day finalized", "day", m.active.DayKey, "done", m.active.DoneCount(), "total", len(m.active.Plan))
	m.active = nil
	return nil
}

// CurrentOccurrence returns the occurrence the pointer rests on. The read
// self-heals: a pointer at a done or out-of-range position is moved to the
// first pending occurrence. Returns nil when the plan is empty or fully
// done.
func (m *Manager) CurrentOccurrence() *models.Occurrence {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	return m.currentLocked()
}

// Projection is a point-in-time view of the active session's timeline.
type Projection struct {
	Items              []schedule.Item
	Current            *models.Occurrence
	CurrentItem        *schedule.Item
	RemainingInCurrent time.Duration
	TotalRemaining     time.Duration
}

// Project derives the live timing view for display at the given instant.
func (m *Manager) Project(now time.Time) (*Projection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return nil, ErrNoSession
	}

	items := schedule.Project(m.active.Plan, m.active.StartedAt)
	proj := &Projection{
		Items:          items,
		TotalRemaining: schedule.TotalRemaining(items, m.active.Done, now),
	}
	if current := m.currentLocked(); current != nil {
		proj.Current = current
		if item, ok := schedule.Find(items, current.ID); ok {
			proj.CurrentItem = &item
			proj.RemainingInCurrent = schedule.RemainingInItem(item, now)
		}
	}
	return proj, nil
}

// Flush writes the active session to the gateway immediately. A failed
// write leaves in-memory state untouched; the next debounced save retries.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushLocked()
}

func (m *Manager) flushLocked() error {
	m.cancelPendingLocked()
	if m.active == nil || m.active.RemoteID == "" {
		return nil
	}
	if err := m.gateway.UpdateSession(m.active.Record(m.now())); err != nil {
		logger.Warn("failed to sync day session", "day", m.active.DayKey, "error", err)
		return err
	}
	return nil
}

func (m *Manager) queueSaveLocked() {
	if m.pending != nil {
		m.pending.Stop()
	}
	m.pending = time.AfterFunc(m.debounce, func() {
		m.Flush()
	})
}

func (m *Manager) cancelPendingLocked() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

// currentLocked resolves the current occurrence, repairing the pointer if
// it no longer rests on a pending occurrence.
func (m *Manager) currentLocked() *models.Occurrence {
	sess := m.active
	if len(sess.Plan) == 0 {
		return nil
	}
	if sess.CurrentIndex >= 0 && sess.CurrentIndex < len(sess.Plan) {
		occ := sess.Plan[sess.CurrentIndex]
		if !sess.Done[occ.ID] {
			return &occ
		}
	}
	for i, occ := range sess.Plan {
		if !sess.Done[occ.ID] {
			sess.CurrentIndex = i
			return &sess.Plan[i]
		}
	}
	return nil
}

// advanceLocked moves the pointer forward to the next pending occurrence,
// wrapping around the plan once. With nothing pending the pointer stays.
func (m *Manager) advanceLocked() {
	sess := m.active
	total := len(sess.Plan)
	if total == 0 {
		return
	}
	for step := 1; step <= total; step++ {
		idx := (sess.CurrentIndex + step) % total
		if !sess.Done[sess.Plan[idx].ID] {
			sess.CurrentIndex = idx
			return
		}
	}
}

// resolveIndex picks the pointer position in a rebuilt plan: the same
// occurrence when it survives undone, else the first pending one, else 0.
func resolveIndex(plan []models.Occurrence, done map[models.OccurrenceID]bool, previous models.OccurrenceID) int {
	if !previous.IsZero() {
		for i, occ := range plan {
			if occ.ID == previous && !done[occ.ID] {
				return i
			}
		}
	}
	for i, occ := range plan {
		if !done[occ.ID] {
			return i
		}
	}
	return 0
}
