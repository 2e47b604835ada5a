package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mfigueroa/agendx/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestEventCRUD(t *testing.T) {
	store := setupTestStore(t)

	event := models.Event{
		ID:          "evt-1",
		Kind:        models.EventKindNormal,
		Title:       "Deep work",
		Notes:       "morning block",
		RangeOrder:  1,
		DurationMin: 45,
		StartOn:     "2026-03-10",
		Repeat: models.Repeat{
			Type:       models.RepeatWeekly,
			DaysOfWeek: []time.Weekday{time.Monday, time.Friday},
		},
		WeekdayFilter: []time.Weekday{time.Monday, time.Tuesday, time.Friday},
	}

	if err := store.AddEvent(event); err != nil {
		t.Fatalf("failed to add event: %v", err)
	}

	got, err := store.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("failed to get event: %v", err)
	}
	if got.Title != event.Title || got.RangeOrder != event.RangeOrder {
		t.Errorf("expected (%s, %d), got (%s, %d)", event.Title, event.RangeOrder, got.Title, got.RangeOrder)
	}
	if got.Repeat.Type != models.RepeatWeekly || len(got.Repeat.DaysOfWeek) != 2 {
		t.Errorf("repeat rule did not survive the round trip: %+v", got.Repeat)
	}
	if len(got.WeekdayFilter) != 3 {
		t.Errorf("weekday filter did not survive the round trip: %v", got.WeekdayFilter)
	}

	got.Title = "Deeper work"
	got.Archived = true
	if err := store.UpdateEvent(got); err != nil {
		t.Fatalf("failed to update event: %v", err)
	}
	updated, err := store.GetEvent(event.ID)
	if err != nil {
		t.Fatalf("failed to get updated event: %v", err)
	}
	if updated.Title != "Deeper work" || !updated.Archived {
		t.Errorf("update did not stick: %+v", updated)
	}

	if err := store.DeleteEvent(event.ID); err != nil {
		t.Fatalf("failed to delete event: %v", err)
	}
	if _, err := store.GetEvent(event.ID); !IsNotFound(err) {
		t.Errorf("expected a not-found error after delete, got %v", err)
	}
}

func TestGetAllEventsOrderedByRangeOrder(t *testing.T) {
	store := setupTestStore(t)

	for _, e := range []models.Event{
		{ID: "b", Title: "B", RangeOrder: 2, StartOn: "2026-03-10", Repeat: models.Repeat{Type: models.RepeatDaily}},
		{ID: "a", Title: "A", RangeOrder: 1, StartOn: "2026-03-10", Repeat: models.Repeat{Type: models.RepeatDaily}},
	} {
		if err := store.AddEvent(e); err != nil {
			t.Fatalf("failed to add event: %v", err)
		}
	}

	events, err := store.GetAllEvents()
	if err != nil {
		t.Fatalf("failed to get events: %v", err)
	}
	if len(events) != 2 || events[0].ID != "a" || events[1].ID != "b" {
		t.Errorf("expected events ordered by range_order, got %v", events)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.UpdateEvent(models.Event{ID: "ghost", Title: "Ghost", StartOn: "2026-03-10"})
	if err == nil {
		t.Error("expected an error updating a missing event, got nil")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	started := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := models.SessionRecord{
		DayKey:    "2026-03-10",
		Status:    models.SessionActive,
		StartedAt: started,
		KeepUntil: started.AddDate(0, 0, 2),
		Plan: []models.Occurrence{
			{
				ID:          models.NewOccurrenceID("evt-1", "2026-03-10"),
				EventID:     "evt-1",
				DayKey:      "2026-03-10",
				Title:       "Deep work",
				RangeOrder:  1,
				DurationMin: 45,
				Repeat:      models.Repeat{Type: models.RepeatDaily},
			},
		},
		Progress:     map[string]bool{"evt-1__2026-03-10": true},
		CurrentIndex: 0,
	}

	created, err := store.CreateSession(rec)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned session id")
	}

	records, err := store.GetSessions()
	if err != nil {
		t.Fatalf("failed to get sessions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 session, got %d", len(records))
	}

	got := records[0]
	if got.DayKey != rec.DayKey || got.Status != models.SessionActive {
		t.Errorf("expected (%s, active), got (%s, %s)", rec.DayKey, got.DayKey, got.Status)
	}
	if len(got.Plan) != 1 || got.Plan[0].ID != rec.Plan[0].ID {
		t.Errorf("plan did not survive the round trip: %+v", got.Plan)
	}
	if !got.Progress["evt-1__2026-03-10"] {
		t.Errorf("progress did not survive the round trip: %v", got.Progress)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected startedAt %v, got %v", started, got.StartedAt)
	}

	got.CurrentIndex = 1
	got.Progress["evt-1__2026-03-10"] = false
	if err := store.UpdateSession(got); err != nil {
		t.Fatalf("failed to update session: %v", err)
	}
	records, _ = store.GetSessions()
	if records[0].CurrentIndex != 1 || records[0].Progress["evt-1__2026-03-10"] {
		t.Errorf("update did not stick: %+v", records[0])
	}

	if err := store.DeleteSession(created.ID); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}
	records, _ = store.GetSessions()
	if len(records) != 0 {
		t.Errorf("expected no sessions after delete, got %d", len(records))
	}
}

func TestLoadWithoutInitFails(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected an error loading a missing database, got nil")
	}
}
