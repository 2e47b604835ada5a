package models

import (
	"encoding/json"
	"testing"
)

func TestParseOccurrenceID(t *testing.T) {
	id, err := ParseOccurrenceID("evt1__2026-03-10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.EventID != "evt1" || id.DayKey != "2026-03-10" {
		t.Errorf("Expected (evt1, 2026-03-10), got (%s, %s)", id.EventID, id.DayKey)
	}
}

func TestParseOccurrenceID_DropsLegacySuffix(t *testing.T) {
	id, err := ParseOccurrenceID("evt1__2026-03-10__R3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.EventID != "evt1" || id.DayKey != "2026-03-10" {
		t.Errorf("Expected the legacy rangeOrder segment dropped, got (%s, %s)", id.EventID, id.DayKey)
	}
}

func TestParseOccurrenceID_Malformed(t *testing.T) {
	for _, s := range []string{"", "evt1", "__2026-03-10", "evt1__"} {
		if _, err := ParseOccurrenceID(s); err == nil {
			t.Errorf("Expected an error for %q", s)
		}
	}
}

func TestOccurrenceID_JSONMapKey(t *testing.T) {
	done := map[OccurrenceID]bool{
		NewOccurrenceID("evt1", "2026-03-10"): true,
	}

	data, err := json.Marshal(done)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `{"evt1__2026-03-10":true}` {
		t.Errorf("Expected string map keys on the wire, got %s", data)
	}

	var back map[OccurrenceID]bool
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !back[NewOccurrenceID("evt1", "2026-03-10")] {
		t.Error("Expected the key to round trip")
	}
}

func TestDaySessionCompleted(t *testing.T) {
	sess := DaySession{
		Plan: []Occurrence{
			{ID: NewOccurrenceID("a", "2026-03-10")},
			{ID: NewOccurrenceID("b", "2026-03-10")},
		},
		Done: map[OccurrenceID]bool{
			NewOccurrenceID("a", "2026-03-10"): true,
		},
	}

	if sess.Completed() {
		t.Error("Expected an unfinished session not to be completed")
	}
	if sess.DoneCount() != 1 {
		t.Errorf("Expected 1 done, got %d", sess.DoneCount())
	}

	sess.Done[NewOccurrenceID("b", "2026-03-10")] = true
	if !sess.Completed() {
		t.Error("Expected a fully done session to be completed")
	}

	empty := DaySession{}
	if empty.Completed() {
		t.Error("Expected an empty plan never to read as completed")
	}
}
