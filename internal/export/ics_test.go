package export

import (
	"strings"
	"testing"

	"github.com/mfigueroa/agendx/internal/models"
)

func TestWriteICS(t *testing.T) {
	occurrences := []models.Occurrence{
		{
			ID:          models.NewOccurrenceID("a", "2026-03-10"),
			EventID:     "a",
			DayKey:      "2026-03-10",
			Title:       "Deep work",
			Notes:       "morning block",
			RangeOrder:  1,
			DurationMin: 45,
		},
		{
			ID:          models.NewOccurrenceID("b", "2026-03-10"),
			EventID:     "b",
			DayKey:      "2026-03-10",
			Title:       "Review",
			RangeOrder:  2,
			DurationMin: 30,
		},
	}

	var buf strings.Builder
	if err := WriteICS(&buf, occurrences); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Error("Expected a VCALENDAR envelope")
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected 2 events, got %d", got)
	}
	if !strings.Contains(out, "SUMMARY:Deep work") {
		t.Error("Expected the occurrence title as SUMMARY")
	}
	if !strings.Contains(out, "UID:a__2026-03-10@agendx") {
		t.Error("Expected a stable occurrence-derived UID")
	}
	if !strings.Contains(out, "DESCRIPTION:morning block") {
		t.Error("Expected notes as DESCRIPTION")
	}
}

func TestWriteICS_Empty(t *testing.T) {
	var buf strings.Builder
	if err := WriteICS(&buf, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") {
		t.Error("Expected a valid empty calendar")
	}
}
