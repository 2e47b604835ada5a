package utils

import (
	"fmt"
	"time"

	"github.com/mfigueroa/agendx/internal/constants"
)

// DayKey formats a time as a local day key (YYYY-MM-DD). Day keys sort
// lexically in calendar order.
func DayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDayKey parses a day key into midnight local time.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// AddDays shifts a day key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDayKey(key)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, n)), nil
}

// DaysBetween returns the number of whole calendar days from a to b
// (negative when b precedes a). Both are normalized to midnight so DST
// transitions cannot skew the count.
func DaysBetween(a, b time.Time) int {
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bm.Sub(am).Round(24*time.Hour).Hours() / 24)
}

// KeepUntil returns the retention deadline for a day session: the end of the
// day after dayKey, expressed as midnight two days past dayKey.
func KeepUntil(dayKey string) (time.Time, error) {
	t, err := ParseDayKey(dayKey)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, 2), nil
}

// FormatHMS renders a duration as MM:SS, or HH:MM:SS once it reaches an
// hour. Negative durations render as zero.
func FormatHMS(d time.Duration) string {
	s := int(d.Seconds())
	if s < 0 {
		s = 0
	}
	hh := s / 3600
	mm := (s % 3600) / 60
	ss := s % 60
	if hh > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
