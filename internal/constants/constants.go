package constants

import "time"

const (
	AppName           = "agendx"
	Version           = "v1.0.0"
	DefaultConfigPath = "~/.config/agendx/agendx.db"

	// DateFormat is the standard local day-key format used throughout the
	// application (YYYY-MM-DD). Day keys compare correctly as strings.
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock format used for display (HH:MM)
	TimeFormat = "15:04"

	// SaveDebounce is the window over which session mutations are coalesced
	// before being written to the gateway.
	SaveDebounce = 450 * time.Millisecond

	// RetentionDays is how many days back a stored day session is still
	// considered adoptable (today and yesterday).
	RetentionDays = 1

	// MinDurationMin and MaxDurationMin bound an event's range duration.
	MinDurationMin = 1
	MaxDurationMin = 1440

	// DefaultRangeOrder is assigned when an event arrives with no slot,
	// pushing it past any deliberately ordered range.
	DefaultRangeOrder = 999
)
