package storage

import "github.com/mfigueroa/agendx/internal/models"

// Gateway is the persistence boundary the core depends on. It may be backed
// by the local SQLite store or by a remote agendx REST server; the core only
// requires eventual durability and read-after-write on the same client.
type Gateway interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Events
	AddEvent(models.Event) error
	GetEvent(id string) (models.Event, error)
	GetAllEvents() ([]models.Event, error)
	UpdateEvent(models.Event) error
	DeleteEvent(id string) error

	// Day sessions
	CreateSession(models.SessionRecord) (models.SessionRecord, error)
	UpdateSession(models.SessionRecord) error
	GetSessions() ([]models.SessionRecord, error)
	DeleteSession(id string) error

	// Utils
	GetConfigPath() string
}
