package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mfigueroa/agendx/internal/storage/sqlite"
)

// NewGateway builds a gateway from a config value: an http(s) URL selects
// the REST client, anything else is treated as a local SQLite path.
func NewGateway(config string) Gateway {
	if strings.HasPrefix(config, "http://") || strings.HasPrefix(config, "https://") {
		return NewRestGateway(config)
	}
	return sqlite.NewStore(ExpandPath(config))
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
