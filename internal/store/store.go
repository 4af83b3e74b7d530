// Package store defines the key-value port the inventory is persisted through
// and opens the configured backend.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/pantry/internal/config"
	"github.com/Makepad-fr/pantry/internal/store/jsonstore"
	"github.com/Makepad-fr/pantry/internal/store/memstore"
	"github.com/Makepad-fr/pantry/internal/store/sqlitestore"
)

// KV is the storage port: whole values under string keys.
// A missing key is reported with ok=false, not an error.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the backend named by cfg.Backend.
func Open(cfg config.Storage) (KV, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendJSON, "":
		return jsonstore.Open(cfg.DataDir)
	case BackendSQLite:
		p := cfg.SQLiteFile
		if p != ":memory:" && !filepath.IsAbs(p) {
			p = filepath.Join(cfg.DataDir, p)
		}
		return sqlitestore.Open(p)
	case BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
