// Package backend selects the persistence layer from configuration.
package backend

import (
	"fmt"

	"duka/internal/store"
	"duka/internal/store/memory"
	"duka/internal/store/sqlite"
)

// Type identifies a persistence backend.
type Type string

const (
	TypeMemory Type = "memory"
	TypeSQLite Type = "sqlite"
)

// Config holds backend selection and its parameters.
type Config struct {
	Type Type

	// SQLiteDBPath is the database file path, used when Type is sqlite.
	SQLiteDBPath string
}

// Create builds the configured record store. The returned cleanup releases
// backend resources and must be called on shutdown.
func Create(cfg Config) (store.RecordStore, func() error, error) {
	switch cfg.Type {
	case TypeMemory:
		s := memory.NewSeeded()
		return s, func() error { return nil }, nil
	case TypeSQLite:
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("create sqlite backend: %w", err)
		}
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend type: %q", cfg.Type)
	}
}
