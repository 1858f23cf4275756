package backend

import (
	"fmt"

	"salesdash/internal/config"
	"salesdash/internal/records"
	"salesdash/internal/records/memory"
	"salesdash/internal/storage"
)

// Type identifies a record-store backend.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// Result holds the created store; Close releases its resources.
type Result struct {
	Store records.Store
	Type  Type
}

// Create builds the record store selected by the configuration.
func Create(cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}

	switch t {
	case SQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("create sqlite backend: %w", err)
		}
		return &Result{Store: repo, Type: t}, nil
	default:
		return &Result{Store: memory.New(), Type: t}, nil
	}
}
