package app

import (
	"fmt"

	"github.com/winghq/wingman/internal/store"
)

// openStore opens the wingman database and ensures the schema exists.
// Callers own the returned store and must Close it.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return db, nil
}
