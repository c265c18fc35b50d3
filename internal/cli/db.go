// Package cli implements the maintenance subcommands of the biblioteca binary.
package cli

import (
	"fmt"

	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/logging"
)

// openDatabase opens and bootstraps path with warnings-only SQL logging.
func openDatabase(path string) (*database.Database, error) {
	db, err := database.NewDatabase(path, database.WithLogger(logging.NewGormLogger(false)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}
