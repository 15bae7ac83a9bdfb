package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/pokestore/internal/config"
	"github.com/dmitrijs2005/pokestore/internal/logging"
	"github.com/dmitrijs2005/pokestore/internal/services"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/repomanager"
)

// NewAppFromConfig opens the database, runs pending migrations, and wires
// the services behind a console session.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, admin bool) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := repomanager.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	userService := services.NewUserService(db, m, cfg, logger)
	inventoryService := services.NewInventoryService(db, m, logger)

	return NewApp(userService, inventoryService, logger, admin), nil
}
