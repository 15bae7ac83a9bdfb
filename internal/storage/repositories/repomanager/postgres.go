// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/storage/migrations"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/boxes"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/creatures"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/hackchecks"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/refreshtokens"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/species"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

// Open opens a database/sql handle through the pgx driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Species returns a species.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Species(db dbx.DBTX) species.Repository {
	return species.NewPostgresRepository(db)
}

// Boxes returns a boxes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Boxes(db dbx.DBTX) boxes.Repository {
	return boxes.NewPostgresRepository(db)
}

// Creatures returns a creatures.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Creatures(db dbx.DBTX) creatures.Repository {
	return creatures.NewPostgresRepository(db)
}

// HackChecks returns a hackchecks.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) HackChecks(db dbx.DBTX) hackchecks.Repository {
	return hackchecks.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
