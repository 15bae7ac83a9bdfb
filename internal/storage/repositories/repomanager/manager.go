package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/boxes"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/creatures"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/hackchecks"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/refreshtokens"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/species"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repositories inside one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Species(db dbx.DBTX) species.Repository
	Boxes(db dbx.DBTX) boxes.Repository
	Creatures(db dbx.DBTX) creatures.Repository
	HackChecks(db dbx.DBTX) hackchecks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
