// Package cli implements the interactive console of the storage system.
// The same REPL backs both the trainer console and the administrator
// console; the latter unlocks the operator commands.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/pokestore/internal/logging"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/services"
)

// AccountService is the account surface the console needs.
type AccountService interface {
	Register(ctx context.Context, username string, password []byte, role models.Role) (*models.User, error)
	Login(ctx context.Context, username string, password []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	PrincipalFromToken(tokenString string) (models.Principal, error)
}

// InventoryAPI is the inventory surface the console needs.
type InventoryAPI interface {
	ListBox(ctx context.Context, acting models.Principal, targetUser string, boxNumber int) ([]models.CreatureRecord, error)
	InsertCreature(ctx context.Context, acting models.Principal, targetUser string, boxNumber int, req services.InsertCreatureRequest) (*services.InsertResult, error)
	ReleaseCreature(ctx context.Context, acting models.Principal, creatureID int64) error
	MoveCreature(ctx context.Context, acting models.Principal, creatureID int64, destUser string, destBoxNumber int) error
	SearchByType(ctx context.Context, acting models.Principal, targetUser string, typeName string) ([]models.CreatureRecord, error)
	SearchByLevelRange(ctx context.Context, acting models.Principal, targetUser string, low, high int) ([]models.CreatureRecord, error)
	SearchByDex(ctx context.Context, acting models.Principal, targetUser string, dexNumber int) ([]models.CreatureRecord, error)
	AnalyzeTypeWeakness(ctx context.Context, acting models.Principal, targetUser string, attackType string) ([]models.CreatureRecord, error)
	ListHackedCreatures(ctx context.Context, acting models.Principal) ([]models.HackedCreature, error)
	CountPerUser(ctx context.Context, acting models.Principal) ([]models.UserCount, error)
	AddSpecies(ctx context.Context, acting models.Principal, sp models.Species) error
}

// App is one interactive console session.
type App struct {
	accounts  AccountService
	inventory InventoryAPI
	logger    logging.Logger

	// admin marks the administrator console, which registers operator
	// accounts and unlocks the operator commands.
	admin bool

	tokens   *services.TokenPair
	userName string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp constructs a console session reading from stdin.
func NewApp(accounts AccountService, inventory InventoryAPI, logger logging.Logger, admin bool) *App {
	return &App{
		accounts:  accounts,
		inventory: inventory,
		logger:    logger,
		admin:     admin,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.tokens != nil
}

// principal resolves the acting principal from the current access token,
// transparently rotating the session when the access token has expired.
func (a *App) principal(ctx context.Context) (models.Principal, error) {
	if !a.isLoggedIn() {
		return models.Principal{}, errNotLoggedIn
	}
	p, err := a.accounts.PrincipalFromToken(a.tokens.AccessToken)
	if err == nil {
		return p, nil
	}

	pair, refreshErr := a.accounts.RefreshToken(ctx, a.tokens.RefreshToken)
	if refreshErr != nil {
		a.tokens = nil
		return models.Principal{}, errSessionExpired
	}
	a.tokens = pair
	return a.accounts.PrincipalFromToken(a.tokens.AccessToken)
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
