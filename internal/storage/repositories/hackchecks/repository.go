package hackchecks

import (
	"context"

	"github.com/dmitrijs2005/pokestore/internal/models"
)

type Repository interface {
	// Create records the hack verdict computed at insertion time.
	// The verdict is written once and never updated.
	Create(ctx context.Context, creatureID int64, isHacked bool) error
	// ListFlagged returns every flagged creature system-wide with its owner.
	ListFlagged(ctx context.Context) ([]models.HackedCreature, error)
}
