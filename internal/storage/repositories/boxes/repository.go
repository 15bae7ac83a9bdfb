package boxes

import (
	"context"

	"github.com/dmitrijs2005/pokestore/internal/models"
)

type Repository interface {
	// CreateForUser creates the user's full set of numbered boxes.
	CreateForUser(ctx context.Context, userID string) error
	// Get returns one box by owner and per-user box number.
	Get(ctx context.Context, userID string, number int) (*models.Box, error)
	// ReserveSlot atomically increments num_stored if the box is below
	// capacity, returning ErrorBoxFull otherwise.
	ReserveSlot(ctx context.Context, boxID int64) error
	// ReleaseSlot decrements num_stored after a creature leaves the box.
	ReleaseSlot(ctx context.Context, boxID int64) error
	// CountsPerUser returns total creatures per user, largest first.
	CountsPerUser(ctx context.Context) ([]models.UserCount, error)
}
