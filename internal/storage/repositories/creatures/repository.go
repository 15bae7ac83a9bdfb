package creatures

import (
	"context"

	"github.com/dmitrijs2005/pokestore/internal/models"
)

type Repository interface {
	// Create stores a new creature and returns its assigned identifier.
	// Identifiers are monotonic and never reused.
	Create(ctx context.Context, c *models.Creature) (int64, error)
	// Get returns one creature joined with species, box, and owner.
	Get(ctx context.Context, id int64) (*models.CreatureRecord, error)
	// Delete removes a creature (the hack check row follows by cascade).
	Delete(ctx context.Context, id int64) error
	// UpdateBox reassigns the creature to another box.
	UpdateBox(ctx context.Context, id int64, boxID int64) error

	ListByBox(ctx context.Context, boxID int64) ([]models.CreatureRecord, error)
	ListByUser(ctx context.Context, userID string) ([]models.CreatureRecord, error)
	SearchByType(ctx context.Context, userID string, typeName string) ([]models.CreatureRecord, error)
	SearchByLevelRange(ctx context.Context, userID string, low, high int) ([]models.CreatureRecord, error)
	SearchByDex(ctx context.Context, userID string, dexNumber int) ([]models.CreatureRecord, error)
}
