package species

import (
	"context"

	"github.com/dmitrijs2005/pokestore/internal/models"
)

type Repository interface {
	// Get returns the catalog entry for a Pokédex number.
	Get(ctx context.Context, dexNumber int) (*models.Species, error)
	// Create appends a new catalog entry. The catalog is append-only.
	Create(ctx context.Context, sp *models.Species) error
	// List returns the whole catalog ordered by Pokédex number.
	List(ctx context.Context) ([]models.Species, error)
}
