package hackchecks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, creatureID int64, isHacked bool) error {
	query :=
		`INSERT INTO hack_checks (creature_id, is_hacked)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, creatureID, isHacked)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListFlagged(ctx context.Context) ([]models.HackedCreature, error) {
	query :=
		`SELECT c.id, c.nickname, s.name, c.dex_number, c.level, u.username
		 FROM hack_checks h
		 JOIN creatures c ON c.id = h.creature_id
		 JOIN species s ON s.dex_number = c.dex_number
		 JOIN boxes b ON b.id = c.box_id
		 JOIN users u ON u.id = b.user_id
		 WHERE h.is_hacked
		 ORDER BY u.username, c.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.HackedCreature
	for rows.Next() {
		var hc models.HackedCreature
		if err := rows.Scan(&hc.CreatureID, &hc.Nickname, &hc.SpeciesName, &hc.DexNumber, &hc.Level, &hc.OwnerName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, hc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
