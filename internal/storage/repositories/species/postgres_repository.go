package species

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, dexNumber int) (*models.Species, error) {
	query :=
		`SELECT dex_number, name, type1, COALESCE(type2, ''),
		        base_hp, base_attack, base_defense, base_special_attack, base_special_defense, base_speed
		 FROM species
		 WHERE dex_number = $1
		 `

	sp := &models.Species{}
	err := r.db.QueryRowContext(ctx, query, dexNumber).Scan(
		&sp.DexNumber, &sp.Name, &sp.Type1, &sp.Type2,
		&sp.BaseStats.HP, &sp.BaseStats.Attack, &sp.BaseStats.Defense,
		&sp.BaseStats.SpecialAttack, &sp.BaseStats.SpecialDefense, &sp.BaseStats.Speed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return sp, nil
}

func (r *PostgresRepository) Create(ctx context.Context, sp *models.Species) error {
	query :=
		`INSERT INTO species (dex_number, name, type1, type2,
		                      base_hp, base_attack, base_defense, base_special_attack, base_special_defense, base_speed)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		sp.DexNumber, sp.Name, sp.Type1, sp.Type2,
		sp.BaseStats.HP, sp.BaseStats.Attack, sp.BaseStats.Defense,
		sp.BaseStats.SpecialAttack, sp.BaseStats.SpecialDefense, sp.BaseStats.Speed)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Species, error) {
	query :=
		`SELECT dex_number, name, type1, COALESCE(type2, ''),
		        base_hp, base_attack, base_defense, base_special_attack, base_special_defense, base_speed
		 FROM species
		 ORDER BY dex_number
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Species
	for rows.Next() {
		var sp models.Species
		if err := rows.Scan(
			&sp.DexNumber, &sp.Name, &sp.Type1, &sp.Type2,
			&sp.BaseStats.HP, &sp.BaseStats.Attack, &sp.BaseStats.Defense,
			&sp.BaseStats.SpecialAttack, &sp.BaseStats.SpecialDefense, &sp.BaseStats.Speed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
