package creatures

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// recordSelect is the shared projection for queries returning creatures
// joined with their species, box number, and owner.
const recordSelect = `
	SELECT c.id, c.box_id, c.dex_number, c.nickname,
	       c.hp, c.attack, c.defense, c.special_attack, c.special_defense, c.speed,
	       c.level, c.nature, c.created_at,
	       s.name, s.type1, COALESCE(s.type2, ''),
	       b.box_number, u.id, u.username
	FROM creatures c
	JOIN boxes b ON b.id = c.box_id
	JOIN users u ON u.id = b.user_id
	JOIN species s ON s.dex_number = c.dex_number`

func (r *PostgresRepository) Create(ctx context.Context, c *models.Creature) (int64, error) {
	query :=
		`INSERT INTO creatures (box_id, dex_number, nickname,
		                        hp, attack, defense, special_attack, special_defense, speed,
		                        level, nature)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id
		 `

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.BoxID, c.DexNumber, c.Nickname,
		c.Stats.HP, c.Stats.Attack, c.Stats.Defense,
		c.Stats.SpecialAttack, c.Stats.SpecialDefense, c.Stats.Speed,
		c.Level, c.Nature).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE c.id = $1
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM creatures WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateBox(ctx context.Context, id int64, boxID int64) error {
	query := `UPDATE creatures SET box_id = $2 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, boxID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByBox(ctx context.Context, boxID int64) ([]models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE c.box_id = $1
	ORDER BY c.id
	`
	return r.queryRecords(ctx, query, boxID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE u.id = $1
	ORDER BY c.dex_number, c.id
	`
	return r.queryRecords(ctx, query, userID)
}

func (r *PostgresRepository) SearchByType(ctx context.Context, userID string, typeName string) ([]models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE u.id = $1 AND (s.type1 = $2 OR s.type2 = $2)
	ORDER BY c.dex_number, c.id
	`
	return r.queryRecords(ctx, query, userID, typeName)
}

func (r *PostgresRepository) SearchByLevelRange(ctx context.Context, userID string, low, high int) ([]models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE u.id = $1 AND c.level BETWEEN $2 AND $3
	ORDER BY c.level DESC, c.id
	`
	return r.queryRecords(ctx, query, userID, low, high)
}

func (r *PostgresRepository) SearchByDex(ctx context.Context, userID string, dexNumber int) ([]models.CreatureRecord, error) {
	query := recordSelect + `
	WHERE u.id = $1 AND c.dex_number = $2
	ORDER BY c.nickname, c.id
	`
	return r.queryRecords(ctx, query, userID, dexNumber)
}

func (r *PostgresRepository) queryRecords(ctx context.Context, query string, args ...any) ([]models.CreatureRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CreatureRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.CreatureRecord, error) {
	rec := &models.CreatureRecord{}
	err := row.Scan(
		&rec.ID, &rec.BoxID, &rec.DexNumber, &rec.Nickname,
		&rec.Stats.HP, &rec.Stats.Attack, &rec.Stats.Defense,
		&rec.Stats.SpecialAttack, &rec.Stats.SpecialDefense, &rec.Stats.Speed,
		&rec.Level, &rec.Nature, &rec.CreatedAt,
		&rec.SpeciesName, &rec.Type1, &rec.Type2,
		&rec.BoxNumber, &rec.OwnerID, &rec.OwnerName)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
