package boxes

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

func (r *PostgresRepository) CreateForUser(ctx context.Context, userID string) error {
	query :=
		`INSERT INTO boxes (user_id, box_number, num_stored)
		 SELECT $1, n, 0 FROM generate_series(1, $2) AS n
		 `

	_, err := r.db.ExecContext(ctx, query, userID, models.BoxesPerUser)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, number int) (*models.Box, error) {
	query :=
		`SELECT id, user_id, box_number, num_stored FROM boxes
		 WHERE user_id = $1 AND box_number = $2
		 `

	box := &models.Box{}
	err := r.db.QueryRowContext(ctx, query, userID, number).Scan(
		&box.ID, &box.UserID, &box.Number, &box.NumStored)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return box, nil
}

// ReserveSlot is the check-and-increment primitive the capacity invariant
// rests on: the WHERE clause makes overshooting impossible even with
// concurrent inserts into the same box.
func (r *PostgresRepository) ReserveSlot(ctx context.Context, boxID int64) error {
	query :=
		`UPDATE boxes SET num_stored = num_stored + 1
		 WHERE id = $1 AND num_stored < $2
		 `

	res, err := r.db.ExecContext(ctx, query, boxID, models.BoxCapacity)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorBoxFull
	}
	return nil
}

func (r *PostgresRepository) ReleaseSlot(ctx context.Context, boxID int64) error {
	query :=
		`UPDATE boxes SET num_stored = num_stored - 1
		 WHERE id = $1 AND num_stored > 0
		 `

	res, err := r.db.ExecContext(ctx, query, boxID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		// A creature existed in a box whose counter says empty: the two
		// must never diverge, so surface it loudly instead of committing.
		return fmt.Errorf("box %d counter out of sync: %w", boxID, common.ErrorInternal)
	}
	return nil
}

func (r *PostgresRepository) CountsPerUser(ctx context.Context) ([]models.UserCount, error) {
	query :=
		`SELECT u.username, COALESCE(SUM(b.num_stored), 0) AS total
		 FROM users u
		 LEFT JOIN boxes b ON b.user_id = u.id
		 GROUP BY u.username
		 ORDER BY total DESC, u.username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.UserCount
	for rows.Next() {
		var uc models.UserCount
		if err := rows.Scan(&uc.Username, &uc.Count); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
