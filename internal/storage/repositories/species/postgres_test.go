package species

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var speciesCols = []string{
	"dex_number", "name", "type1", "type2",
	"base_hp", "base_attack", "base_defense", "base_special_attack", "base_special_defense", "base_speed",
}

func TestGet_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(speciesCols).AddRow(25, "pikachu", "electric", "", 35, 55, 40, 50, 50, 90)
	mock.ExpectQuery(`SELECT\s+dex_number,\s+name,\s+type1`).
		WithArgs(25).
		WillReturnRows(rows)

	sp, err := repo.Get(context.Background(), 25)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if sp.Name != "pikachu" || sp.Type2 != "" || sp.BaseStats.Speed != 90 {
		t.Fatalf("unexpected species: %+v", sp)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+dex_number,\s+name,\s+type1`).
		WithArgs(9999).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 9999)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+species`).
		WithArgs(151, "mew", "psychic", "", 100, 100, 100, 100, 100, 100).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sp := &models.Species{
		DexNumber: 151, Name: "mew", Type1: "psychic",
		BaseStats: models.Stats{HP: 100, Attack: 100, Defense: 100, SpecialAttack: 100, SpecialDefense: 100, Speed: 100},
	}
	if err := repo.Create(context.Background(), sp); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(speciesCols).
		AddRow(1, "bulbasaur", "grass", "poison", 45, 49, 49, 65, 65, 45).
		AddRow(4, "charmander", "fire", "", 39, 52, 43, 60, 50, 65)
	mock.ExpectQuery(`SELECT\s+dex_number,\s+name,\s+type1(?s).*ORDER\s+BY\s+dex_number`).
		WillReturnRows(rows)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].Type2 != "poison" || list[1].Type2 != "" {
		t.Fatalf("unexpected list: %+v", list)
	}
}
