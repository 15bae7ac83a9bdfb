package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/logging"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/boxes"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/creatures"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/hackchecks"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/refreshtokens"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/species"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/users"
)

// fakeState is shared in-memory storage backing the fake repositories. The
// fakes keep the real repositories' error contracts but skip SQL entirely, so
// service tests exercise business rules without a database.
type fakeState struct {
	users          map[string]*models.User // by id
	refreshTokens  map[string]models.RefreshToken
	species        map[int]models.Species
	boxes          map[int64]*models.Box
	nextBoxID      int64
	creatures      map[int64]*models.Creature
	nextCreatureID int64
	hackChecks     map[int64]bool
}

func newFakeState() *fakeState {
	return &fakeState{
		users:         make(map[string]*models.User),
		refreshTokens: make(map[string]models.RefreshToken),
		species:       make(map[int]models.Species),
		boxes:         make(map[int64]*models.Box),
		creatures:     make(map[int64]*models.Creature),
		hackChecks:    make(map[int64]bool),
	}
}

func (s *fakeState) record(c *models.Creature) models.CreatureRecord {
	rec := models.CreatureRecord{Creature: *c}
	if box, ok := s.boxes[c.BoxID]; ok {
		rec.BoxNumber = box.Number
		rec.OwnerID = box.UserID
		if owner, ok := s.users[box.UserID]; ok {
			rec.OwnerName = owner.Username
		}
	}
	if sp, ok := s.species[c.DexNumber]; ok {
		rec.SpeciesName = sp.Name
		rec.Type1 = sp.Type1
		rec.Type2 = sp.Type2
	}
	return rec
}

func (s *fakeState) ownedBy(userID string) []models.CreatureRecord {
	var recs []models.CreatureRecord
	for _, c := range s.creatures {
		rec := s.record(c)
		if rec.OwnerID == userID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs
}

type fakeUsersRepo struct{ s *fakeState }

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return nil, common.ErrorConflict
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return user, nil
}

func (r *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeRefreshTokensRepo struct{ s *fakeState }

func (r *fakeRefreshTokensRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.s.refreshTokens[token] = models.RefreshToken{
		UserID:  userID,
		Token:   token,
		Expires: time.Now().Add(validity),
	}
	return nil
}

func (r *fakeRefreshTokensRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.s.refreshTokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *fakeRefreshTokensRepo) Delete(ctx context.Context, token string) error {
	delete(r.s.refreshTokens, token)
	return nil
}

type fakeSpeciesRepo struct{ s *fakeState }

func (r *fakeSpeciesRepo) Get(ctx context.Context, dexNumber int) (*models.Species, error) {
	sp, ok := r.s.species[dexNumber]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &sp, nil
}

func (r *fakeSpeciesRepo) Create(ctx context.Context, sp *models.Species) error {
	if _, ok := r.s.species[sp.DexNumber]; ok {
		return common.ErrorConflict
	}
	r.s.species[sp.DexNumber] = *sp
	return nil
}

func (r *fakeSpeciesRepo) List(ctx context.Context) ([]models.Species, error) {
	var all []models.Species
	for _, sp := range r.s.species {
		all = append(all, sp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DexNumber < all[j].DexNumber })
	return all, nil
}

type fakeBoxesRepo struct{ s *fakeState }

func (r *fakeBoxesRepo) CreateForUser(ctx context.Context, userID string) error {
	for n := 1; n <= models.BoxesPerUser; n++ {
		r.s.nextBoxID++
		r.s.boxes[r.s.nextBoxID] = &models.Box{ID: r.s.nextBoxID, UserID: userID, Number: n}
	}
	return nil
}

func (r *fakeBoxesRepo) Get(ctx context.Context, userID string, number int) (*models.Box, error) {
	for _, b := range r.s.boxes {
		if b.UserID == userID && b.Number == number {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeBoxesRepo) ReserveSlot(ctx context.Context, boxID int64) error {
	b, ok := r.s.boxes[boxID]
	if !ok {
		return common.ErrorNotFound
	}
	if b.NumStored >= models.BoxCapacity {
		return common.ErrorBoxFull
	}
	b.NumStored++
	return nil
}

func (r *fakeBoxesRepo) ReleaseSlot(ctx context.Context, boxID int64) error {
	b, ok := r.s.boxes[boxID]
	if !ok || b.NumStored < 1 {
		return common.ErrorInternal
	}
	b.NumStored--
	return nil
}

func (r *fakeBoxesRepo) CountsPerUser(ctx context.Context) ([]models.UserCount, error) {
	totals := make(map[string]int)
	for _, b := range r.s.boxes {
		totals[b.UserID] += b.NumStored
	}
	var counts []models.UserCount
	for id, u := range r.s.users {
		counts = append(counts, models.UserCount{Username: u.Username, Count: totals[id]})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Username < counts[j].Username
	})
	return counts, nil
}

type fakeCreaturesRepo struct{ s *fakeState }

func (r *fakeCreaturesRepo) Create(ctx context.Context, c *models.Creature) (int64, error) {
	r.s.nextCreatureID++
	cp := *c
	cp.ID = r.s.nextCreatureID
	cp.CreatedAt = time.Now()
	r.s.creatures[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeCreaturesRepo) Get(ctx context.Context, id int64) (*models.CreatureRecord, error) {
	c, ok := r.s.creatures[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec := r.s.record(c)
	return &rec, nil
}

func (r *fakeCreaturesRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.s.creatures[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.creatures, id)
	delete(r.s.hackChecks, id)
	return nil
}

func (r *fakeCreaturesRepo) UpdateBox(ctx context.Context, id int64, boxID int64) error {
	c, ok := r.s.creatures[id]
	if !ok {
		return common.ErrorNotFound
	}
	c.BoxID = boxID
	return nil
}

func (r *fakeCreaturesRepo) ListByBox(ctx context.Context, boxID int64) ([]models.CreatureRecord, error) {
	var recs []models.CreatureRecord
	for _, c := range r.s.creatures {
		if c.BoxID == boxID {
			recs = append(recs, r.s.record(c))
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })
	return recs, nil
}

func (r *fakeCreaturesRepo) ListByUser(ctx context.Context, userID string) ([]models.CreatureRecord, error) {
	return r.s.ownedBy(userID), nil
}

func (r *fakeCreaturesRepo) SearchByType(ctx context.Context, userID string, typeName string) ([]models.CreatureRecord, error) {
	var recs []models.CreatureRecord
	for _, rec := range r.s.ownedBy(userID) {
		if rec.Type1 == typeName || rec.Type2 == typeName {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (r *fakeCreaturesRepo) SearchByLevelRange(ctx context.Context, userID string, low, high int) ([]models.CreatureRecord, error) {
	var recs []models.CreatureRecord
	for _, rec := range r.s.ownedBy(userID) {
		if rec.Level >= low && rec.Level <= high {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Level > recs[j].Level })
	return recs, nil
}

func (r *fakeCreaturesRepo) SearchByDex(ctx context.Context, userID string, dexNumber int) ([]models.CreatureRecord, error) {
	var recs []models.CreatureRecord
	for _, rec := range r.s.ownedBy(userID) {
		if rec.DexNumber == dexNumber {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Nickname < recs[j].Nickname })
	return recs, nil
}

type fakeHackChecksRepo struct{ s *fakeState }

func (r *fakeHackChecksRepo) Create(ctx context.Context, creatureID int64, isHacked bool) error {
	r.s.hackChecks[creatureID] = isHacked
	return nil
}

func (r *fakeHackChecksRepo) ListFlagged(ctx context.Context) ([]models.HackedCreature, error) {
	var flagged []models.HackedCreature
	for id, hacked := range r.s.hackChecks {
		if !hacked {
			continue
		}
		c, ok := r.s.creatures[id]
		if !ok {
			continue
		}
		rec := r.s.record(c)
		flagged = append(flagged, models.HackedCreature{
			CreatureID:  rec.ID,
			Nickname:    rec.Nickname,
			SpeciesName: rec.SpeciesName,
			DexNumber:   rec.DexNumber,
			Level:       rec.Level,
			OwnerName:   rec.OwnerName,
		})
	}
	sort.Slice(flagged, func(i, j int) bool { return flagged[i].CreatureID < flagged[j].CreatureID })
	return flagged, nil
}

// fakeManager vends the fake repositories regardless of the DBTX handed in.
type fakeManager struct{ s *fakeState }

func newFakeManager() *fakeManager {
	return &fakeManager{s: newFakeState()}
}

func (m *fakeManager) Users(db dbx.DBTX) users.Repository { return &fakeUsersRepo{m.s} }
func (m *fakeManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return &fakeRefreshTokensRepo{m.s}
}
func (m *fakeManager) Species(db dbx.DBTX) species.Repository { return &fakeSpeciesRepo{m.s} }
func (m *fakeManager) Boxes(db dbx.DBTX) boxes.Repository     { return &fakeBoxesRepo{m.s} }
func (m *fakeManager) Creatures(db dbx.DBTX) creatures.Repository {
	return &fakeCreaturesRepo{m.s}
}
func (m *fakeManager) HackChecks(db dbx.DBTX) hackchecks.Repository {
	return &fakeHackChecksRepo{m.s}
}
func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

// noopLogger satisfies logging.Logger for tests.
type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (noopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (noopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l noopLogger) With(args ...any) logging.Logger                  { return l }

// newTxDB returns a sqlmock-backed handle for services that only use the
// database for transaction boundaries.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// addUser seeds a user with its boxes directly into the fake state.
func addUser(m *fakeManager, id, username string, role models.Role) models.Principal {
	m.s.users[id] = &models.User{ID: id, Username: username, Role: role}
	_ = (&fakeBoxesRepo{m.s}).CreateForUser(context.Background(), id)
	return models.Principal{UserID: id, Username: username, Role: role}
}
