// This file implements InventoryService, the consistency engine of the
// storage system. It enforces box capacity, ownership, and identity
// invariants; every multi-step mutation runs inside a single transaction so
// box counters and membership can never drift apart.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/dbx"
	"github.com/dmitrijs2005/pokestore/internal/logging"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/pokedex"
	"github.com/dmitrijs2005/pokestore/internal/storage/repositories/repomanager"
)

// InsertCreatureRequest carries the caller-supplied attributes of a new
// creature. The box and owner are passed separately.
type InsertCreatureRequest struct {
	DexNumber int
	Nickname  string
	Stats     models.Stats
	Level     int
	Nature    string
}

// InsertResult reports the assigned identifier and the hack verdict
// computed at insertion time.
type InsertResult struct {
	CreatureID int64
	Hacked     bool
}

// InventoryService implements the box/inventory operations. Every operation
// takes the acting principal explicitly; standard principals may only target
// their own data, administrators may target anyone.
type InventoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewInventoryService constructs an InventoryService.
func NewInventoryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *InventoryService {
	return &InventoryService{db: db, repomanager: m, logger: logger}
}

// resolveTarget checks that acting may operate on targetUser's data and
// returns the target's user id. An empty targetUser means self-service.
func (s *InventoryService) resolveTarget(ctx context.Context, db dbx.DBTX, acting models.Principal, targetUser string) (string, error) {
	if targetUser == "" || targetUser == acting.Username {
		return acting.UserID, nil
	}
	if !acting.IsAdmin() {
		return "", common.ErrorForbidden
	}
	user, err := s.repomanager.Users(db).GetByUsername(ctx, targetUser)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func validBoxNumber(n int) bool {
	return n >= 1 && n <= models.BoxesPerUser
}

// ListBox returns the creatures stored in one box, in insertion order.
func (s *InventoryService) ListBox(ctx context.Context, acting models.Principal, targetUser string, boxNumber int) ([]models.CreatureRecord, error) {
	if !validBoxNumber(boxNumber) {
		return nil, fmt.Errorf("box %d: %w", boxNumber, common.ErrorNotFound)
	}

	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	box, err := s.repomanager.Boxes(s.db).Get(ctx, userID, boxNumber)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Creatures(s.db).ListByBox(ctx, box.ID)
}

// InsertCreature validates and stores a new creature, computing its hack
// verdict against the species' canonical profile. The capacity check and the
// insert commit in one transaction, so a full box can never overshoot.
func (s *InventoryService) InsertCreature(ctx context.Context, acting models.Principal, targetUser string, boxNumber int, req InsertCreatureRequest) (*InsertResult, error) {
	if !validBoxNumber(boxNumber) {
		return nil, fmt.Errorf("box %d: %w", boxNumber, common.ErrorNotFound)
	}

	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	if err := validateCreatureInput(req); err != nil {
		return nil, err
	}

	sp, err := s.repomanager.Species(s.db).Get(ctx, req.DexNumber)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnknownSpecies
		}
		return nil, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		nickname = sp.Name
	}
	if len(nickname) > models.NicknameMaxLen {
		return nil, fmt.Errorf("nickname longer than %d characters: %w", models.NicknameMaxLen, common.ErrorInvalidInput)
	}

	hacked := pokedex.CheckStats(req.Stats, req.Level, *sp)

	result := &InsertResult{Hacked: hacked}
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		box, err := s.repomanager.Boxes(tx).Get(ctx, userID, boxNumber)
		if err != nil {
			return err
		}
		if err := s.repomanager.Boxes(tx).ReserveSlot(ctx, box.ID); err != nil {
			return err
		}

		creature := &models.Creature{
			BoxID:     box.ID,
			DexNumber: req.DexNumber,
			Nickname:  nickname,
			Stats:     req.Stats,
			Level:     req.Level,
			Nature:    strings.ToLower(strings.TrimSpace(req.Nature)),
		}
		id, err := s.repomanager.Creatures(tx).Create(ctx, creature)
		if err != nil {
			return err
		}
		result.CreatureID = id

		return s.repomanager.HackChecks(tx).Create(ctx, id, hacked)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "creature stored",
		"creature_id", result.CreatureID, "user_id", userID, "box", boxNumber, "hacked", hacked)
	return result, nil
}

// ReleaseCreature deletes a creature and its hack check, and gives the slot
// back to the owning box, atomically.
func (s *InventoryService) ReleaseCreature(ctx context.Context, acting models.Principal, creatureID int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := s.repomanager.Creatures(tx).Get(ctx, creatureID)
		if err != nil {
			return err
		}
		if !acting.IsAdmin() && rec.OwnerID != acting.UserID {
			return common.ErrorForbidden
		}

		// hack_checks row goes with the creature (FK cascade)
		if err := s.repomanager.Creatures(tx).Delete(ctx, creatureID); err != nil {
			return err
		}
		return s.repomanager.Boxes(tx).ReleaseSlot(ctx, rec.BoxID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "creature released", "creature_id", creatureID)
	return nil
}

// MoveCreature relocates a creature to another box, possibly of another user
// when the acting principal is an administrator. Source decrement,
// destination capacity check, and reassignment commit together; moving a
// creature onto its current box is a no-op success.
func (s *InventoryService) MoveCreature(ctx context.Context, acting models.Principal, creatureID int64, destUser string, destBoxNumber int) error {
	if !validBoxNumber(destBoxNumber) {
		return fmt.Errorf("box %d: %w", destBoxNumber, common.ErrorNotFound)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := s.repomanager.Creatures(tx).Get(ctx, creatureID)
		if err != nil {
			return err
		}
		if !acting.IsAdmin() && rec.OwnerID != acting.UserID {
			return common.ErrorForbidden
		}

		destUserID, err := s.resolveTarget(ctx, tx, acting, destUser)
		if err != nil {
			return err
		}

		dest, err := s.repomanager.Boxes(tx).Get(ctx, destUserID, destBoxNumber)
		if err != nil {
			return err
		}
		if dest.ID == rec.BoxID {
			return nil
		}

		if err := s.repomanager.Boxes(tx).ReserveSlot(ctx, dest.ID); err != nil {
			return err
		}
		if err := s.repomanager.Boxes(tx).ReleaseSlot(ctx, rec.BoxID); err != nil {
			return err
		}
		return s.repomanager.Creatures(tx).UpdateBox(ctx, creatureID, dest.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "creature moved", "creature_id", creatureID, "dest_box", destBoxNumber)
	return nil
}

// SearchByType returns the target user's creatures whose species has the
// given type as either of its types, ordered by Pokédex number.
func (s *InventoryService) SearchByType(ctx context.Context, acting models.Principal, targetUser string, typeName string) ([]models.CreatureRecord, error) {
	if !pokedex.ValidType(typeName) {
		return nil, fmt.Errorf("unknown type %q: %w", typeName, common.ErrorInvalidInput)
	}

	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Creatures(s.db).SearchByType(ctx, userID, pokedex.NormalizeType(typeName))
}

// SearchByLevelRange returns the target user's creatures with
// low <= level <= high, highest level first. An inverted range yields an
// empty result rather than an error.
func (s *InventoryService) SearchByLevelRange(ctx context.Context, acting models.Principal, targetUser string, low, high int) ([]models.CreatureRecord, error) {
	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	if low > high {
		return nil, nil
	}

	return s.repomanager.Creatures(s.db).SearchByLevelRange(ctx, userID, low, high)
}

// SearchByDex returns the target user's creatures of one species, ordered
// by nickname.
func (s *InventoryService) SearchByDex(ctx context.Context, acting models.Principal, targetUser string, dexNumber int) ([]models.CreatureRecord, error) {
	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Creatures(s.db).SearchByDex(ctx, userID, dexNumber)
}

// AnalyzeTypeWeakness returns the target user's creatures whose species
// takes super-effective damage from the given attack type.
func (s *InventoryService) AnalyzeTypeWeakness(ctx context.Context, acting models.Principal, targetUser string, attackType string) ([]models.CreatureRecord, error) {
	if !pokedex.ValidType(attackType) {
		return nil, fmt.Errorf("unknown type %q: %w", attackType, common.ErrorInvalidInput)
	}

	userID, err := s.resolveTarget(ctx, s.db, acting, targetUser)
	if err != nil {
		return nil, err
	}

	recs, err := s.repomanager.Creatures(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var weak []models.CreatureRecord
	for _, rec := range recs {
		sp := models.Species{Type1: rec.Type1, Type2: rec.Type2}
		if pokedex.IsWeakTo(sp, attackType) {
			weak = append(weak, rec)
		}
	}
	return weak, nil
}

// ListHackedCreatures returns every flagged creature system-wide with its
// owner. Administrators only.
func (s *InventoryService) ListHackedCreatures(ctx context.Context, acting models.Principal) ([]models.HackedCreature, error) {
	if !acting.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.HackChecks(s.db).ListFlagged(ctx)
}

// CountPerUser returns the total creature count of every user, largest
// first. Administrators only.
func (s *InventoryService) CountPerUser(ctx context.Context, acting models.Principal) ([]models.UserCount, error) {
	if !acting.IsAdmin() {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Boxes(s.db).CountsPerUser(ctx)
}

// AddSpecies appends a new entry to the catalog. Administrators only.
func (s *InventoryService) AddSpecies(ctx context.Context, acting models.Principal, sp models.Species) error {
	if !acting.IsAdmin() {
		return common.ErrorForbidden
	}

	if sp.DexNumber < 1 {
		return fmt.Errorf("dex number must be positive: %w", common.ErrorInvalidInput)
	}
	sp.Name = strings.ToLower(strings.TrimSpace(sp.Name))
	if sp.Name == "" {
		return fmt.Errorf("species name required: %w", common.ErrorInvalidInput)
	}
	if !pokedex.ValidType(sp.Type1) {
		return fmt.Errorf("unknown type %q: %w", sp.Type1, common.ErrorInvalidInput)
	}
	sp.Type1 = pokedex.NormalizeType(sp.Type1)
	if sp.Type2 != "" {
		if !pokedex.ValidType(sp.Type2) {
			return fmt.Errorf("unknown type %q: %w", sp.Type2, common.ErrorInvalidInput)
		}
		sp.Type2 = pokedex.NormalizeType(sp.Type2)
	}
	for _, v := range []int{sp.BaseStats.HP, sp.BaseStats.Attack, sp.BaseStats.Defense,
		sp.BaseStats.SpecialAttack, sp.BaseStats.SpecialDefense, sp.BaseStats.Speed} {
		if v < 1 {
			return fmt.Errorf("base stats must be positive: %w", common.ErrorInvalidInput)
		}
	}

	if err := s.repomanager.Species(s.db).Create(ctx, &sp); err != nil {
		return err
	}

	s.logger.Info(ctx, "species added", "dex_number", sp.DexNumber, "name", sp.Name)
	return nil
}

func validateCreatureInput(req InsertCreatureRequest) error {
	if req.Level < 1 {
		return fmt.Errorf("level must be positive: %w", common.ErrorInvalidInput)
	}
	for _, v := range []int{req.Stats.HP, req.Stats.Attack, req.Stats.Defense,
		req.Stats.SpecialAttack, req.Stats.SpecialDefense, req.Stats.Speed} {
		if v < 0 {
			return fmt.Errorf("stats must not be negative: %w", common.ErrorInvalidInput)
		}
	}
	if strings.TrimSpace(req.Nature) == "" {
		return fmt.Errorf("nature required: %w", common.ErrorInvalidInput)
	}
	return nil
}
