package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pokestore/internal/common"
	"github.com/dmitrijs2005/pokestore/internal/models"
	"github.com/dmitrijs2005/pokestore/internal/services"
)

// targetArg returns the optional trailing username argument. Standard users
// may only target themselves, so the server rejects anything else; the
// console just passes it through.
func targetArg(args []string, after int) string {
	if len(args) > after {
		return args[after]
	}
	return ""
}

func (a *App) list(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: list <box> [user]")
		return nil
	}
	boxNumber, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: list <box> [user]")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	recs, err := a.inventory.ListBox(ctx, p, targetArg(args, 1), boxNumber)
	if err != nil {
		return err
	}
	a.renderCreatures(recs)
	return nil
}

func (a *App) insert(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: insert <box> [user]")
		return nil
	}
	boxNumber, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: insert <box> [user]")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}

	req, err := a.promptCreature()
	if err != nil {
		return err
	}

	res, err := a.inventory.InsertCreature(ctx, p, targetArg(args, 1), boxNumber, *req)
	if err != nil {
		if errors.Is(err, common.ErrorBoxFull) {
			fmt.Fprintln(a.out, "Box is full")
		}
		return err
	}

	fmt.Fprintf(a.out, "Stored with id %d\n", res.CreatureID)
	if res.Hacked {
		fmt.Fprintln(a.out, "Warning: stats are impossible for this species, flagged as hacked")
	}
	return nil
}

// promptCreature interactively collects the attributes of a new creature.
func (a *App) promptCreature() (*services.InsertCreatureRequest, error) {
	req := &services.InsertCreatureRequest{}
	var err error

	if req.DexNumber, err = getInt(a.reader, "Pokédex number", a.out); err != nil {
		return nil, err
	}
	if req.Nickname, err = getSimpleText(a.reader, "Nickname (empty for species name)", a.out); err != nil {
		return nil, err
	}
	if req.Level, err = getInt(a.reader, "Level", a.out); err != nil {
		return nil, err
	}
	if req.Nature, err = getSimpleText(a.reader, "Nature", a.out); err != nil {
		return nil, err
	}

	stats := []struct {
		name string
		dst  *int
	}{
		{"HP", &req.Stats.HP},
		{"Attack", &req.Stats.Attack},
		{"Defense", &req.Stats.Defense},
		{"Sp. Attack", &req.Stats.SpecialAttack},
		{"Sp. Defense", &req.Stats.SpecialDefense},
		{"Speed", &req.Stats.Speed},
	}
	for _, s := range stats {
		if *s.dst, err = getInt(a.reader, s.name, a.out); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (a *App) release(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: release <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: release <id>")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	if err := a.inventory.ReleaseCreature(ctx, p, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Released")
	return nil
}

func (a *App) move(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: move <id> <box> [user]")
		return nil
	}
	id, err1 := strconv.ParseInt(args[0], 10, 64)
	boxNumber, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Usage: move <id> <box> [user]")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	if err := a.inventory.MoveCreature(ctx, p, id, targetArg(args, 2), boxNumber); err != nil {
		if errors.Is(err, common.ErrorBoxFull) {
			fmt.Fprintln(a.out, "Destination box is full")
		}
		return err
	}
	fmt.Fprintln(a.out, "Moved")
	return nil
}

func (a *App) findType(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: findtype <type> [user]")
		return nil
	}
	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	recs, err := a.inventory.SearchByType(ctx, p, targetArg(args, 1), args[0])
	if err != nil {
		return err
	}
	a.renderCreatures(recs)
	return nil
}

func (a *App) findLevel(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: findlevel <low> <high> [user]")
		return nil
	}
	low, err1 := strconv.Atoi(args[0])
	high, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(a.out, "Usage: findlevel <low> <high> [user]")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	recs, err := a.inventory.SearchByLevelRange(ctx, p, targetArg(args, 2), low, high)
	if err != nil {
		return err
	}
	a.renderCreatures(recs)
	return nil
}

func (a *App) findDex(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: finddex <number> [user]")
		return nil
	}
	dex, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Usage: finddex <number> [user]")
		return nil
	}

	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	recs, err := a.inventory.SearchByDex(ctx, p, targetArg(args, 1), dex)
	if err != nil {
		return err
	}
	a.renderCreatures(recs)
	return nil
}

func (a *App) weakTo(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: weakto <type> [user]")
		return nil
	}
	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	recs, err := a.inventory.AnalyzeTypeWeakness(ctx, p, targetArg(args, 1), args[0])
	if err != nil {
		return err
	}
	a.renderCreatures(recs)
	return nil
}

func (a *App) hacked(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	flagged, err := a.inventory.ListHackedCreatures(ctx, p)
	if err != nil {
		return err
	}
	a.renderHacked(flagged)
	return nil
}

func (a *App) counts(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return err
	}
	counts, err := a.inventory.CountPerUser(ctx, p)
	if err != nil {
		return err
	}
	a.renderCounts(counts)
	return nil
}

func (a *App) addSpecies(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return err
	}

	sp := models.Species{}
	if sp.DexNumber, err = getInt(a.reader, "Pokédex number", a.out); err != nil {
		return err
	}
	if sp.Name, err = getSimpleText(a.reader, "Species name", a.out); err != nil {
		return err
	}
	if sp.Type1, err = getSimpleText(a.reader, "Primary type", a.out); err != nil {
		return err
	}
	if sp.Type2, err = getSimpleText(a.reader, "Secondary type (empty for none)", a.out); err != nil {
		return err
	}

	stats := []struct {
		name string
		dst  *int
	}{
		{"Base HP", &sp.BaseStats.HP},
		{"Base Attack", &sp.BaseStats.Attack},
		{"Base Defense", &sp.BaseStats.Defense},
		{"Base Sp. Attack", &sp.BaseStats.SpecialAttack},
		{"Base Sp. Defense", &sp.BaseStats.SpecialDefense},
		{"Base Speed", &sp.BaseStats.Speed},
	}
	for _, s := range stats {
		if *s.dst, err = getInt(a.reader, s.name, a.out); err != nil {
			return err
		}
	}

	if err := a.inventory.AddSpecies(ctx, p, sp); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			fmt.Fprintln(a.out, "That Pokédex number is already registered")
		}
		return err
	}
	fmt.Fprintln(a.out, "Species added")
	return nil
}
