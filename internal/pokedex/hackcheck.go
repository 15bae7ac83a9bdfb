package pokedex

import "github.com/dmitrijs2005/pokestore/internal/models"

// Stat ceilings follow the main-series formulas with the most generous
// legitimate inputs: 31 individual points, 252 effort points (63 after the
// quarter division), and a 10% beneficial nature for non-HP stats.
//
//	maxHP(b, l)    = (2b + 94) * l / 100 + l + 10
//	maxOther(b, l) = ((2b + 94) * l / 100 + 5) * 110 / 100
//
// A record with any stat above its ceiling, or with a level outside 1..100,
// cannot have been produced by legitimate play and is flagged as hacked.
// The flag is computed once at insertion and never recomputed.

func maxHP(base, level int) int {
	return (2*base+94)*level/100 + level + 10
}

func maxOther(base, level int) int {
	return ((2*base+94)*level/100 + 5) * 110 / 100
}

// CheckStats reports whether the supplied stats are inconsistent with the
// species' canonical profile at the given level.
func CheckStats(stats models.Stats, level int, sp models.Species) bool {
	if level < 1 || level > 100 {
		return true
	}

	b := sp.BaseStats
	checks := []struct {
		value   int
		ceiling int
	}{
		{stats.HP, maxHP(b.HP, level)},
		{stats.Attack, maxOther(b.Attack, level)},
		{stats.Defense, maxOther(b.Defense, level)},
		{stats.SpecialAttack, maxOther(b.SpecialAttack, level)},
		{stats.SpecialDefense, maxOther(b.SpecialDefense, level)},
		{stats.Speed, maxOther(b.Speed, level)},
	}

	for _, c := range checks {
		if c.value > c.ceiling {
			return true
		}
	}
	return false
}
