package models

import "time"

// NicknameMaxLen is the longest nickname accepted at insertion.
const NicknameMaxLen = 30

// Creature is one stored creature instance. Identifiers are assigned by the
// store, monotonic, and never reused even after release.
type Creature struct {
	ID        int64
	BoxID     int64
	DexNumber int
	Nickname  string
	Stats     Stats
	Level     int
	Nature    string
	CreatedAt time.Time
}

// CreatureRecord is a creature joined with its species, box number, and
// owner, as returned by queries that cross aggregate boundaries.
type CreatureRecord struct {
	Creature
	SpeciesName string
	Type1       string
	Type2       string
	BoxNumber   int
	OwnerID     string
	OwnerName   string
}

// HackedCreature pairs a flagged creature with its owner for the
// administrator overview.
type HackedCreature struct {
	CreatureID  int64
	Nickname    string
	SpeciesName string
	DexNumber   int
	Level       int
	OwnerName   string
}

// UserCount is one row of the per-user creature census.
type UserCount struct {
	Username string
	Count    int
}
