package models

// Stats holds the six stat values of a creature or the canonical base
// profile of a species, in the fixed order used everywhere in the system.
type Stats struct {
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// Species is one Pokédex catalog entry. The catalog is append-only:
// administrators may add entries, nothing mutates or deletes them.
type Species struct {
	// DexNumber is the canonical Pokédex number, unique in the catalog.
	DexNumber int
	// Name is the species name.
	Name string
	// Type1 is the primary elemental type.
	Type1 string
	// Type2 is the secondary elemental type, empty for mono-typed species.
	Type2 string
	// BaseStats is the canonical stat profile.
	BaseStats Stats
}

// Types returns the species' one or two elemental types.
func (s Species) Types() []string {
	if s.Type2 == "" {
		return []string{s.Type1}
	}
	return []string{s.Type1, s.Type2}
}
