package monster

import "slices"

// Element is a species' elemental tag.
type Element string

const (
	ElementWater  Element = "Water"
	ElementFire   Element = "Fire"
	ElementEarth  Element = "Earth"
	ElementAir    Element = "Air"
	ElementNormal Element = "Normal"
)

// Elements lists the closed set of valid elements.
var Elements = []Element{ElementWater, ElementFire, ElementEarth, ElementAir, ElementNormal}

func (e Element) Valid() bool {
	return slices.Contains(Elements, e)
}

// MoveKindPhysical is the only move kind the damage formula currently uses.
const MoveKindPhysical = "physical"

// Move is a value object; learnsets are copied, never shared by reference.
type Move struct {
	Name     string  `yaml:"name" json:"name"`
	Power    int     `yaml:"power" json:"power"`
	Accuracy float64 `yaml:"accuracy" json:"accuracy"`
	Kind     string  `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// DefaultMove is given to monsters whose species has an empty learnset.
var DefaultMove = Move{Name: "Tackle", Power: 35, Accuracy: 0.95, Kind: MoveKindPhysical}

// NoEvolutionLevel is the threshold used when a species has no evolution level.
const NoEvolutionLevel = 1000

// Species is an immutable monster template loaded from the catalog. Nothing
// mutates a Species after the catalog is built.
type Species struct {
	Key                   string
	Name                  string
	Element               Element
	BaseHP                int
	BaseAttack            int
	BaseDefense           int
	BaseSpeed             int
	CatchRate             int
	Icon                  string
	Learnset              []Move
	EvolvesTo             string
	EvolutionLevel        int
	EvolutionRequirements map[string]interface{}
}

// EvolutionThreshold returns the level at which the species evolves.
func (s *Species) EvolutionThreshold() int {
	if s.EvolutionLevel > 0 {
		return s.EvolutionLevel
	}
	return NoEvolutionLevel
}

// StarterMoves returns the first two learnset moves, or DefaultMove.
func (s *Species) StarterMoves() []Move {
	n := min(2, len(s.Learnset))
	if n == 0 {
		return []Move{DefaultMove}
	}
	return slices.Clone(s.Learnset[:n])
}

// FullMoves returns a copy of the whole learnset, or DefaultMove.
func (s *Species) FullMoves() []Move {
	if len(s.Learnset) == 0 {
		return []Move{DefaultMove}
	}
	return slices.Clone(s.Learnset)
}
