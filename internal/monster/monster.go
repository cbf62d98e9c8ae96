package monster

import (
	"fmt"

	"monstercollector/internal/mathutil"
)

// Monster is an owned or wild monster instance. Only Level, Exp, Moves and
// the species binding are permanent; battle hit points live on the combatant.
type Monster struct {
	Species *Species
	Level   int
	Exp     int
	Moves   []Move
}

// New creates a monster at the given level knowing its species' starter moves.
func New(sp *Species, level int) *Monster {
	return &Monster{
		Species: sp,
		Level:   max(1, level),
		Moves:   sp.StarterMoves(),
	}
}

func (m *Monster) Name() string {
	return m.Species.Name
}

func (m *Monster) MaxHP() int {
	return mathutil.IntMax(1, m.Species.BaseHP+m.Level*3)
}

func (m *Monster) Attack() int {
	return mathutil.IntMax(1, m.Species.BaseAttack+m.Level*2)
}

func (m *Monster) Defense() int {
	return mathutil.IntMax(1, m.Species.BaseDefense+m.Level*2)
}

// Speed adds floor(level * 1.5) to the base.
func (m *Monster) Speed() int {
	return mathutil.IntMax(1, m.Species.BaseSpeed+m.Level*3/2)
}

// ExpToNext is the experience needed to reach the next level.
func (m *Monster) ExpToNext() int {
	return 20 + m.Level*10
}

// GainExp adds experience and applies every level-up it pays for. It returns
// the number of levels gained. Non-positive amounts change nothing.
func (m *Monster) GainExp(amount int) int {
	if amount <= 0 {
		return 0
	}
	m.Exp += amount
	gained := 0
	for m.Exp >= m.ExpToNext() {
		m.Exp -= m.ExpToNext()
		m.Level++
		gained++
	}
	return gained
}

// CanEvolve reports whether the species has an evolution the level satisfies.
func (m *Monster) CanEvolve() bool {
	return m.Species.EvolvesTo != "" && m.Level >= m.Species.EvolutionThreshold()
}

// Evolve rebinds the monster to its evolved species and relearns moves from
// the new learnset. The previous species is returned for narration.
func (m *Monster) Evolve(c *Catalog) (*Species, error) {
	if !m.CanEvolve() {
		return nil, fmt.Errorf("%s cannot evolve at level %d", m.Name(), m.Level)
	}
	next, err := c.Get(m.Species.EvolvesTo)
	if err != nil {
		return nil, fmt.Errorf("evolve %s: %w", m.Species.Key, err)
	}
	prev := m.Species
	m.Species = next
	m.Moves = next.FullMoves()
	return prev, nil
}

func (m *Monster) String() string {
	return fmt.Sprintf("%s Lv%d", m.Name(), m.Level)
}
