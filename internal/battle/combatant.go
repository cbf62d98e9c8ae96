package battle

import (
	"monstercollector/internal/mathutil"
	"monstercollector/internal/monster"
)

// Combatant pairs a monster with the hit points it has in this battle.
// HP is discarded when the battle ends.
type Combatant struct {
	Monster *monster.Monster
	HP      int
}

func NewCombatant(m *monster.Monster) *Combatant {
	return &Combatant{Monster: m, HP: m.MaxHP()}
}

func (c *Combatant) Name() string {
	return c.Monster.Name()
}

func (c *Combatant) MaxHP() int {
	return c.Monster.MaxHP()
}

func (c *Combatant) Fainted() bool {
	return c.HP <= 0
}

// TakeDamage lowers HP, never below zero.
func (c *Combatant) TakeDamage(amount int) {
	c.HP = mathutil.IntClamp(c.HP-max(0, amount), 0, c.MaxHP())
}

// Heal raises HP up to max and returns how much was restored.
func (c *Combatant) Heal(amount int) int {
	before := c.HP
	c.HP = mathutil.IntClamp(c.HP+max(0, amount), 0, c.MaxHP())
	return c.HP - before
}

// Restore refills HP, used after evolution changes the max.
func (c *Combatant) Restore() {
	c.HP = c.MaxHP()
}
