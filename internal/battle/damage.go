package battle

import (
	"fmt"
	"math"

	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
)

// Variance bounds. Damage is only ever dampened, never boosted.
const (
	VarianceMin = 0.85
	VarianceMax = 1.0
)

// effectiveness holds one direction per pair. Reverse pairs and anything
// involving Normal fall through to 1.0.
var effectiveness = map[[2]monster.Element]float64{
	{monster.ElementWater, monster.ElementFire}: 1.5,
	{monster.ElementFire, monster.ElementEarth}: 1.5,
	{monster.ElementEarth, monster.ElementAir}:  1.5,
	{monster.ElementAir, monster.ElementWater}:  1.5,
}

// Multiplier returns the elemental multiplier for attacker against defender.
func Multiplier(attacker, defender monster.Element) float64 {
	if m, ok := effectiveness[[2]monster.Element{attacker, defender}]; ok {
		return m
	}
	return 1.0
}

// Hit is the result of one move.
type Hit struct {
	Damage     int
	Missed     bool
	Multiplier float64
	Message    string
}

// BaseDamage is the level, power and stat scaled damage before element and
// variance, floored at 1.
func BaseDamage(attacker, defender *monster.Monster, mv monster.Move) float64 {
	ratio := float64(attacker.Attack()) / float64(max(1, defender.Defense()))
	base := ((0.4*float64(attacker.Level) + 2) * float64(mv.Power) * ratio) / 10
	return math.Max(1, base)
}

// ResolveDamage rolls accuracy, then scales and varies the damage. It does
// not touch either monster.
func ResolveDamage(src dice.Source, attacker, defender *monster.Monster, mv monster.Move) Hit {
	used := fmt.Sprintf("%s used %s!", attacker.Name(), mv.Name)
	if src.Float64() > mv.Accuracy {
		return Hit{Missed: true, Multiplier: 1.0, Message: used + " It missed."}
	}

	mult := Multiplier(attacker.Species.Element, defender.Species.Element)
	variance := dice.Uniform(src, VarianceMin, VarianceMax)
	damage := int(math.Floor(BaseDamage(attacker, defender, mv) * mult * variance))

	msg := used
	switch {
	case mult > 1.0:
		msg += " It's super effective!"
	case mult < 1.0:
		msg += " It's not very effective."
	}
	return Hit{Damage: max(0, damage), Multiplier: mult, Message: msg}
}
