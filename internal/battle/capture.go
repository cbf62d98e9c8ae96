package battle

import (
	"monstercollector/internal/dice"
	"monstercollector/internal/mathutil"
	"monstercollector/internal/monster"
)

const (
	CaptureMin = 0.05
	CaptureMax = 0.95
)

// CaptureChance maps a catch rate and item bonus to a success probability.
func CaptureChance(catchRate int, bonus float64) float64 {
	a := float64(catchRate) * bonus / (255.0 / 3.0)
	return mathutil.FloatClamp(0.2+a*0.15, CaptureMin, CaptureMax)
}

// AttemptCapture rolls once against CaptureChance. Callers must refuse
// trainer-owned targets before getting here.
func AttemptCapture(src dice.Source, target *monster.Monster, bonus float64) bool {
	return src.Float64() < CaptureChance(target.Species.CatchRate, bonus)
}
