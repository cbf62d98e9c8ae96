package character

import (
	"fmt"

	"monstercollector/internal/config"
	"monstercollector/internal/monster"
)

type Facing string

const (
	FacingNorth Facing = "N"
	FacingSouth Facing = "S"
	FacingEast  Facing = "E"
	FacingWest  Facing = "W"
)

// Delta returns the grid offset one step in the facing direction.
func (f Facing) Delta() (int, int) {
	switch f {
	case FacingNorth:
		return 0, -1
	case FacingSouth:
		return 0, 1
	case FacingEast:
		return 1, 0
	case FacingWest:
		return -1, 0
	}
	return 0, 0
}

// Trainer is a stationary NPC. The roster is generated on first engagement
// and kept for the rest of the session; Defeated never goes back to false.
type Trainer struct {
	Index    int
	X, Y     int
	Facing   Facing
	Defeated bool
	Roster   []*monster.Monster

	rosterReady bool
}

func NewTrainers(placements []config.TrainerPlacement) []*Trainer {
	trainers := make([]*Trainer, 0, len(placements))
	for i, pl := range placements {
		trainers = append(trainers, &Trainer{
			Index:  i,
			X:      pl.X,
			Y:      pl.Y,
			Facing: Facing(pl.Facing),
		})
	}
	return trainers
}

func (t *Trainer) Name() string {
	return fmt.Sprintf("Trainer #%d", t.Index+1)
}

// FrontTile is the tile the trainer is looking at.
func (t *Trainer) FrontTile() (int, int) {
	dx, dy := t.Facing.Delta()
	return t.X + dx, t.Y + dy
}

// Engages reports whether stepping onto (x, y) starts a battle with t.
func (t *Trainer) Engages(x, y int) bool {
	if t.Defeated {
		return false
	}
	fx, fy := t.FrontTile()
	return fx == x && fy == y
}

// Blocks reports whether the trainer stands on (x, y).
func (t *Trainer) Blocks(x, y int) bool {
	return !t.Defeated && t.X == x && t.Y == y
}

// EnsureRoster generates the roster once and returns it on every call after.
func (t *Trainer) EnsureRoster(generate func() []*monster.Monster) []*monster.Monster {
	if !t.rosterReady {
		t.Roster = generate()
		t.rosterReady = true
	}
	return t.Roster
}

// Defeat marks the trainer beaten. It returns true only the first time, so
// the caller pays the reward exactly once.
func (t *Trainer) Defeat() bool {
	if t.Defeated {
		return false
	}
	t.Defeated = true
	return true
}
