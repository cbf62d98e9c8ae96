package game

import (
	"fmt"

	"monstercollector/internal/battle"
	"monstercollector/internal/character"
	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
	"monstercollector/internal/world"
)

// StepOutcome says what a movement attempt led to.
type StepOutcome int

const (
	StepIgnored StepOutcome = iota
	StepBlocked
	StepMoved
	StepHealed
	StepShop
	StepWildEncounter
	StepTrainerBattle
)

// Step is the result of Move. Events holds the battle opening, if any.
type Step struct {
	Outcome StepOutcome
	Events  []battle.Event
	Message string
}

// Move walks the player one tile. Input is ignored during an encounter.
// A trainer's line of sight is checked before the wild encounter roll.
func (s *Session) Move(dx, dy int) Step {
	if s.mode == ModeInEncounter {
		return Step{Outcome: StepIgnored}
	}
	s.shopOpen = false

	nx, ny := s.Player.X+dx, s.Player.Y+dy
	if !s.world.IsWalkable(nx, ny) || s.TrainerAt(nx, ny) != nil {
		return Step{Outcome: StepBlocked}
	}
	s.Player.MoveTo(nx, ny)

	if len(s.Player.Party) > 0 {
		for _, tr := range s.Trainers {
			if tr.Engages(nx, ny) {
				return s.startTrainerBattle(tr)
			}
		}
	}

	tile := s.world.At(nx, ny)
	switch tile.Event {
	case world.EventHeal:
		msg := "You rest at the hut. Your monsters are fully refreshed."
		s.addMessage(msg)
		s.autosave()
		return Step{Outcome: StepHealed, Message: msg}
	case world.EventShop:
		s.shopOpen = true
		msg := "Welcome to the charm shop!"
		s.addMessage(msg)
		return Step{Outcome: StepShop, Message: msg}
	}

	if tile.EncounterRate > 0 && len(s.Player.Party) > 0 && s.rnd.Float64() < tile.EncounterRate {
		return s.startWildBattle(s.RollWild())
	}
	return Step{Outcome: StepMoved}
}

// RollWild builds a wild monster: uniform species, level from the wild band.
func (s *Session) RollWild() *monster.Monster {
	e := s.cfg.Encounters
	sp := s.catalog.Random(s.rnd)
	return monster.New(sp, dice.Between(s.rnd, e.WildLevelMin, e.WildLevelMax))
}

// RollTrainerRoster builds a trainer roster from the configured size and
// level bands.
func (s *Session) RollTrainerRoster() []*monster.Monster {
	e := s.cfg.Encounters
	n := dice.Between(s.rnd, e.TrainerRosterMin, e.TrainerRosterMax)
	roster := make([]*monster.Monster, 0, n)
	for i := 0; i < n; i++ {
		sp := s.catalog.Random(s.rnd)
		roster = append(roster, monster.New(sp, dice.Between(s.rnd, e.TrainerLevelMin, e.TrainerLevelMax)))
	}
	return roster
}

func (s *Session) startWildBattle(wild *monster.Monster) Step {
	events, err := s.openBattle(battle.Setup{Wild: wild})
	if err != nil {
		return s.battleFailed(err)
	}
	return Step{Outcome: StepWildEncounter, Events: events}
}

func (s *Session) startTrainerBattle(tr *character.Trainer) Step {
	tr.EnsureRoster(s.RollTrainerRoster)
	events, err := s.openBattle(battle.Setup{
		Trainer: tr,
		OnTrainerDefeated: func(t *character.Trainer) {
			s.addMessage(fmt.Sprintf("%s steps aside.", t.Name()))
		},
	})
	if err != nil {
		return s.battleFailed(err)
	}
	return Step{Outcome: StepTrainerBattle, Events: events}
}

func (s *Session) battleFailed(err error) Step {
	msg := fmt.Sprintf("The encounter could not start: %v", err)
	s.addMessage(msg)
	return Step{Outcome: StepMoved, Message: msg}
}

func (s *Session) openBattle(setup battle.Setup) ([]battle.Event, error) {
	setup.Config = s.cfg
	setup.Catalog = s.catalog
	setup.Rand = s.rnd
	setup.Player = s.Player
	setup.OnBlackout = func() {
		s.addMessage("You wake up back at the hut.")
	}
	b, err := battle.New(setup)
	if err != nil {
		return nil, err
	}
	s.battle = b
	s.mode = ModeInEncounter
	events := b.Start()
	s.addEvents(events)
	return events, nil
}

// Apply forwards a battle action. Frontends may pause before Resolve.
// Rejections are narrated into the message log.
func (s *Session) Apply(a battle.Action) (*battle.Pending, error) {
	if s.battle == nil {
		return nil, battle.ErrNotStarted
	}
	p, err := s.battle.Apply(a)
	if err != nil {
		s.addMessage(Narrate(err))
		return nil, err
	}
	s.addEvents(p.Events)
	return p, nil
}

// Resolve evaluates an applied action and closes the encounter when it ends.
func (s *Session) Resolve(p *battle.Pending) []battle.Event {
	if s.battle == nil {
		return nil
	}
	events := s.battle.Resolve(p)
	s.addEvents(events)
	if s.battle.State().Over() {
		s.endEncounter()
	}
	return events
}

// Act applies and resolves a battle action back to back.
func (s *Session) Act(a battle.Action) ([]battle.Event, error) {
	p, err := s.Apply(a)
	if err != nil {
		return nil, err
	}
	return append(p.Events, s.Resolve(p)...), nil
}

// LastBattle returns the encounter that ended most recently so frontends
// can show its result.
func (s *Session) LastBattle() *battle.Battle {
	return s.last
}

func (s *Session) endEncounter() {
	s.last = s.battle
	s.battle = nil
	s.mode = ModeExploring
	s.autosave()
}
