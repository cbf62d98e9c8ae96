// Package game holds the overworld session shared by the desktop and
// terminal frontends: movement, encounters, tile events, the shop and
// profile persistence.
package game

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"monstercollector/internal/battle"
	"monstercollector/internal/character"
	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
	"monstercollector/internal/world"
)

var ErrInEncounter = errors.New("not available during an encounter")

// Mode gates overworld input. Only one encounter can be open at a time.
type Mode int

const (
	ModeExploring Mode = iota
	ModeInEncounter
)

func (m Mode) String() string {
	if m == ModeInEncounter {
		return "in encounter"
	}
	return "exploring"
}

const maxMessages = 50

// Resources are the read-only inputs every session shares.
type Resources struct {
	Config  *config.Config
	Catalog *monster.Catalog
	Map     *world.Map
	Rand    dice.Source
}

// Session is one player's game: the overworld state plus the encounter in
// progress, if any.
type Session struct {
	cfg     *config.Config
	catalog *monster.Catalog
	world   *world.Map
	rnd     dice.Source

	Player   *character.Player
	Trainers []*character.Trainer

	name     string
	store    *ProfileStore
	mode     Mode
	battle   *battle.Battle
	last     *battle.Battle
	shopOpen bool
	messages []string
}

func NewSession(res Resources) *Session {
	rnd := res.Rand
	if rnd == nil {
		rnd = dice.Global
	}
	return &Session{
		cfg:      res.Config,
		catalog:  res.Catalog,
		world:    res.Map,
		rnd:      rnd,
		Player:   character.NewPlayer(res.Config),
		Trainers: character.NewTrainers(res.Config.Trainers),
	}
}

// NewProfileSession creates a profile with a fresh player and a random
// starter. It fails with ErrProfileExists if the name is taken.
func NewProfileSession(res Resources, store *ProfileStore, name string) (*Session, error) {
	s := NewSession(res)
	s.name = name
	s.store = store
	starter := s.GiveStarter()
	if err := store.Create(&Profile{Name: name, Data: s.Snapshot()}); err != nil {
		return nil, err
	}
	s.addMessage(fmt.Sprintf("Welcome, %s! Your starter is %s.", name, starter))
	return s, nil
}

// LoadProfileSession restores a saved profile.
func LoadProfileSession(res Resources, store *ProfileStore, name string) (*Session, error) {
	p, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	s := NewSession(res)
	s.name = p.Name
	s.store = store
	if err := s.Restore(p.Data); err != nil {
		return nil, fmt.Errorf("profile %s: %w", name, err)
	}
	s.addMessage(fmt.Sprintf("Welcome back, %s!", s.name))
	return s, nil
}

func (s *Session) Name() string              { return s.name }
func (s *Session) Mode() Mode                { return s.mode }
func (s *Session) Config() *config.Config    { return s.cfg }
func (s *Session) Catalog() *monster.Catalog { return s.catalog }
func (s *Session) World() *world.Map         { return s.world }

// Battle returns the open encounter, or nil while exploring.
func (s *Session) Battle() *battle.Battle {
	return s.battle
}

// Species lists the catalog sorted by key for browsing.
func (s *Session) Species() []*monster.Species {
	return s.catalog.All()
}

// Messages returns the recent narration, oldest first.
func (s *Session) Messages() []string {
	return s.messages
}

func (s *Session) addMessage(msg string) {
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

func (s *Session) addEvents(events []battle.Event) {
	for _, text := range battle.Texts(events) {
		s.addMessage(text)
	}
}

// OutcomeDelay is the pause frontends insert between applying an action and
// resolving it.
func (s *Session) OutcomeDelay() time.Duration {
	return time.Duration(s.cfg.Battle.OutcomeDelayMs) * time.Millisecond
}

// GiveStarter adds one random species at the starter level.
func (s *Session) GiveStarter() *monster.Monster {
	starter := monster.New(s.catalog.Random(s.rnd), s.cfg.Player.StarterLevel)
	if err := s.Player.AddToParty(starter); err != nil {
		log.Printf("Warning: could not add starter: %v", err)
	}
	return starter
}

// TrainerAt returns the undefeated trainer standing on (x, y).
func (s *Session) TrainerAt(x, y int) *character.Trainer {
	for _, tr := range s.Trainers {
		if tr.Blocks(x, y) {
			return tr
		}
	}
	return nil
}

// MakeLead moves a party member to the front.
func (s *Session) MakeLead(slot int) error {
	if s.mode == ModeInEncounter {
		return ErrInEncounter
	}
	if err := s.Player.MakeLead(slot); err != nil {
		return err
	}
	s.addMessage(fmt.Sprintf("%s now leads the party.", s.Player.Active().Name()))
	return nil
}

// Release lets a party member go. The last monster cannot be released.
func (s *Session) Release(slot int) error {
	if s.mode == ModeInEncounter {
		return ErrInEncounter
	}
	released, err := s.Player.Release(slot)
	if err != nil {
		return err
	}
	s.addMessage(fmt.Sprintf("You released %s.", released.Name()))
	return nil
}

// Snapshot captures the persistent state for a profile.
func (s *Session) Snapshot() ProfileData {
	data := ProfileData{
		X:     s.Player.X,
		Y:     s.Player.Y,
		Money: s.Player.Money,
		Bag:   make(map[string]int, len(s.Player.Bag)),
	}
	for name, qty := range s.Player.Bag {
		data.Bag[name] = qty
	}
	for _, m := range s.Player.Party {
		data.Party = append(data.Party, MonsterSave{
			Species: m.Species.Key,
			Level:   m.Level,
			Exp:     m.Exp,
			Moves:   slices.Clone(m.Moves),
		})
	}
	for _, tr := range s.Trainers {
		if tr.Defeated {
			data.DefeatedTrainers = append(data.DefeatedTrainers, tr.Index)
		}
	}
	return data
}

// Restore applies saved state. Unknown species fail the restore.
func (s *Session) Restore(data ProfileData) error {
	p := character.NewPlayer(s.cfg)
	p.MoveTo(data.X, data.Y)
	p.Money = data.Money
	p.Bag = make(map[string]int, len(data.Bag))
	for name, qty := range data.Bag {
		p.Bag[name] = qty
	}
	for _, ms := range data.Party {
		sp, err := s.catalog.Get(ms.Species)
		if err != nil {
			return err
		}
		m := monster.New(sp, ms.Level)
		m.Exp = max(0, ms.Exp)
		if len(ms.Moves) > 0 {
			m.Moves = slices.Clone(ms.Moves)
		}
		if err := p.AddToParty(m); err != nil {
			return err
		}
	}
	if len(p.Party) == 0 {
		return errors.New("saved party is empty")
	}
	if !s.world.IsWalkable(p.X, p.Y) {
		p.MoveTo(s.cfg.Player.RecoveryX, s.cfg.Player.RecoveryY)
	}

	for _, idx := range data.DefeatedTrainers {
		if idx >= 0 && idx < len(s.Trainers) {
			s.Trainers[idx].Defeated = true
		}
	}
	s.Player = p
	return nil
}

// Save writes the session to its profile. Sessions without a store are
// not persisted.
func (s *Session) Save() error {
	if s.store == nil || s.name == "" {
		return nil
	}
	if err := s.store.Save(&Profile{Name: s.name, Data: s.Snapshot()}); err != nil {
		return fmt.Errorf("save profile %s: %w", s.name, err)
	}
	return nil
}

func (s *Session) autosave() {
	if err := s.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
}
