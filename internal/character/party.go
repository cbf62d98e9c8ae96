package character

import (
	"errors"
	"fmt"

	"monstercollector/internal/config"
	"monstercollector/internal/monster"
)

var (
	ErrPartyFull   = errors.New("party is full")
	ErrLastMonster = errors.New("cannot release your last monster")
	ErrInvalidSlot = errors.New("no monster in that slot")
	ErrNoItem      = errors.New("you have none of that item")
)

// DefaultPartyCapacity is used when the player config does not set one.
const DefaultPartyCapacity = 6

// Player is the overworld avatar: grid position, party, bag and money.
// Party order is battle order; slot 0 is the lead.
type Player struct {
	X, Y     int
	Party    []*monster.Monster
	Bag      map[string]int
	Money    int
	Capacity int
}

func NewPlayer(cfg *config.Config) *Player {
	p := &Player{
		X:        cfg.Player.StartX,
		Y:        cfg.Player.StartY,
		Party:    make([]*monster.Monster, 0, cfg.Player.PartyCapacity),
		Bag:      make(map[string]int, len(cfg.Player.StartBag)),
		Money:    cfg.Player.StartMoney,
		Capacity: cfg.Player.PartyCapacity,
	}
	for name, qty := range cfg.Player.StartBag {
		p.Bag[name] = qty
	}
	return p
}

func (p *Player) capacity() int {
	if p.Capacity <= 0 {
		return DefaultPartyCapacity
	}
	return p.Capacity
}

func (p *Player) PartyFull() bool {
	return len(p.Party) >= p.capacity()
}

// AddToParty appends a monster. A full party is left untouched.
func (p *Player) AddToParty(m *monster.Monster) error {
	if p.PartyFull() {
		return ErrPartyFull
	}
	p.Party = append(p.Party, m)
	return nil
}

// Active returns the lead monster, or nil for an empty party.
func (p *Player) Active() *monster.Monster {
	if len(p.Party) == 0 {
		return nil
	}
	return p.Party[0]
}

// MakeLead moves the monster in slot to the front, keeping the others in order.
func (p *Player) MakeLead(slot int) error {
	if slot < 0 || slot >= len(p.Party) {
		return ErrInvalidSlot
	}
	if slot == 0 {
		return nil
	}
	lead := p.Party[slot]
	copy(p.Party[1:slot+1], p.Party[:slot])
	p.Party[0] = lead
	return nil
}

// Release removes a monster from the party for good.
func (p *Player) Release(slot int) (*monster.Monster, error) {
	if slot < 0 || slot >= len(p.Party) {
		return nil, ErrInvalidSlot
	}
	if len(p.Party) == 1 {
		return nil, ErrLastMonster
	}
	released := p.Party[slot]
	p.Party = append(p.Party[:slot], p.Party[slot+1:]...)
	return released, nil
}

func (p *Player) ItemCount(name string) int {
	return p.Bag[name]
}

func (p *Player) AddItem(name string, qty int) {
	if qty <= 0 {
		return
	}
	if p.Bag == nil {
		p.Bag = make(map[string]int)
	}
	p.Bag[name] += qty
}

// TakeItem removes one item from the bag.
func (p *Player) TakeItem(name string) error {
	if p.Bag[name] <= 0 {
		return fmt.Errorf("%w: %s", ErrNoItem, name)
	}
	p.Bag[name]--
	return nil
}

func (p *Player) MoveTo(x, y int) {
	p.X, p.Y = x, y
}
