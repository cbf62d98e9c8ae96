package character

import (
	"errors"
	"testing"

	"monstercollector/internal/monster"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(testConfig)

	if p.X != testConfig.Player.StartX || p.Y != testConfig.Player.StartY {
		t.Errorf("Expected start position (%d,%d), got (%d,%d)", testConfig.Player.StartX, testConfig.Player.StartY, p.X, p.Y)
	}
	if p.Money != testConfig.Player.StartMoney {
		t.Errorf("Expected starting money %d, got %d", testConfig.Player.StartMoney, p.Money)
	}
	for name, qty := range testConfig.Player.StartBag {
		if p.ItemCount(name) != qty {
			t.Errorf("Expected %d %s, got %d", qty, name, p.ItemCount(name))
		}
	}
	p.Bag["Charm Orb"] = 99
	if testConfig.Player.StartBag["Charm Orb"] == 99 {
		t.Error("player bag must not alias the config map")
	}
	if p.Active() != nil {
		t.Error("new player should have an empty party")
	}
}

func TestPartyCapacity(t *testing.T) {
	p := NewPlayer(testConfig)
	for i := 0; i < 6; i++ {
		if err := p.AddToParty(newMonster(t, "mouse_girl", i+1)); err != nil {
			t.Fatalf("add member %d: %v", i, err)
		}
	}
	if !p.PartyFull() {
		t.Fatal("party of 6 should be full")
	}

	before := append([]*monster.Monster(nil), p.Party...)
	err := p.AddToParty(newMonster(t, "harpy", 5))
	if !errors.Is(err, ErrPartyFull) {
		t.Fatalf("Expected ErrPartyFull, got %v", err)
	}
	if len(p.Party) != 6 {
		t.Fatalf("Expected party size 6, got %d", len(p.Party))
	}
	for i := range before {
		if p.Party[i] != before[i] {
			t.Errorf("slot %d changed after rejected add", i)
		}
	}
}

func TestPartyManagement(t *testing.T) {
	setup := func(t *testing.T) (*Player, []*monster.Monster) {
		p := NewPlayer(testConfig)
		ms := []*monster.Monster{
			newMonster(t, "slime_girl", 3),
			newMonster(t, "harpy", 4),
			newMonster(t, "minotaur", 5),
		}
		for _, m := range ms {
			if err := p.AddToParty(m); err != nil {
				t.Fatal(err)
			}
		}
		return p, ms
	}

	t.Run("Make Lead", func(t *testing.T) {
		p, ms := setup(t)
		if err := p.MakeLead(2); err != nil {
			t.Fatal(err)
		}
		want := []*monster.Monster{ms[2], ms[0], ms[1]}
		for i := range want {
			if p.Party[i] != want[i] {
				t.Errorf("slot %d: got %s want %s", i, p.Party[i], want[i])
			}
		}
		if p.Active() != ms[2] {
			t.Error("lead should be the minotaur")
		}
		if err := p.MakeLead(3); !errors.Is(err, ErrInvalidSlot) {
			t.Errorf("Expected ErrInvalidSlot, got %v", err)
		}
	})

	t.Run("Release", func(t *testing.T) {
		p, ms := setup(t)
		released, err := p.Release(1)
		if err != nil {
			t.Fatal(err)
		}
		if released != ms[1] || len(p.Party) != 2 || p.Party[1] != ms[2] {
			t.Errorf("unexpected party after release: %v", p.Party)
		}
		if _, err := p.Release(0); err != nil {
			t.Fatal(err)
		}
		if _, err := p.Release(0); !errors.Is(err, ErrLastMonster) {
			t.Errorf("Expected ErrLastMonster, got %v", err)
		}
		if len(p.Party) != 1 {
			t.Errorf("last monster must stay, party size %d", len(p.Party))
		}
	})
}

func TestBag(t *testing.T) {
	p := &Player{}
	p.AddItem("Potion", 2)
	p.AddItem("Potion", 0)
	if p.ItemCount("Potion") != 2 {
		t.Fatalf("Expected 2 potions, got %d", p.ItemCount("Potion"))
	}
	for i := 0; i < 2; i++ {
		if err := p.TakeItem("Potion"); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.TakeItem("Potion"); !errors.Is(err, ErrNoItem) {
		t.Errorf("Expected ErrNoItem, got %v", err)
	}
	if p.ItemCount("Potion") != 0 {
		t.Errorf("count went negative: %d", p.ItemCount("Potion"))
	}
}
