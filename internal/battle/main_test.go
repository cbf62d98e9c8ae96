package battle

import (
	"os"
	"testing"

	"monstercollector/internal/character"
	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
)

var (
	testConfig  *config.Config
	testCatalog *monster.Catalog
)

// TestMain loads the repository config and species catalog for all tests in this package
func TestMain(m *testing.M) {
	testConfig = config.MustLoadConfig("../../config.yaml")
	testCatalog = monster.MustLoadCatalog("../../assets/monsters.yaml")
	os.Exit(m.Run())
}

func newMonster(t *testing.T, key string, level int) *monster.Monster {
	t.Helper()
	sp, err := testCatalog.Get(key)
	if err != nil {
		t.Fatalf("species %q: %v", key, err)
	}
	return monster.New(sp, level)
}

func newPlayer(t *testing.T, party ...*monster.Monster) *character.Player {
	t.Helper()
	p := character.NewPlayer(testConfig)
	for _, m := range party {
		if err := p.AddToParty(m); err != nil {
			t.Fatalf("add %s: %v", m, err)
		}
	}
	return p
}

func startBattle(t *testing.T, setup Setup) *Battle {
	t.Helper()
	if setup.Config == nil {
		setup.Config = testConfig
	}
	if setup.Catalog == nil {
		setup.Catalog = testCatalog
	}
	if setup.Rand == nil {
		setup.Rand = &dice.Scripted{}
	}
	b, err := New(setup)
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	b.Start()
	if b.State() != InProgress {
		t.Fatalf("Expected InProgress after Start, got %s", b.State())
	}
	return b
}

// checkInvariants fails the test on states the turn algorithm must never reach.
func checkInvariants(t *testing.T, b *Battle) {
	t.Helper()
	for i, c := range b.Party() {
		if c.HP < 0 || c.HP > c.MaxHP() {
			t.Fatalf("party slot %d HP %d outside [0,%d]", i, c.HP, c.MaxHP())
		}
	}
	for _, c := range b.enemies {
		if c.HP < 0 || c.HP > c.MaxHP() {
			t.Fatalf("enemy HP %d outside [0,%d]", c.HP, c.MaxHP())
		}
	}
	if b.State() == InProgress && b.Active().Fainted() && b.Enemy().Fainted() {
		t.Fatal("both active combatants fainted at once")
	}
	for _, m := range b.player.Party {
		if len(m.Moves) == 0 {
			t.Fatalf("%s has no moves", m)
		}
	}
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
