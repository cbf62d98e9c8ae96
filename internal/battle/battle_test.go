package battle

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"monstercollector/internal/character"
	"monstercollector/internal/dice"
	"monstercollector/internal/monster"
)

func TestNewRejectsBadSetup(t *testing.T) {
	wild := newMonster(t, "minotaur", 2)
	tests := []struct {
		name  string
		setup Setup
	}{
		{"empty party", Setup{Config: testConfig, Catalog: testCatalog, Player: newPlayer(t), Wild: wild}},
		{"no opponent", Setup{Config: testConfig, Catalog: testCatalog, Player: newPlayer(t, newMonster(t, "harpy", 3))}},
		{"empty trainer", Setup{Config: testConfig, Catalog: testCatalog, Player: newPlayer(t, newMonster(t, "harpy", 3)), Trainer: &character.Trainer{}}},
		{"missing config", Setup{Catalog: testCatalog, Player: newPlayer(t, newMonster(t, "harpy", 3)), Wild: wild}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.setup); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestActionsBeforeStartAndAfterEnd(t *testing.T) {
	p := newPlayer(t, newMonster(t, "slime_girl", 3))
	b, err := New(Setup{Config: testConfig, Catalog: testCatalog, Rand: dice.NewScripted(0.99), Player: p, Wild: newMonster(t, "minotaur", 2)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Act(UseMove(0)); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Expected ErrNotStarted, got %v", err)
	}
	events := b.Start()
	if len(events) != 1 || events[0].Kind != EventWildAppeared {
		t.Fatalf("Expected wild-appeared, got %v", Texts(events))
	}
	if _, err := b.Act(Run()); err != nil {
		t.Fatal(err)
	}
	if b.State() != Fled {
		t.Fatalf("Expected Fled, got %s", b.State())
	}
	if _, err := b.Act(UseMove(0)); !errors.Is(err, ErrBattleOver) {
		t.Errorf("Expected ErrBattleOver, got %v", err)
	}
}

// Lone level-3 Slime Girl against a wild monster on 1 HP.
func TestScenarioWinAgainstWeakenedWild(t *testing.T) {
	slime := newMonster(t, "slime_girl", 3)
	wild := newMonster(t, "minotaur", 2)
	p := newPlayer(t, slime)
	b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: p, Wild: wild})
	b.Enemy().HP = 1

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, b)
	if b.State() != Won {
		t.Fatalf("Expected Won, got %s", b.State())
	}
	if countKind(events, EventMoveUsed) != 1 {
		t.Errorf("fainted enemy must not act, events: %v", Texts(events))
	}
	if !Has(events, EventFainted) || !Has(events, EventExpGained) {
		t.Errorf("missing fainted/exp events: %v", Texts(events))
	}
	if slime.Exp != testConfig.ExpReward(2) || slime.Exp != 18 {
		t.Errorf("Expected 18 exp, got %d", slime.Exp)
	}
	if len(p.Party) != 1 {
		t.Errorf("defeated wild monster must not join the party")
	}
}

// Active monster faints with a conscious teammate in reserve.
func TestScenarioForcedSwitch(t *testing.T) {
	slime := newMonster(t, "slime_girl", 3)
	reserve := newMonster(t, "harpy", 4)
	p := newPlayer(t, slime, reserve)
	b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: p, Wild: newMonster(t, "harpy", 10)})
	b.Active().HP = 1

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, b)
	if countKind(events, EventMoveUsed) != 1 || events[0].Side != SideEnemy {
		t.Fatalf("faster enemy should strike once and the fainted slime should not act: %v", Texts(events))
	}
	if b.State() != InProgress || !b.AwaitingSwitch() {
		t.Fatalf("Expected forced switch, state %s awaiting %v", b.State(), b.AwaitingSwitch())
	}
	if !Has(events, EventSwitchRequired) {
		t.Errorf("missing switch-required event: %v", Texts(events))
	}

	for _, a := range []Action{UseMove(0), Run(), UseItem("Potion")} {
		if _, err := b.Act(a); !errors.Is(err, ErrSwitchRequired) {
			t.Errorf("action %+v: expected ErrSwitchRequired, got %v", a, err)
		}
	}
	if _, err := b.Act(SwitchTo(0)); !errors.Is(err, ErrInvalidSwitch) {
		t.Errorf("switching to the fainted monster: expected ErrInvalidSwitch, got %v", err)
	}

	events, err = b.Act(SwitchTo(1))
	if err != nil {
		t.Fatal(err)
	}
	if countKind(events, EventMoveUsed) != 0 {
		t.Errorf("forced switch must not grant a free attack: %v", Texts(events))
	}
	if b.Active().Monster != reserve || b.Active().HP != b.Active().MaxHP() {
		t.Errorf("reserve should be out at full HP, got %s with %d", b.Active().Name(), b.Active().HP)
	}
	if b.AwaitingSwitch() || b.State() != InProgress {
		t.Errorf("battle should continue normally after the switch")
	}
}

// Active monster faints with nobody left.
func TestScenarioBlackout(t *testing.T) {
	slime := newMonster(t, "slime_girl", 3)
	p := newPlayer(t, slime)
	p.MoveTo(10, 5)
	blackouts := 0
	b := startBattle(t, Setup{
		Rand:       dice.NewScripted(0, 0),
		Player:     p,
		Wild:       newMonster(t, "harpy", 10),
		OnBlackout: func() { blackouts++ },
	})
	b.Active().HP = 1

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if b.State() != Lost {
		t.Fatalf("Expected Lost, got %s", b.State())
	}
	if !Has(events, EventBlackedOut) {
		t.Errorf("missing blacked-out event: %v", Texts(events))
	}
	if p.X != testConfig.Player.RecoveryX || p.Y != testConfig.Player.RecoveryY {
		t.Errorf("Expected recovery point (%d,%d), got (%d,%d)", testConfig.Player.RecoveryX, testConfig.Player.RecoveryY, p.X, p.Y)
	}
	if blackouts != 1 {
		t.Errorf("Expected blackout callback once, got %d", blackouts)
	}
	for _, c := range b.Party() {
		if c.HP != c.MaxHP() {
			t.Errorf("%s not restored: %d/%d", c.Name(), c.HP, c.MaxHP())
		}
	}
	if len(p.Party) != 1 {
		t.Errorf("blackout must keep the party")
	}
}

// Trainer with two monsters loses the first.
func TestScenarioTrainerSendsOutNext(t *testing.T) {
	slime := newMonster(t, "slime_girl", 3)
	p := newPlayer(t, slime)
	money := p.Money
	trainer := &character.Trainer{Index: 0, X: 5, Y: 1, Facing: character.FacingWest, Roster: []*monster.Monster{
		newMonster(t, "minotaur", 2),
		newMonster(t, "minotaur", 2),
	}}
	defeated := 0
	b := startBattle(t, Setup{
		Rand:              dice.NewScripted(0, 0, 0, 0),
		Player:            p,
		Trainer:           trainer,
		OnTrainerDefeated: func(*character.Trainer) { defeated++ },
	})
	b.Enemy().HP = 1
	hpBefore := b.Active().HP

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, b)
	if b.State() != InProgress {
		t.Fatalf("Expected InProgress, got %s", b.State())
	}
	if !Has(events, EventTrainerSendsOutNext) {
		t.Fatalf("missing trainer-sends-out-next: %v", Texts(events))
	}
	if countKind(events, EventMoveUsed) != 1 {
		t.Errorf("no free attack either way on the send-out: %v", Texts(events))
	}
	if b.Enemy().Monster != trainer.Roster[1] || b.Enemy().HP != b.Enemy().MaxHP() {
		t.Errorf("second roster monster should be out at full HP")
	}
	if b.Active().HP != hpBefore {
		t.Errorf("player HP changed during the send-out: %d -> %d", hpBefore, b.Active().HP)
	}
	if b.EnemiesLeft() != 1 {
		t.Errorf("Expected 1 enemy left, got %d", b.EnemiesLeft())
	}

	b.Enemy().HP = 1
	events, err = b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if b.State() != Won || !Has(events, EventTrainerDefeated) {
		t.Fatalf("Expected trainer defeat, state %s events %v", b.State(), Texts(events))
	}
	if !trainer.Defeated || defeated != 1 {
		t.Errorf("trainer flag %v callback %d", trainer.Defeated, defeated)
	}
	if p.Money != money+testConfig.Player.TrainerReward {
		t.Errorf("Expected money %d, got %d", money+testConfig.Player.TrainerReward, p.Money)
	}
}

func TestCaptureRules(t *testing.T) {
	t.Run("Trainer Monster Is Refused And Refunded", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		orbs := p.ItemCount("Charm Orb")
		trainer := &character.Trainer{Roster: []*monster.Monster{newMonster(t, "mouse_girl", 4)}}
		b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0, 0, 0), Player: p, Trainer: trainer})

		_, err := b.Act(UseItem("Charm Orb"))
		if !errors.Is(err, ErrTrainerCapture) {
			t.Fatalf("Expected ErrTrainerCapture, got %v", err)
		}
		if p.ItemCount("Charm Orb") != orbs {
			t.Errorf("orb not refunded: %d -> %d", orbs, p.ItemCount("Charm Orb"))
		}
		if b.Active().HP != b.Active().MaxHP() || b.State() != InProgress || len(p.Party) != 1 {
			t.Error("refused capture must not change the battle")
		}
	})

	t.Run("Success", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		orbs := p.ItemCount("Charm Orb")
		wild := newMonster(t, "minotaur", 2)
		b := startBattle(t, Setup{Rand: dice.NewScripted(0), Player: p, Wild: wild})

		events, err := b.Act(UseItem("Charm Orb"))
		if err != nil {
			t.Fatal(err)
		}
		if b.State() != Captured || !Has(events, EventCaptured) {
			t.Fatalf("Expected capture, state %s events %v", b.State(), Texts(events))
		}
		if len(p.Party) != 2 || p.Party[1] != wild {
			t.Errorf("captured monster should join the party")
		}
		if p.ItemCount("Charm Orb") != orbs-1 {
			t.Errorf("orb not consumed")
		}
	})

	t.Run("Full Party Still Ends As Captured", func(t *testing.T) {
		var party []*monster.Monster
		for i := 0; i < 6; i++ {
			party = append(party, newMonster(t, "mouse_girl", 3))
		}
		p := newPlayer(t, party...)
		b := startBattle(t, Setup{Rand: dice.NewScripted(0), Player: p, Wild: newMonster(t, "minotaur", 2)})

		events, err := b.Act(UseItem("Charm Orb"))
		if err != nil {
			t.Fatal(err)
		}
		if b.State() != Captured || !Has(events, EventPartyFull) {
			t.Fatalf("Expected captured with party-full, state %s events %v", b.State(), Texts(events))
		}
		if len(p.Party) != 6 {
			t.Errorf("party grew past capacity: %d", len(p.Party))
		}
	})

	t.Run("Broke Free Gives Enemy A Turn", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		b := startBattle(t, Setup{Rand: dice.NewScripted(0.99, 0, 0), Player: p, Wild: newMonster(t, "minotaur", 2)})

		events, err := b.Act(UseItem("Charm Orb"))
		if err != nil {
			t.Fatal(err)
		}
		if b.State() != InProgress || !Has(events, EventBrokeFree) {
			t.Fatalf("Expected broke-free, state %s events %v", b.State(), Texts(events))
		}
		if countKind(events, EventMoveUsed) != 1 || b.Active().HP >= b.Active().MaxHP() {
			t.Errorf("enemy should have hit once: %v", Texts(events))
		}
	})
}

func TestHealingItems(t *testing.T) {
	t.Run("No Effect At Full HP", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		potions := p.ItemCount("Potion")
		b := startBattle(t, Setup{Player: p, Wild: newMonster(t, "minotaur", 2)})

		if _, err := b.Act(UseItem("Potion")); !errors.Is(err, ErrItemNoEffect) {
			t.Fatalf("Expected ErrItemNoEffect, got %v", err)
		}
		if p.ItemCount("Potion") != potions {
			t.Error("potion consumed without effect")
		}
		if _, err := b.Act(Run()); err != nil {
			t.Errorf("turn should still be available: %v", err)
		}
	})

	t.Run("Heals Then Enemy Acts", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		potions := p.ItemCount("Potion")
		b := startBattle(t, Setup{Rand: dice.NewScripted(0.99), Player: p, Wild: newMonster(t, "minotaur", 2)})
		b.Active().HP = 5

		events, err := b.Act(UseItem("Potion"))
		if err != nil {
			t.Fatal(err)
		}
		if b.Active().HP != 25 {
			t.Errorf("Expected 25 HP after a 20 HP potion, got %d", b.Active().HP)
		}
		if countKind(events, EventItemUsed) != 1 || countKind(events, EventMoveUsed) != 1 {
			t.Errorf("Expected item-used then an enemy move: %v", Texts(events))
		}
		if p.ItemCount("Potion") != potions-1 {
			t.Error("potion not consumed")
		}
	})

	t.Run("Empty And Unknown Items", func(t *testing.T) {
		p := newPlayer(t, newMonster(t, "slime_girl", 3))
		p.Bag["Potion"] = 0
		b := startBattle(t, Setup{Player: p, Wild: newMonster(t, "minotaur", 2)})
		b.Active().HP = 5

		if _, err := b.Act(UseItem("Potion")); !errors.Is(err, ErrNoItem) {
			t.Errorf("Expected ErrNoItem, got %v", err)
		}
		if _, err := b.Act(UseItem("Rare Candy")); !errors.Is(err, ErrUnknownItem) {
			t.Errorf("Expected ErrUnknownItem, got %v", err)
		}
		if b.Active().HP != 5 || p.ItemCount("Potion") != 0 {
			t.Error("rejected item changed state")
		}
	})
}

func TestFlee(t *testing.T) {
	tests := []struct {
		name     string
		enemy    *monster.Monster
		rolls    []float64
		expected State
	}{
		{"faster player always escapes", newMonster(t, "minotaur", 2), []float64{0.99}, Fled},
		{"slower player escapes on low roll", newMonster(t, "harpy", 10), []float64{0.1}, Fled},
		{"slower player fails on high roll", newMonster(t, "harpy", 10), []float64{0.99, 0.99}, InProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlayer(t, newMonster(t, "slime_girl", 3))
			b := startBattle(t, Setup{Rand: dice.NewScripted(tt.rolls...), Player: p, Wild: tt.enemy})
			events, err := b.Act(Run())
			if err != nil {
				t.Fatal(err)
			}
			if b.State() != tt.expected {
				t.Fatalf("Expected %s, got %s", tt.expected, b.State())
			}
			if tt.expected == Fled && !Has(events, EventFled) {
				t.Errorf("missing fled event: %v", Texts(events))
			}
			if tt.expected == InProgress && (!Has(events, EventFleeFailed) || countKind(events, EventMoveUsed) != 1) {
				t.Errorf("failed flee should give the enemy a move: %v", Texts(events))
			}
		})
	}
}

func TestVoluntarySwitchGivesFreeAttack(t *testing.T) {
	slime := newMonster(t, "slime_girl", 3)
	harpy := newMonster(t, "harpy", 4)
	p := newPlayer(t, slime, harpy)
	b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: p, Wild: newMonster(t, "minotaur", 2)})

	events, err := b.Act(SwitchTo(1))
	if err != nil {
		t.Fatal(err)
	}
	if b.Active().Monster != harpy || b.ActiveSlot() != 1 {
		t.Fatalf("harpy should be active")
	}
	if countKind(events, EventMoveUsed) != 1 {
		t.Fatalf("Expected one free enemy move: %v", Texts(events))
	}
	// Minotaur Lv2 Tackle on Harpy Lv4: floor(7.2 * 1.5 * 0.85) = 9
	if got := b.Active().MaxHP() - b.Active().HP; got != 9 {
		t.Errorf("Expected 9 damage on the incoming monster, got %d", got)
	}
	if b.Party()[0].HP != b.Party()[0].MaxHP() {
		t.Error("the monster switched out should not be hit")
	}
	if _, err := b.Act(SwitchTo(1)); !errors.Is(err, ErrInvalidSwitch) {
		t.Errorf("switching to the active slot: expected ErrInvalidSwitch, got %v", err)
	}
	if _, err := b.Act(SwitchTo(5)); !errors.Is(err, ErrInvalidSwitch) {
		t.Errorf("switching to an empty slot: expected ErrInvalidSwitch, got %v", err)
	}
}

func TestTurnOrder(t *testing.T) {
	t.Run("Speed Tie Favors Player", func(t *testing.T) {
		slime := newMonster(t, "slime_girl", 3)
		mirror := monster.New(&monster.Species{Key: "mirror", Name: "Mirror", Element: monster.ElementNormal, BaseHP: 10, BaseSpeed: 7}, 3)
		if slime.Speed() != mirror.Speed() {
			t.Fatalf("test setup: speeds %d vs %d", slime.Speed(), mirror.Speed())
		}
		b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: newPlayer(t, slime), Wild: mirror})
		b.Enemy().HP = 1

		events, err := b.Act(UseMove(0))
		if err != nil {
			t.Fatal(err)
		}
		if events[0].Kind != EventMoveUsed || events[0].Side != SidePlayer {
			t.Fatalf("player should act first on a tie: %v", Texts(events))
		}
		if b.State() != Won {
			t.Errorf("Expected Won, got %s", b.State())
		}
	})

	t.Run("Invalid Slots", func(t *testing.T) {
		b := startBattle(t, Setup{Player: newPlayer(t, newMonster(t, "slime_girl", 3)), Wild: newMonster(t, "minotaur", 2)})
		for _, slot := range []int{-1, 2, 7} {
			if _, err := b.Act(UseMove(slot)); !errors.Is(err, ErrInvalidMove) {
				t.Errorf("slot %d: expected ErrInvalidMove, got %v", slot, err)
			}
		}
	})
}

func TestApplyAndResolveArePhased(t *testing.T) {
	p := newPlayer(t, newMonster(t, "slime_girl", 3))
	b := startBattle(t, Setup{Rand: dice.NewScripted(0.99, 0.99), Player: p, Wild: newMonster(t, "minotaur", 2)})

	pending, err := b.Apply(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(pending.Events) != 2 {
		t.Fatalf("Expected two missed moves, got %v", Texts(pending.Events))
	}
	if _, err := b.Apply(UseMove(1)); !errors.Is(err, ErrOutcomePending) {
		t.Fatalf("Expected ErrOutcomePending, got %v", err)
	}
	if out := b.Resolve(pending); len(out) != 0 {
		t.Errorf("nothing fainted, got %v", Texts(out))
	}
	if out := b.Resolve(pending); out != nil {
		t.Errorf("resolving twice should do nothing")
	}
	if _, err := b.Apply(Run()); err != nil {
		t.Errorf("next action should be accepted: %v", err)
	}
}

func TestEvolutionAfterVictory(t *testing.T) {
	slime := newMonster(t, "slime_girl", 9)
	slime.Exp = slime.ExpToNext() - 1
	p := newPlayer(t, slime)
	b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: p, Wild: newMonster(t, "minotaur", 2)})
	b.Enemy().HP = 1
	b.Active().HP = 3

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if !Has(events, EventLeveledUp) || !Has(events, EventEvolved) {
		t.Fatalf("Expected level-up and evolution: %v", Texts(events))
	}
	if slime.Level != 10 || slime.Species.Key != "slime_queen" {
		t.Errorf("Expected Slime Queen Lv10, got %s", slime)
	}
	if b.Active().HP != b.Active().MaxHP() {
		t.Errorf("evolution should restore HP to the new max, got %d/%d", b.Active().HP, b.Active().MaxHP())
	}
}

func TestEvolutionToUnknownSpeciesIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	slime := newMonster(t, "slime_girl", 9)
	broken := *slime.Species
	broken.EvolvesTo = "ghost_queen"
	slime.Species = &broken
	slime.Exp = slime.ExpToNext() - 1
	p := newPlayer(t, slime)
	b := startBattle(t, Setup{Rand: dice.NewScripted(0, 0), Player: p, Wild: newMonster(t, "minotaur", 2)})
	b.Enemy().HP = 1
	b.Active().HP = 3

	events, err := b.Act(UseMove(0))
	if err != nil {
		t.Fatal(err)
	}
	if Has(events, EventEvolved) || slime.Species.Key != "slime_girl" {
		t.Fatalf("Expected no evolution, got %v", Texts(events))
	}
	if b.State() != Won {
		t.Errorf("Expected the battle to be won, got %s", b.State())
	}
	if !strings.Contains(buf.String(), "Warning:") || !strings.Contains(buf.String(), "ghost_queen") {
		t.Errorf("Expected a logged warning, got %q", buf.String())
	}
}

func TestRandomBattlesKeepInvariants(t *testing.T) {
	actions := []func(b *Battle) Action{
		func(b *Battle) Action { return UseMove(dice.Global.Intn(len(b.Moves()))) },
		func(b *Battle) Action { return UseMove(0) },
		func(b *Battle) Action { return SwitchTo(dice.Global.Intn(3)) },
		func(b *Battle) Action { return UseItem("Potion") },
		func(b *Battle) Action { return UseItem("Charm Orb") },
		func(b *Battle) Action { return Run() },
	}

	for i := 0; i < 200; i++ {
		p := newPlayer(t,
			newMonster(t, "slime_girl", 3),
			newMonster(t, "harpy", 4),
			newMonster(t, "mouse_girl", 3),
		)
		setup := Setup{Rand: dice.Global, Player: p}
		if i%2 == 0 {
			setup.Wild = monster.New(testCatalog.Random(dice.Global), dice.Between(dice.Global, 2, 6))
		} else {
			setup.Trainer = &character.Trainer{Roster: []*monster.Monster{
				monster.New(testCatalog.Random(dice.Global), 5),
				monster.New(testCatalog.Random(dice.Global), 6),
			}}
		}
		b := startBattle(t, setup)

		for step := 0; step < 300 && !b.State().Over(); step++ {
			var a Action
			if b.AwaitingSwitch() {
				for slot := range b.Party() {
					if b.CanSwitchTo(slot) {
						a = SwitchTo(slot)
						break
					}
				}
			} else {
				a = actions[dice.Global.Intn(len(actions))](b)
			}
			_, _ = b.Act(a)
			checkInvariants(t, b)
		}
	}
}
