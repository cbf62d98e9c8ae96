package tui

import (
	"os"
	"strings"
	"testing"

	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/game"
	"monstercollector/internal/monster"
	"monstercollector/internal/world"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	testConfig  *config.Config
	testCatalog *monster.Catalog
	testMap     *world.Map
)

// TestMain loads the repository config, catalog and map for all tests in this package
func TestMain(m *testing.M) {
	testConfig = config.MustLoadConfig("../../config.yaml")
	testCatalog = monster.MustLoadCatalog("../../assets/monsters.yaml")
	var err error
	testMap, err = world.FromConfig(testConfig)
	if err != nil {
		panic("Failed to build test map: " + err.Error())
	}
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, src dice.Source) Model {
	t.Helper()
	s := game.NewSession(game.Resources{Config: testConfig, Catalog: testCatalog, Map: testMap, Rand: src})
	sp, err := testCatalog.Get("slime_girl")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Player.AddToParty(monster.New(sp, 3)); err != nil {
		t.Fatal(err)
	}
	return NewModel(s)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestWildBattleOverTerminal(t *testing.T) {
	m := newTestModel(t, dice.NewScripted(0.05))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Session.Mode() != game.ModeInEncounter {
		t.Fatal("Expected a wild encounter")
	}
	if !strings.Contains(m.View(), "Wild encounter") {
		t.Errorf("battle view missing header:\n%s", m.View())
	}

	m, cmd := send(t, m, runes("q"))
	if m.Quitting || cmd != nil {
		t.Fatal("quit must be refused during an encounter")
	}
	if m.notice == "" {
		t.Error("Expected a notice for the refused quit")
	}

	m, cmd = send(t, m, runes("r"))
	if m.pending == nil || cmd == nil {
		t.Fatal("Expected the run to be pending with a resolve tick")
	}
	pending := m.pending
	if m, _ = send(t, m, resolveMsg{pending: nil}); m.pending != pending {
		t.Fatal("a stale resolve must be ignored")
	}
	m, _ = send(t, m, resolveMsg{pending: pending})
	if m.Session.Mode() != game.ModeExploring || m.result != "Got away safely." {
		t.Fatalf("Expected to have fled, mode %s result %q", m.Session.Mode(), m.result)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.result != "" {
		t.Error("enter should dismiss the result")
	}
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.Quitting || cmd == nil {
		t.Fatal("Expected to quit while exploring")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a tea.QuitMsg")
	}
}

func TestTrainerCaptureNarrated(t *testing.T) {
	m := newTestModel(t, &dice.Scripted{})
	m.Session.Player.MoveTo(3, 1)
	m, _ = send(t, m, runes("d"))
	b := m.Session.Battle()
	if b == nil || !b.IsTrainerBattle() {
		t.Fatal("Expected a trainer battle")
	}
	if !strings.Contains(m.View(), "Trainer #1") {
		t.Errorf("battle view should name the trainer:\n%s", m.View())
	}

	orbs := m.Session.Player.ItemCount("Charm Orb")
	m, cmd := send(t, m, runes("b"), runes("1"))
	if cmd != nil || m.pending != nil {
		t.Fatal("a rejected capture must not schedule an outcome")
	}
	if m.notice != "You can't capture a trainer's monster." {
		t.Errorf("unexpected notice %q", m.notice)
	}
	if m.Session.Player.ItemCount("Charm Orb") != orbs {
		t.Error("the orb should be refunded")
	}
}

func TestShopAndPartyPanels(t *testing.T) {
	m := newTestModel(t, &dice.Scripted{})
	m.Session.Player.MoveTo(21, 7)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.panel != panelShop {
		t.Fatal("Expected the shop panel")
	}
	m, _ = send(t, m, runes("2"))
	if m.Session.Player.Money != 160 {
		t.Errorf("Expected $160, got $%d", m.Session.Player.Money)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.panel != panelNone || m.Session.ShopOpen() {
		t.Fatal("esc should close the shop")
	}

	second := m.Session.GiveStarter()
	m, _ = send(t, m, runes("p"), tea.KeyMsg{Type: tea.KeyDown}, runes("l"))
	if m.Session.Player.Active() != second {
		t.Fatal("second monster should lead")
	}
	m, _ = send(t, m, runes("x"), runes("x"))
	if len(m.Session.Player.Party) != 1 || !strings.Contains(m.notice, "last monster") {
		t.Errorf("Expected one monster and a last monster notice, got %d and %q", len(m.Session.Player.Party), m.notice)
	}
}

func TestMapView(t *testing.T) {
	m := newTestModel(t, &dice.Scripted{})
	m.Session.Trainers[1].Defeated = true
	lines := strings.Split(m.View(), "\n")
	grid := lines[2 : 2+testMap.Height()]
	if grid[1][1] != '@' {
		t.Errorf("Expected player at (1,1), got row %q", grid[1])
	}
	if grid[1][5] != '<' {
		t.Errorf("Expected west-facing trainer at (5,1), got row %q", grid[1])
	}
	if grid[3][14] != 'x' {
		t.Errorf("Expected defeated trainer at (14,3), got row %q", grid[3])
	}
}

func TestHPBar(t *testing.T) {
	cases := []struct {
		hp, max int
		want    string
	}{
		{0, 20, "[----------]"},
		{1, 20, "[#---------]"},
		{20, 20, "[##########]"},
	}
	for _, c := range cases {
		if got := hpBar(c.hp, c.max); got != c.want {
			t.Errorf("hpBar(%d,%d) = %s, want %s", c.hp, c.max, got, c.want)
		}
	}
}
