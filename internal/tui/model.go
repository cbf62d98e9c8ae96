// Package tui is the terminal frontend. It drives the same game.Session as
// the desktop window and is served over SSH by cmd/server.
package tui

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"monstercollector/internal/battle"
	"monstercollector/internal/game"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type panel int

const (
	panelNone panel = iota
	panelShop
	panelParty
	panelCatalog
)

type battleMenu int

const (
	menuMoves battleMenu = iota
	menuBag
	menuSwitch
)

// resolveMsg arrives once the outcome delay after an applied action is over.
type resolveMsg struct {
	pending *battle.Pending
}

type Model struct {
	Session  *game.Session
	Quitting bool

	keys    keyMap
	width   int
	height  int
	panel   panel
	cursor  int
	menu    battleMenu
	pending *battle.Pending
	result  string
	notice  string
}

func NewModel(s *game.Session) Model {
	return Model{Session: s, keys: defaultKeyMap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case resolveMsg:
		return m.resolve(msg.pending), nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		m.notice = ""
		switch {
		case m.result != "":
			if key.Matches(msg, m.keys.Confirm, m.keys.Back) {
				m.result = ""
			}
			return m, nil
		case m.Session.Mode() == game.ModeInEncounter:
			return m.updateBattle(msg)
		case m.panel != panelNone:
			return m.updatePanel(msg), nil
		default:
			return m.updateExplore(msg), nil
		}
	}
	return m, nil
}

// quit saves and exits. It is refused while an encounter is open.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.Session.Mode() == game.ModeInEncounter || m.pending != nil {
		m.notice = "You can't leave in the middle of a battle!"
		return m, nil
	}
	if err := m.Session.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
	m.Quitting = true
	return m, tea.Quit
}

func (m Model) updateExplore(msg tea.KeyMsg) Model {
	var dx, dy int
	switch {
	case key.Matches(msg, m.keys.Up):
		dy = -1
	case key.Matches(msg, m.keys.Down):
		dy = 1
	case key.Matches(msg, m.keys.Left):
		dx = -1
	case key.Matches(msg, m.keys.Right):
		dx = 1
	case key.Matches(msg, m.keys.Party):
		m.panel, m.cursor = panelParty, 0
		return m
	case key.Matches(msg, m.keys.Catalog):
		m.panel, m.cursor = panelCatalog, 0
		return m
	default:
		return m
	}

	step := m.Session.Move(dx, dy)
	switch step.Outcome {
	case game.StepShop:
		m.panel, m.cursor = panelShop, 0
	case game.StepWildEncounter, game.StepTrainerBattle:
		m.menu = menuMoves
	}
	return m
}

func (m Model) updatePanel(msg tea.KeyMsg) Model {
	if key.Matches(msg, m.keys.Back) {
		if m.panel == panelShop {
			m.Session.CloseShop()
		}
		m.panel, m.cursor = panelNone, 0
		return m
	}

	n := m.panelLen()
	switch {
	case key.Matches(msg, m.keys.Up):
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
		return m
	case key.Matches(msg, m.keys.Down):
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
		return m
	}

	switch m.panel {
	case panelShop:
		stock := m.Session.Stock()
		if slot, ok := m.slot(msg); ok && slot < len(stock) {
			if err := m.Session.Buy(stock[slot].Item); err != nil {
				m.notice = game.Narrate(err)
			}
		}
	case panelParty:
		switch {
		case key.Matches(msg, m.keys.Lead, m.keys.Confirm):
			if err := m.Session.MakeLead(m.cursor); err != nil {
				m.notice = game.Narrate(err)
				break
			}
			m.cursor = 0
		case key.Matches(msg, m.keys.Release):
			if err := m.Session.Release(m.cursor); err != nil {
				m.notice = game.Narrate(err)
				break
			}
			m.cursor = min(m.cursor, len(m.Session.Player.Party)-1)
		}
	}
	return m
}

func (m Model) panelLen() int {
	switch m.panel {
	case panelShop:
		return len(m.Session.Stock())
	case panelParty:
		return len(m.Session.Player.Party)
	case panelCatalog:
		return len(m.Session.Species())
	}
	return 0
}

// slot returns the zero-based index for a digit key.
func (m Model) slot(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, m.keys.Slot) {
		return 0, false
	}
	n, err := strconv.Atoi(msg.String())
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

func (m Model) updateBattle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		return m, nil
	}
	b := m.Session.Battle()
	if b.AwaitingSwitch() {
		m.menu = menuSwitch
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if !b.AwaitingSwitch() {
			m.menu = menuMoves
		}
		return m, nil
	case key.Matches(msg, m.keys.Bag):
		if !b.AwaitingSwitch() {
			m.menu = menuBag
		}
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		m.menu = menuSwitch
		return m, nil
	case key.Matches(msg, m.keys.Run):
		if b.AwaitingSwitch() {
			return m, nil
		}
		return m.act(battle.Run())
	}

	slot, ok := m.slot(msg)
	if !ok {
		return m, nil
	}
	switch m.menu {
	case menuBag:
		items := m.bagItems()
		if slot >= len(items) {
			return m, nil
		}
		return m.act(battle.UseItem(items[slot]))
	case menuSwitch:
		return m.act(battle.SwitchTo(slot))
	default:
		return m.act(battle.UseMove(slot))
	}
}

// act applies an action now and resolves it after the outcome delay.
func (m Model) act(a battle.Action) (tea.Model, tea.Cmd) {
	p, err := m.Session.Apply(a)
	if err != nil {
		m.notice = game.Narrate(err)
		return m, nil
	}
	m.pending = p
	m.menu = menuMoves
	return m, tea.Tick(m.Session.OutcomeDelay(), func(time.Time) tea.Msg {
		return resolveMsg{pending: p}
	})
}

func (m Model) resolve(p *battle.Pending) Model {
	if p == nil || p != m.pending {
		return m
	}
	m.pending = nil
	m.Session.Resolve(p)
	if m.Session.Mode() == game.ModeExploring {
		if last := m.Session.LastBattle(); last != nil {
			m.result = resultText(last.State())
		}
		m.menu = menuMoves
		return m
	}
	if m.Session.Battle().AwaitingSwitch() {
		m.menu = menuSwitch
	}
	return m
}

// bagItems lists held items the battle bag understands, in shop order.
func (m Model) bagItems() []string {
	var names []string
	for _, e := range m.Session.Stock() {
		if m.Session.Player.ItemCount(e.Item) > 0 {
			names = append(names, e.Item)
		}
	}
	return names
}

func resultText(s battle.State) string {
	switch s {
	case battle.Won:
		return "You won the battle!"
	case battle.Lost:
		return "You blacked out..."
	case battle.Fled:
		return "Got away safely."
	case battle.Captured:
		return "Capture complete!"
	}
	return fmt.Sprintf("Battle ended: %s", s)
}
