package tui

import (
	"fmt"
	"strings"

	"monstercollector/internal/battle"
	"monstercollector/internal/character"
	"monstercollector/internal/game"
)

const logLines = 6

var facingGlyph = map[character.Facing]rune{
	character.FacingNorth: '^',
	character.FacingSouth: 'v',
	character.FacingEast:  '>',
	character.FacingWest:  '<',
}

func (m Model) View() string {
	if m.Quitting {
		return "Goodbye\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "-- Monster Collector -- %s  $%d\n\n", m.Session.Name(), m.Session.Player.Money)

	switch {
	case m.result != "":
		fmt.Fprintf(&sb, "%s\n\n[enter] continue\n", m.result)
	case m.Session.Mode() == game.ModeInEncounter:
		m.viewBattle(&sb)
	case m.panel != panelNone:
		m.viewPanel(&sb)
	default:
		m.viewMap(&sb)
		m.viewParty(&sb)
		sb.WriteString("\n" + helpLine(m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Party, m.keys.Catalog, m.keys.Quit) + "\n")
	}

	if m.notice != "" {
		sb.WriteString("\n! " + m.notice + "\n")
	}
	sb.WriteString("\n")
	msgs := m.Session.Messages()
	if len(msgs) > logLines {
		msgs = msgs[len(msgs)-logLines:]
	}
	for _, line := range msgs {
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// viewMap draws the grid: @ is the player, trainers show their facing and
// turn into x once defeated.
func (m Model) viewMap(sb *strings.Builder) {
	w := m.Session.World()
	p := m.Session.Player
	trainers := make(map[[2]int]*character.Trainer, len(m.Session.Trainers))
	for _, tr := range m.Session.Trainers {
		trainers[[2]int{tr.X, tr.Y}] = tr
	}
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			switch tr := trainers[[2]int{x, y}]; {
			case x == p.X && y == p.Y:
				sb.WriteRune('@')
			case tr != nil && tr.Defeated:
				sb.WriteRune('x')
			case tr != nil:
				sb.WriteRune(facingGlyph[tr.Facing])
			default:
				sb.WriteRune(w.Letter(x, y))
			}
		}
		sb.WriteRune('\n')
	}
}

func (m Model) viewParty(sb *strings.Builder) {
	p := m.Session.Player
	fmt.Fprintf(sb, "\nParty (%d/%d):", len(p.Party), p.Capacity)
	for i, mon := range p.Party {
		fmt.Fprintf(sb, " %d.%s Lv%d", i+1, mon.Name(), mon.Level)
	}
	sb.WriteString("\nBag:")
	for _, e := range m.Session.Stock() {
		fmt.Fprintf(sb, " %s x%d", e.Item, p.ItemCount(e.Item))
	}
	sb.WriteString("\n")
}

func (m Model) viewPanel(sb *strings.Builder) {
	cursor := func(i int) string {
		if i == m.cursor {
			return ">"
		}
		return " "
	}
	switch m.panel {
	case panelShop:
		sb.WriteString("Charm Shop\n")
		for i, e := range m.Session.Stock() {
			fmt.Fprintf(sb, "%s %d. %-10s $%d  (have %d)\n", cursor(i), i+1, e.Item, e.Price, m.Session.Player.ItemCount(e.Item))
		}
		sb.WriteString("\n" + helpLine(m.keys.Slot, m.keys.Back) + "\n")
	case panelParty:
		sb.WriteString("Party\n")
		for i, mon := range m.Session.Player.Party {
			fmt.Fprintf(sb, "%s %d. %-16s Lv%-3d HP %-3d Atk %-3d Def %-3d Spd %-3d Exp %d/%d\n",
				cursor(i), i+1, mon.Name(), mon.Level, mon.MaxHP(), mon.Attack(), mon.Defense(), mon.Speed(), mon.Exp, mon.ExpToNext())
		}
		sb.WriteString("\n" + helpLine(m.keys.Up, m.keys.Down, m.keys.Lead, m.keys.Release, m.keys.Back) + "\n")
	case panelCatalog:
		sb.WriteString("Catalog\n")
		for i, sp := range m.Session.Species() {
			fmt.Fprintf(sb, "%s %-16s %-6s HP %-3d Atk %-3d Def %-3d Spd %-3d Catch %d\n",
				cursor(i), sp.Name, sp.Element, sp.BaseHP, sp.BaseAttack, sp.BaseDefense, sp.BaseSpeed, sp.CatchRate)
		}
		sb.WriteString("\n" + helpLine(m.keys.Up, m.keys.Down, m.keys.Back) + "\n")
	}
}

func (m Model) viewBattle(sb *strings.Builder) {
	b := m.Session.Battle()
	if b.IsTrainerBattle() {
		fmt.Fprintf(sb, "%s (%d left)\n", b.Trainer().Name(), b.EnemiesLeft())
	} else {
		sb.WriteString("Wild encounter\n")
	}
	fmt.Fprintf(sb, "  Foe: %s\n", combatantLine(b.Enemy()))
	fmt.Fprintf(sb, "  You: %s\n\n", combatantLine(b.Active()))

	if m.pending != nil {
		sb.WriteString("...\n")
		return
	}
	switch {
	case b.AwaitingSwitch() || m.menu == menuSwitch:
		if b.AwaitingSwitch() {
			sb.WriteString(b.Active().Name() + " fainted! Choose who to send out:\n")
		}
		for i, c := range b.Party() {
			fmt.Fprintf(sb, "  %d. %s\n", i+1, combatantLine(c))
		}
	case m.menu == menuBag:
		for i, name := range m.bagItems() {
			fmt.Fprintf(sb, "  %d. %s x%d\n", i+1, name, m.Session.Player.ItemCount(name))
		}
		sb.WriteString("  " + helpLine(m.keys.Back) + "\n")
	default:
		for i, mv := range b.Moves() {
			fmt.Fprintf(sb, "  %d. %s (pow %d, acc %.0f%%)\n", i+1, mv.Name, mv.Power, mv.Accuracy*100)
		}
		sb.WriteString("  " + helpLine(m.keys.Bag, m.keys.Switch, m.keys.Run) + "\n")
	}
}

func combatantLine(c *battle.Combatant) string {
	status := fmt.Sprintf("HP %d/%d", c.HP, c.MaxHP())
	if c.Fainted() {
		status = "fainted"
	}
	return fmt.Sprintf("%s Lv%d [%s] %s %s", c.Name(), c.Monster.Level, c.Monster.Species.Element, hpBar(c.HP, c.MaxHP()), status)
}

func hpBar(hp, maxHP int) string {
	const width = 10
	filled := 0
	if maxHP > 0 {
		filled = (hp*width + maxHP - 1) / maxHP
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
