package ui

import (
	"fmt"

	"monstercollector/internal/battle"
	"monstercollector/internal/game"
	"monstercollector/internal/graphics"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type battleMenu int

const (
	menuRoot battleMenu = iota
	menuFight
	menuBag
	menuSwitch
)

var rootOptions = []string{"Fight", "Bag", "Switch", "Run"}

// bagItems lists the battle items the player holds, in shop order first.
func (a *App) bagItems() []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range a.cfg.Shop.Stock {
		if a.session.Player.ItemCount(e.Item) > 0 && !seen[e.Item] {
			names = append(names, e.Item)
			seen[e.Item] = true
		}
	}
	for _, name := range sortedKeys(a.session.Player.Bag) {
		if _, ok := a.cfg.GetItem(name); ok && !seen[name] {
			names = append(names, name)
		}
	}
	return names
}

func (a *App) menuOptions() []string {
	b := a.session.Battle()
	switch a.menu {
	case menuFight:
		moves := b.Moves()
		opts := make([]string, len(moves))
		for i, mv := range moves {
			opts[i] = fmt.Sprintf("%d. %s (pow %d, acc %.0f%%)", i+1, mv.Name, mv.Power, mv.Accuracy*100)
		}
		return opts
	case menuBag:
		items := a.bagItems()
		opts := make([]string, len(items))
		for i, name := range items {
			opts[i] = fmt.Sprintf("%d. %s x%d", i+1, name, a.session.Player.ItemCount(name))
		}
		return opts
	case menuSwitch:
		party := b.Party()
		opts := make([]string, len(party))
		for i, c := range party {
			status := fmt.Sprintf("HP %d/%d", c.HP, c.MaxHP())
			if c.Fainted() {
				status = "fainted"
			} else if i == b.ActiveSlot() {
				status += ", in battle"
			}
			opts[i] = fmt.Sprintf("%d. %s Lv%d (%s)", i+1, c.Name(), c.Monster.Level, status)
		}
		return opts
	default:
		return rootOptions
	}
}

func (a *App) handleBattle(cmd command) {
	if a.pending != nil {
		return
	}
	b := a.session.Battle()
	if b.AwaitingSwitch() {
		a.menu = menuSwitch
	}

	n := len(a.menuOptions())
	switch cmd.kind {
	case cmdUp, cmdDown:
		a.menuCursor = moveCursor(a.menuCursor, n, cmd.kind)
	case cmdBack:
		if !b.AwaitingSwitch() {
			a.menu, a.menuCursor = menuRoot, 0
		}
	case cmdDigit:
		if cmd.n <= n {
			a.menuCursor = cmd.n - 1
			a.choose()
		}
	case cmdConfirm:
		if a.menuCursor < n {
			a.choose()
		}
	}
}

func (a *App) choose() {
	i := a.menuCursor
	switch a.menu {
	case menuRoot:
		switch i {
		case 0:
			a.menu = menuFight
		case 1:
			a.menu = menuBag
		case 2:
			a.menu = menuSwitch
		case 3:
			a.act(battle.Run())
			return
		}
		a.menuCursor = 0
	case menuFight:
		a.act(battle.UseMove(i))
	case menuBag:
		a.act(battle.UseItem(a.bagItems()[i]))
	case menuSwitch:
		a.act(battle.SwitchTo(i))
	}
}

// act applies an action and schedules its outcome after the configured
// delay so the updated HP is on screen before the result.
func (a *App) act(action battle.Action) {
	p, err := a.session.Apply(action)
	if err != nil {
		a.notice = game.Narrate(err)
		return
	}
	a.pending = p
	a.resolveAt = a.now().Add(a.session.OutcomeDelay())
	a.menu, a.menuCursor = menuRoot, 0
}

func (a *App) drawBattle(screen *ebiten.Image) {
	w, h := a.mapWidth(), a.cfg.GetScreenHeight()
	panelW, panelH := w-40, h-40
	px, py := drawPanel(screen, w, h, panelW, panelH)

	if a.result != "" {
		ebitenutil.DebugPrintAt(screen, a.result, px+(panelW-textWidth(a.result))/2, py+panelH/2-20)
		drawText(screen, "Press Enter to continue", px+(panelW-textWidth("Press Enter to continue"))/2, py+panelH/2+4, colorDim)
		a.drawBattleLog(screen, px+16, py+panelH-6*lineHeight-12, panelW-32, 6)
		return
	}

	b := a.session.Battle()
	if b == nil {
		return
	}
	enemy, active := b.Enemy(), b.Active()

	header := "Wild encounter"
	if b.IsTrainerBattle() {
		header = fmt.Sprintf("%s  (%d left)", b.Trainer().Name(), b.EnemiesLeft())
	}
	ebitenutil.DebugPrintAt(screen, header, px+16, py+12)

	a.drawCombatant(screen, enemy, px+panelW-240, py+40)
	a.drawCombatant(screen, active, px+24, py+150)

	menuY := py + 270
	title := "What will " + active.Name() + " do?"
	switch {
	case a.pending != nil:
		title = "..."
	case b.AwaitingSwitch():
		title = active.Name() + " fainted! Choose who to send out."
	}
	ebitenutil.DebugPrintAt(screen, title, px+16, menuY)
	if a.pending == nil {
		drawMenu(screen, px+16, menuY+28, 360, a.menuOptions(), a.menuCursor)
	}
	if a.notice != "" {
		drawText(screen, a.notice, px+400, menuY+28, colorWarning)
	}

	a.drawBattleLog(screen, px+16, py+panelH-6*lineHeight-12, panelW-32, 6)
}

func (a *App) drawCombatant(screen *ebiten.Image, c *battle.Combatant, x, y int) {
	icon := a.sprites.Icon(c.Monster.Species)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(80/float64(icon.Bounds().Dx()), 80/float64(icon.Bounds().Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(icon, op)

	drawColoredTextSegments(screen, x+96, y+4, []coloredTextSegment{
		{c.Name(), colorText},
		{fmt.Sprintf("  Lv%d  ", c.Monster.Level), colorDim},
		{string(c.Monster.Species.Element), graphics.ElementColor(c.Monster.Species.Element)},
	})
	drawHPBar(screen, x+96, y+26, 120, c.HP, c.MaxHP())
	drawText(screen, fmt.Sprintf("HP %d/%d", c.HP, c.MaxHP()), x+96, y+38, colorText)
}

func (a *App) drawBattleLog(screen *ebiten.Image, x, y, w, n int) {
	lines := tailLines(a.session.Messages(), w/7, n)
	for i, line := range lines {
		drawText(screen, line, x, y+i*lineHeight, colorText)
	}
}
