package ui

import (
	"fmt"
	"log"
	"slices"

	"monstercollector/internal/character"
	"monstercollector/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var stepDeltas = map[cmdKind][2]int{
	cmdUp:    {0, -1},
	cmdDown:  {0, 1},
	cmdLeft:  {-1, 0},
	cmdRight: {1, 0},
}

func (a *App) handleExplore(cmd command) {
	if d, ok := stepDeltas[cmd.kind]; ok {
		step := a.session.Move(d[0], d[1])
		switch step.Outcome {
		case game.StepShop:
			a.overlay, a.cursor = overlayShop, 0
		case game.StepWildEncounter, game.StepTrainerBattle:
			a.menu, a.menuCursor = menuRoot, 0
		}
		return
	}
	switch cmd.kind {
	case cmdParty:
		a.overlay, a.cursor = overlayParty, 0
	case cmdCatalog:
		a.overlay, a.cursor = overlayCatalog, 0
	case cmdBack:
		a.returnToTitle()
	}
}

func (a *App) returnToTitle() {
	if err := a.session.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
	a.session = nil
	a.screen = screenTitle
	a.overlay = overlayNone
	a.refreshProfiles()
}

func (a *App) handleOverlay(cmd command) {
	if cmd.kind == cmdBack {
		if a.overlay == overlayShop {
			a.session.CloseShop()
		}
		a.overlay, a.cursor = overlayNone, 0
		return
	}

	switch a.overlay {
	case overlayShop:
		stock := a.session.Stock()
		switch cmd.kind {
		case cmdUp, cmdDown:
			a.cursor = moveCursor(a.cursor, len(stock), cmd.kind)
		case cmdDigit:
			if cmd.n <= len(stock) {
				a.cursor = cmd.n - 1
				a.buy(stock[a.cursor].Item)
			}
		case cmdConfirm:
			if a.cursor < len(stock) {
				a.buy(stock[a.cursor].Item)
			}
		}
	case overlayParty:
		party := a.session.Player.Party
		switch cmd.kind {
		case cmdUp, cmdDown:
			a.cursor = moveCursor(a.cursor, len(party), cmd.kind)
		case cmdLead, cmdConfirm:
			if err := a.session.MakeLead(a.cursor); err != nil {
				a.notice = game.Narrate(err)
				return
			}
			a.cursor = 0
		case cmdRelease:
			if err := a.session.Release(a.cursor); err != nil {
				a.notice = game.Narrate(err)
				return
			}
			a.cursor = min(a.cursor, len(a.session.Player.Party)-1)
		}
	case overlayCatalog:
		a.cursor = moveCursor(a.cursor, len(a.session.Species()), cmd.kind)
	}
}

func (a *App) buy(item string) {
	if err := a.session.Buy(item); err != nil {
		a.notice = game.Narrate(err)
	}
}

func (a *App) mapWidth() int {
	return a.cfg.GetScreenWidth() - a.cfg.Display.SidebarWidth
}

func (a *App) drawOverworld(screen *ebiten.Image) {
	world := a.session.World()
	tiles := world.Tiles()
	ts := a.cfg.GetTileSize()

	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			data := world.At(x, y)
			clr := rgb(tiles.GetColor(data))
			if data.Sprite != "" {
				op := &ebiten.DrawImageOptions{}
				img := a.sprites.Sprite(data.Sprite, clr)
				op.GeoM.Scale(float64(ts)/float64(img.Bounds().Dx()), float64(ts)/float64(img.Bounds().Dy()))
				op.GeoM.Translate(float64(x*ts), float64(y*ts))
				screen.DrawImage(img, op)
				continue
			}
			drawFilledRect(screen, x*ts, y*ts, ts, ts, clr)
		}
	}

	for _, tr := range a.session.Trainers {
		a.drawTrainer(screen, tr, ts)
	}

	p := a.session.Player
	drawFilledRect(screen, p.X*ts+4, p.Y*ts+4, ts-8, ts-8, colorPlayer)
	drawRectBorder(screen, p.X*ts+4, p.Y*ts+4, ts-8, ts-8, 1, colorText)

	a.drawMessages(screen, world.Height()*ts)
}

func (a *App) drawTrainer(screen *ebiten.Image, tr *character.Trainer, ts int) {
	clr := colorTrainer
	if tr.Defeated {
		clr = colorDefeated
	}
	drawFilledRect(screen, tr.X*ts+6, tr.Y*ts+6, ts-12, ts-12, clr)
	// Facing marker.
	dx, dy := tr.Facing.Delta()
	cx, cy := tr.X*ts+ts/2+dx*(ts/2-6), tr.Y*ts+ts/2+dy*(ts/2-6)
	drawFilledRect(screen, cx-2, cy-2, 4, 4, colorText)
}

func (a *App) drawMessages(screen *ebiten.Image, top int) {
	h := a.cfg.GetScreenHeight() - top
	drawFilledRect(screen, 0, top, a.mapWidth(), h, colorPanel)
	maxLines := (h - 12) / lineHeight
	lines := tailLines(a.session.Messages(), (a.mapWidth()-16)/7, maxLines)
	for i, line := range lines {
		drawText(screen, line, 8, top+6+i*lineHeight, colorText)
	}
}

func (a *App) drawSidebar(screen *ebiten.Image) {
	x := a.mapWidth()
	w := a.cfg.Display.SidebarWidth
	drawFilledRect(screen, x, 0, w, a.cfg.GetScreenHeight(), colorSidebar)

	p := a.session.Player
	y := 10
	ebitenutil.DebugPrintAt(screen, a.session.Name(), x+10, y)
	y += 20
	drawText(screen, fmt.Sprintf("Money: $%d", p.Money), x+10, y, colorText)
	y += 24

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Party (%d/%d)", len(p.Party), p.Capacity), x+10, y)
	y += 20
	for i, m := range p.Party {
		label := fmt.Sprintf("%d. %s Lv%d", i+1, m.Name(), m.Level)
		clr := colorText
		if i == 0 {
			clr = colorLead
		}
		drawText(screen, label, x+14, y, clr)
		y += lineHeight
		drawText(screen, fmt.Sprintf("   %s  Exp %d/%d", m.Species.Element, m.Exp, m.ExpToNext()), x+14, y, colorDim)
		y += lineHeight
	}
	y += 8

	ebitenutil.DebugPrintAt(screen, "Bag", x+10, y)
	y += 20
	for _, name := range sortedKeys(p.Bag) {
		drawText(screen, fmt.Sprintf("%s x%d", name, p.Bag[name]), x+14, y, colorText)
		y += lineHeight
	}

	help := []string{"Arrows/WASD: move", "P: party  K: catalog", "Esc: save & title"}
	for i, line := range help {
		drawText(screen, line, x+10, a.cfg.GetScreenHeight()-16-(len(help)-i)*lineHeight, colorDim)
	}
	if a.notice != "" {
		for i, line := range wrapText(a.notice, (w-20)/7) {
			drawText(screen, line, x+10, a.cfg.GetScreenHeight()-80-lineHeight*3+i*lineHeight, colorWarning)
		}
	}
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	if a.overlay == overlayNone || a.inBattleView() {
		return
	}
	w, h := a.mapWidth(), a.cfg.GetScreenHeight()
	switch a.overlay {
	case overlayShop:
		stock := a.session.Stock()
		px, py := drawPanel(screen, w, h, 360, 120+len(stock)*24)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Charm Shop  (you have $%d)", a.session.Player.Money), px+16, py+14)
		opts := make([]string, len(stock))
		for i, e := range stock {
			opts[i] = fmt.Sprintf("%d. %-12s $%d", i+1, e.Item, e.Price)
		}
		drawMenu(screen, px+16, py+48, 328, opts, a.cursor)
		drawText(screen, "Enter: buy  Esc: leave", px+16, py+72+len(stock)*24, colorDim)
	case overlayParty:
		party := a.session.Player.Party
		px, py := drawPanel(screen, w, h, 420, 120+len(party)*24)
		ebitenutil.DebugPrintAt(screen, "Party", px+16, py+14)
		opts := make([]string, len(party))
		for i, m := range party {
			opts[i] = fmt.Sprintf("%d. %s Lv%d  HP %d  Atk %d  Def %d  Spd %d", i+1, m.Name(), m.Level, m.MaxHP(), m.Attack(), m.Defense(), m.Speed())
		}
		drawMenu(screen, px+16, py+48, 388, opts, a.cursor)
		drawText(screen, "L/Enter: make lead  X: release  Esc: close", px+16, py+72+len(party)*24, colorDim)
	case overlayCatalog:
		a.drawCatalog(screen, w, h)
	}
}

func (a *App) drawCatalog(screen *ebiten.Image, w, h int) {
	species := a.session.Species()
	px, py := drawPanel(screen, w, h, 520, 380)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Catalog (%d species)", len(species)), px+16, py+14)
	if len(species) == 0 {
		return
	}
	names := make([]string, len(species))
	for i, sp := range species {
		names[i] = sp.Name
	}
	drawMenu(screen, px+16, py+48, 180, names, a.cursor)

	sp := species[a.cursor]
	icon := a.sprites.Icon(sp)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(64/float64(icon.Bounds().Dx()), 64/float64(icon.Bounds().Dy()))
	op.GeoM.Translate(float64(px+220), float64(py+48))
	screen.DrawImage(icon, op)

	lines := []string{
		fmt.Sprintf("%s (%s)", sp.Name, sp.Element),
		fmt.Sprintf("HP %d  Atk %d  Def %d  Spd %d", sp.BaseHP, sp.BaseAttack, sp.BaseDefense, sp.BaseSpeed),
		fmt.Sprintf("Catch rate %d", sp.CatchRate),
	}
	if sp.EvolvesTo != "" {
		lines = append(lines, fmt.Sprintf("Evolves at Lv %d", sp.EvolutionThreshold()))
	}
	for _, mv := range sp.Learnset {
		lines = append(lines, fmt.Sprintf("- %s  pow %d  acc %.0f%%", mv.Name, mv.Power, mv.Accuracy*100))
	}
	for i, line := range lines {
		drawText(screen, line, px+220, py+124+i*lineHeight, colorText)
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k, v := range m {
		if v > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
