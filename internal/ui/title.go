package ui

import (
	"fmt"
	"log"
	"unicode"

	"monstercollector/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const maxProfileName = 16

type titleState struct {
	profiles []string
	cursor   int
	naming   bool
	name     string
	err      string
}

// options lists the saved profiles followed by the create entry.
func (t *titleState) options() []string {
	opts := make([]string, 0, len(t.profiles)+2)
	opts = append(opts, t.profiles...)
	return append(opts, "[New profile]", "[Quit]")
}

func (a *App) refreshProfiles() {
	names, err := a.store.List()
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	a.title.profiles = names
	if a.title.cursor >= len(a.title.options()) {
		a.title.cursor = 0
	}
}

func (a *App) handleTitle(cmd command) error {
	t := &a.title
	if t.naming {
		switch cmd.kind {
		case cmdRune:
			r := rune(cmd.n)
			if len(t.name) < maxProfileName && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-') {
				t.name += string(r)
			}
		case cmdErase:
			if t.name != "" {
				t.name = t.name[:len(t.name)-1]
			}
		case cmdBack:
			t.naming, t.name, t.err = false, "", ""
		case cmdConfirm:
			a.createProfile()
		}
		return nil
	}

	opts := t.options()
	switch cmd.kind {
	case cmdUp, cmdDown:
		t.cursor = moveCursor(t.cursor, len(opts), cmd.kind)
	case cmdBack:
		return ErrExit
	case cmdConfirm:
		switch {
		case t.cursor < len(t.profiles):
			a.loadProfile(t.profiles[t.cursor])
		case t.cursor == len(t.profiles):
			t.naming, t.name, t.err = true, "", ""
		default:
			return ErrExit
		}
	}
	return nil
}

func (a *App) createProfile() {
	s, err := game.NewProfileSession(a.res, a.store, a.title.name)
	if err != nil {
		a.title.err = game.Narrate(err)
		return
	}
	a.title.naming, a.title.name, a.title.err = false, "", ""
	a.refreshProfiles()
	a.startSession(s)
}

func (a *App) loadProfile(name string) {
	s, err := game.LoadProfileSession(a.res, a.store, name)
	if err != nil {
		log.Printf("Warning: %v", err)
		a.title.err = game.Narrate(err)
		return
	}
	a.title.err = ""
	a.startSession(s)
}

func (a *App) drawTitle(screen *ebiten.Image) {
	w, h := a.cfg.GetScreenWidth(), a.cfg.GetScreenHeight()
	t := &a.title
	opts := t.options()
	panelW, panelH := 420, 140+len(opts)*24
	px, py := drawPanel(screen, w, h, panelW, panelH)

	ebitenutil.DebugPrintAt(screen, a.cfg.Display.WindowTitle, px+16, py+14)
	if t.naming {
		ebitenutil.DebugPrintAt(screen, "Name your profile (Enter to start, Esc to cancel):", px+16, py+48)
		drawFilledRect(screen, px+16, py+72, panelW-32, 22, colorSelection)
		ebitenutil.DebugPrintAt(screen, t.name+"_", px+24, py+76)
	} else {
		ebitenutil.DebugPrintAt(screen, "Choose a profile:", px+16, py+48)
		drawMenu(screen, px+16, py+76, panelW-32, opts, t.cursor)
	}
	if t.err != "" {
		drawText(screen, t.err, px+16, py+panelH-44, colorWarning)
	}
	drawText(screen, fmt.Sprintf("Saves: %s", a.store.Dir()), px+16, py+panelH-24, colorDim)
}
