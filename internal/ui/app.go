// Package ui is the ebiten desktop frontend: a profile screen, the overworld
// grid with its sidebar, and the battle panel.
package ui

import (
	"errors"
	"log"
	"time"

	"monstercollector/internal/battle"
	"monstercollector/internal/config"
	"monstercollector/internal/game"
	"monstercollector/internal/graphics"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrExit is returned from Update to request a clean exit
var ErrExit = errors.New("exit game")

type screen int

const (
	screenTitle screen = iota
	screenPlay
)

type overlay int

const (
	overlayNone overlay = iota
	overlayShop
	overlayParty
	overlayCatalog
)

// App implements ebiten.Game on top of a game.Session.
type App struct {
	cfg     *config.Config
	res     game.Resources
	store   *game.ProfileStore
	sprites *graphics.SpriteManager
	now     func() time.Time

	screen  screen
	title   titleState
	session *game.Session

	overlay overlay
	cursor  int

	menu       battleMenu
	menuCursor int
	pending    *battle.Pending
	resolveAt  time.Time
	result     string
	notice     string
}

func NewApp(res game.Resources, store *game.ProfileStore) *App {
	a := &App{
		cfg:     res.Config,
		res:     res,
		store:   store,
		sprites: graphics.NewSpriteManager(),
		now:     time.Now,
	}
	a.refreshProfiles()
	return a
}

// Run opens the window and blocks until the player quits.
func Run(a *App) error {
	ebiten.SetWindowSize(a.cfg.GetScreenWidth(), a.cfg.GetScreenHeight())
	ebiten.SetWindowTitle(a.cfg.Display.WindowTitle)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ErrExit) {
		return err
	}
	return nil
}

func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if err := a.requestClose(); err != nil {
			return err
		}
	}
	a.tick()
	for _, cmd := range a.readInput() {
		if err := a.handle(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	switch a.screen {
	case screenTitle:
		a.drawTitle(screen)
	case screenPlay:
		a.drawOverworld(screen)
		a.drawSidebar(screen)
		if a.inBattleView() {
			a.drawBattle(screen)
		}
		a.drawOverlay(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.GetScreenWidth(), a.cfg.GetScreenHeight()
}

// requestClose exits unless an encounter is open. A battle has to be
// resolved before the window can close.
func (a *App) requestClose() error {
	if a.session == nil {
		return ErrExit
	}
	if a.session.Mode() == game.ModeInEncounter || a.pending != nil {
		a.notice = "You can't leave in the middle of a battle!"
		return nil
	}
	if err := a.session.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
	return ErrExit
}

// tick resolves a pending battle action once the outcome delay has passed.
func (a *App) tick() {
	if a.pending == nil || a.now().Before(a.resolveAt) {
		return
	}
	p := a.pending
	a.pending = nil
	a.session.Resolve(p)
	if a.session.Mode() == game.ModeExploring {
		if last := a.session.LastBattle(); last != nil {
			a.result = resultText(last.State())
		}
		a.menu, a.menuCursor = menuRoot, 0
		return
	}
	if a.session.Battle().AwaitingSwitch() {
		a.menu, a.menuCursor = menuSwitch, 0
	}
}

func (a *App) inBattleView() bool {
	return a.session != nil && (a.session.Mode() == game.ModeInEncounter || a.result != "")
}

func (a *App) handle(cmd command) error {
	switch a.screen {
	case screenTitle:
		return a.handleTitle(cmd)
	case screenPlay:
		a.handlePlay(cmd)
	}
	return nil
}

func (a *App) handlePlay(cmd command) {
	a.notice = ""
	switch {
	case a.result != "":
		if cmd.kind == cmdConfirm || cmd.kind == cmdBack {
			a.result = ""
		}
	case a.session.Mode() == game.ModeInEncounter:
		a.handleBattle(cmd)
	case a.overlay != overlayNone:
		a.handleOverlay(cmd)
	default:
		a.handleExplore(cmd)
	}
}

func (a *App) startSession(s *game.Session) {
	a.session = s
	a.screen = screenPlay
	a.overlay = overlayNone
	a.menu, a.menuCursor = menuRoot, 0
	a.pending, a.result, a.notice = nil, "", ""
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
	default:
		return ""
	}
}
