package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type cmdKind int

const (
	cmdUp cmdKind = iota
	cmdDown
	cmdLeft
	cmdRight
	cmdConfirm
	cmdBack
	cmdDigit
	cmdParty
	cmdCatalog
	cmdLead
	cmdRelease
	cmdRune
	cmdErase
)

// command is one discrete input event. n carries the digit for cmdDigit and
// the character for cmdRune.
type command struct {
	kind cmdKind
	n    int
}

var directionKeys = []struct {
	keys []ebiten.Key
	kind cmdKind
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, cmdUp},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, cmdDown},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, cmdLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, cmdRight},
}

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// readInput polls this frame's key presses. While a profile name is being
// typed, characters are delivered as runes instead of commands.
func (a *App) readInput() []command {
	var cmds []command
	if a.screen == screenTitle && a.title.naming {
		for _, r := range ebiten.AppendInputChars(nil) {
			cmds = append(cmds, command{kind: cmdRune, n: int(r)})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
			cmds = append(cmds, command{kind: cmdErase})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			cmds = append(cmds, command{kind: cmdConfirm})
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			cmds = append(cmds, command{kind: cmdBack})
		}
		return cmds
	}

	for _, dir := range directionKeys {
		for _, k := range dir.keys {
			if inpututil.IsKeyJustPressed(k) {
				cmds = append(cmds, command{kind: dir.kind})
				break
			}
		}
	}
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			cmds = append(cmds, command{kind: cmdDigit, n: i + 1})
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		cmds = append(cmds, command{kind: cmdConfirm})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cmds = append(cmds, command{kind: cmdBack})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		cmds = append(cmds, command{kind: cmdParty})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		cmds = append(cmds, command{kind: cmdCatalog})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		cmds = append(cmds, command{kind: cmdLead})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		cmds = append(cmds, command{kind: cmdRelease})
	}
	return cmds
}

// moveCursor steps a list cursor with wraparound.
func moveCursor(cursor, n int, kind cmdKind) int {
	if n == 0 {
		return 0
	}
	switch kind {
	case cmdUp:
		return (cursor - 1 + n) % n
	case cmdDown:
		return (cursor + 1) % n
	}
	return cursor
}
