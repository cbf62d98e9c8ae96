package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	colorBackdrop  = color.RGBA{0, 0, 0, 128}
	colorPanel     = color.RGBA{20, 20, 40, 230}
	colorBorder    = color.RGBA{100, 100, 160, 255}
	colorSelection = color.RGBA{60, 120, 180, 200}
	colorText      = color.RGBA{230, 230, 230, 255}
	colorDim       = color.RGBA{140, 140, 150, 255}
	colorWarning   = color.RGBA{230, 170, 60, 255}
	colorHPGood    = color.RGBA{80, 200, 90, 255}
	colorHPLow     = color.RGBA{220, 70, 60, 255}
	colorHPTrack   = color.RGBA{70, 70, 70, 255}
	colorSidebar   = color.RGBA{28, 28, 36, 255}
	colorPlayer    = color.RGBA{240, 200, 60, 255}
	colorLead      = color.RGBA{240, 200, 60, 255}
	colorTrainer   = color.RGBA{200, 60, 60, 255}
	colorDefeated  = color.RGBA{110, 110, 110, 255}
)

const lineHeight = 16

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	drawColoredTextSegments(screen, x, y, []coloredTextSegment{{s, clr}})
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

func drawFilledRect(dst *ebiten.Image, x, y, w, h int, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// drawRectBorder draws a rectangle border of given thickness and color
func drawRectBorder(dst *ebiten.Image, x, y, w, h, thickness int, clr color.Color) {
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y-thickness), float32(w+2*thickness), float32(thickness), clr, false)
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y+h), float32(w+2*thickness), float32(thickness), clr, false)
	vector.DrawFilledRect(dst, float32(x-thickness), float32(y), float32(thickness), float32(h), clr, false)
	vector.DrawFilledRect(dst, float32(x+w), float32(y), float32(thickness), float32(h), clr, false)
}

// drawPanel draws the standard dialog frame and returns its top-left corner.
func drawPanel(screen *ebiten.Image, screenW, screenH, w, h int) (int, int) {
	drawFilledRect(screen, 0, 0, screenW, screenH, colorBackdrop)
	px := (screenW - w) / 2
	py := (screenH - h) / 2
	drawFilledRect(screen, px, py, w, h, colorPanel)
	drawRectBorder(screen, px, py, w, h, 2, colorBorder)
	return px, py
}

// drawMenu draws a vertical list with the selected row highlighted.
func drawMenu(screen *ebiten.Image, x, y, w int, options []string, selected int) {
	for i, label := range options {
		rowY := y + i*24
		if i == selected {
			drawFilledRect(screen, x, rowY-4, w, 22, colorSelection)
		}
		ebitenutil.DebugPrintAt(screen, label, x+12, rowY)
	}
}

func drawHPBar(screen *ebiten.Image, x, y, w int, hp, maxHP int) {
	drawFilledRect(screen, x, y, w, 6, colorHPTrack)
	if maxHP <= 0 {
		return
	}
	clr := colorHPGood
	if hp*4 <= maxHP {
		clr = colorHPLow
	}
	drawFilledRect(screen, x, y, w*hp/maxHP, 6, clr)
}

func rgb(c [3]int) color.RGBA {
	return color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

// wrapText wraps text to at most maxWidth characters per line.
func wrapText(text string, maxWidth int) []string {
	if len(text) <= maxWidth {
		return []string{text}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		if len(currentLine)+len(word)+1 <= maxWidth {
			if currentLine == "" {
				currentLine = word
			} else {
				currentLine += " " + word
			}
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// tailLines wraps messages and keeps the last n lines.
func tailLines(messages []string, width, n int) []string {
	var lines []string
	for _, msg := range messages {
		lines = append(lines, wrapText(msg, width)...)
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
