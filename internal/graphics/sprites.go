package graphics

import (
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"

	"monstercollector/internal/monster"

	"github.com/hajimehoshi/ebiten/v2"
)

const placeholderSize = 32

// SpriteManager loads monster icons and tile sprites on demand. A file that
// cannot be read is remembered and drawn as a coloured placeholder instead.
type SpriteManager struct {
	sprites      map[string]*ebiten.Image
	missing      map[string]bool
	placeholders map[color.RGBA]*ebiten.Image
}

func NewSpriteManager() *SpriteManager {
	return &SpriteManager{
		sprites:      make(map[string]*ebiten.Image),
		missing:      make(map[string]bool),
		placeholders: make(map[color.RGBA]*ebiten.Image),
	}
}

// ElementColor is the placeholder tint for a species without an icon.
func ElementColor(e monster.Element) color.RGBA {
	switch e {
	case monster.ElementWater:
		return color.RGBA{70, 130, 220, 255}
	case monster.ElementFire:
		return color.RGBA{220, 90, 50, 255}
	case monster.ElementEarth:
		return color.RGBA{150, 110, 60, 255}
	case monster.ElementAir:
		return color.RGBA{170, 210, 230, 255}
	default:
		return color.RGBA{128, 128, 128, 255}
	}
}

// Icon returns the species icon, or a placeholder tinted by element.
func (sm *SpriteManager) Icon(sp *monster.Species) *ebiten.Image {
	if img, ok := sm.Load(sp.Icon); ok {
		return img
	}
	return sm.placeholder(ElementColor(sp.Element))
}

// Sprite returns the image at path, or a placeholder filled with fallback.
func (sm *SpriteManager) Sprite(path string, fallback color.RGBA) *ebiten.Image {
	if img, ok := sm.Load(path); ok {
		return img
	}
	return sm.placeholder(fallback)
}

// Load decodes an image file once and caches it. Missing files are logged
// the first time only.
func (sm *SpriteManager) Load(path string) (*ebiten.Image, bool) {
	if path == "" || sm.missing[path] {
		return nil, false
	}
	if img, ok := sm.sprites[path]; ok {
		return img, true
	}

	file, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: icon %s unavailable, using placeholder: %v", path, err)
		sm.missing[path] = true
		return nil, false
	}
	defer file.Close()
	decoded, _, err := image.Decode(file)
	if err != nil {
		log.Printf("Warning: icon %s could not be decoded, using placeholder: %v", path, err)
		sm.missing[path] = true
		return nil, false
	}
	img := ebiten.NewImageFromImage(decoded)
	sm.sprites[path] = img
	return img, true
}

func (sm *SpriteManager) placeholder(clr color.RGBA) *ebiten.Image {
	if img, ok := sm.placeholders[clr]; ok {
		return img
	}
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	img.Fill(clr)
	sm.placeholders[clr] = img
	return img
}
