package world

import (
	"fmt"
	"sort"

	"monstercollector/internal/config"
)

// Tile events triggered by stepping on a tile.
const (
	EventHeal = "heal"
	EventShop = "shop"
)

// wallTile is what the map reports for unknown letters and out-of-bounds
// coordinates.
var wallTile = config.TileData{Name: "wall", Letter: "#", Walkable: false, Color: [3]int{70, 70, 70}}

// TileManager maps map letters to tile properties from the config
type TileManager struct {
	tileData     map[string]*config.TileData
	letterToKey  map[rune]string
	orderedKeys  []string
	defaultColor [3]int
}

// NewTileManager builds the letter lookup from the configured tiles
func NewTileManager(tiles map[string]config.TileData) (*TileManager, error) {
	tm := &TileManager{
		tileData:     make(map[string]*config.TileData, len(tiles)),
		letterToKey:  make(map[rune]string, len(tiles)),
		defaultColor: [3]int{60, 180, 60},
	}
	for key, data := range tiles {
		// Make a copy to avoid pointer issues
		tileCopy := data
		letter := []rune(data.Letter)
		if len(letter) != 1 {
			return nil, fmt.Errorf("tile %q: letter %q must be a single character", key, data.Letter)
		}
		if other, dup := tm.letterToKey[letter[0]]; dup {
			return nil, fmt.Errorf("tiles %q and %q share letter %q", other, key, data.Letter)
		}
		tm.tileData[key] = &tileCopy
		tm.letterToKey[letter[0]] = key
		tm.orderedKeys = append(tm.orderedKeys, key)
	}
	sort.Strings(tm.orderedKeys)
	return tm, nil
}

// GetTileDataByKey returns the configuration data for a tile by its key
func (tm *TileManager) GetTileDataByKey(key string) *config.TileData {
	return tm.tileData[key]
}

// GetTileKeyFromLetter returns the tile key for a map letter
func (tm *TileManager) GetTileKeyFromLetter(letter rune) (string, bool) {
	key, ok := tm.letterToKey[letter]
	return key, ok
}

// Lookup returns the tile for a map letter; unknown letters are walls
func (tm *TileManager) Lookup(letter rune) config.TileData {
	if key, ok := tm.letterToKey[letter]; ok {
		return *tm.tileData[key]
	}
	return wallTile
}

// GetAllTileKeys returns all configured tile keys in sorted order
func (tm *TileManager) GetAllTileKeys() []string {
	return append([]string(nil), tm.orderedKeys...)
}

// GetColor returns the draw colour for a tile, falling back to green
func (tm *TileManager) GetColor(data config.TileData) [3]int {
	if data.Color[0] != 0 || data.Color[1] != 0 || data.Color[2] != 0 {
		return data.Color
	}
	return tm.defaultColor
}
