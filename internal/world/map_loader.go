package world

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"monstercollector/internal/config"
)

// commentPrefix marks ignored lines in map files. '#' is a wall letter so
// it cannot double as a comment.
const commentPrefix = "//"

// Map is the overworld grid. Rows may be ragged; anything past the end of a
// row counts as wall.
type Map struct {
	rows   [][]rune
	width  int
	height int
	tiles  *TileManager
}

// NewMap builds a map from ASCII rows.
func NewMap(rows []string, tiles *TileManager) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("map contains no rows")
	}
	m := &Map{tiles: tiles, height: len(rows)}
	unknown := make(map[rune]bool)
	for _, row := range rows {
		r := []rune(row)
		m.rows = append(m.rows, r)
		m.width = max(m.width, len(r))
		for _, letter := range r {
			if _, ok := tiles.GetTileKeyFromLetter(letter); !ok && !unknown[letter] {
				unknown[letter] = true
				log.Printf("Warning: map letter %q has no tile config, treating it as wall", letter)
			}
		}
	}
	return m, nil
}

// LoadMap reads ASCII rows from a file, skipping blank and comment lines
func LoadMap(mapPath string, tiles *TileManager) (*Map, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var rows []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map file: %w", err)
	}
	return NewMap(rows, tiles)
}

// FromConfig builds the tile manager and map described by the world config.
// A map file takes precedence over inline rows.
func FromConfig(cfg *config.Config) (*Map, error) {
	tiles, err := NewTileManager(cfg.Tiles)
	if err != nil {
		return nil, err
	}
	if cfg.World.MapFile != "" {
		return LoadMap(cfg.World.MapFile, tiles)
	}
	return NewMap(cfg.World.Rows, tiles)
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) Tiles() *TileManager {
	return m.tiles
}

// Letter returns the raw map letter at (x, y), '#' outside the grid.
func (m *Map) Letter(x, y int) rune {
	if y < 0 || y >= len(m.rows) || x < 0 || x >= len(m.rows[y]) {
		return '#'
	}
	return m.rows[y][x]
}

// At returns the tile at (x, y).
func (m *Map) At(x, y int) config.TileData {
	if y < 0 || y >= len(m.rows) || x < 0 || x >= len(m.rows[y]) {
		return wallTile
	}
	return m.tiles.Lookup(m.rows[y][x])
}

func (m *Map) IsWalkable(x, y int) bool {
	return m.At(x, y).Walkable
}
