package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display    DisplayConfig             `yaml:"display"`
	World      WorldConfig               `yaml:"world"`
	Tiles      map[string]TileData       `yaml:"tiles"`
	Encounters EncounterConfig           `yaml:"encounters"`
	Battle     BattleConfig              `yaml:"battle"`
	Items      map[string]ItemDefinition `yaml:"items"`
	Shop       ShopConfig                `yaml:"shop"`
	Trainers   []TrainerPlacement        `yaml:"trainers"`
	Player     PlayerConfig              `yaml:"player"`
	Catalog    CatalogConfig             `yaml:"catalog"`
	Saves      SavesConfig               `yaml:"saves"`
	Server     ServerConfig              `yaml:"server"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	SidebarWidth int    `yaml:"sidebar_width"`
}

type WorldConfig struct {
	TileSize int      `yaml:"tile_size"`
	MapFile  string   `yaml:"map_file,omitempty"`
	Rows     []string `yaml:"rows"`
}

// TileData describes one overworld tile symbol.
type TileData struct {
	Name          string  `yaml:"name"`
	Letter        string  `yaml:"letter"`
	Walkable      bool    `yaml:"walkable"`
	EncounterRate float64 `yaml:"encounter_rate"`
	Event         string  `yaml:"event,omitempty"` // "heal", "shop" or empty
	Color         [3]int  `yaml:"color"`
	Sprite        string  `yaml:"sprite,omitempty"`
}

type EncounterConfig struct {
	WildLevelMin     int `yaml:"wild_level_min"`
	WildLevelMax     int `yaml:"wild_level_max"`
	TrainerRosterMin int `yaml:"trainer_roster_min"`
	TrainerRosterMax int `yaml:"trainer_roster_max"`
	TrainerLevelMin  int `yaml:"trainer_level_min"`
	TrainerLevelMax  int `yaml:"trainer_level_max"`
}

type BattleConfig struct {
	EscapeChance   float64 `yaml:"escape_chance"`
	ExpBase        int     `yaml:"exp_base"`
	ExpPerLevel    int     `yaml:"exp_per_level"`
	MoveSlots      int     `yaml:"move_slots"`
	OutcomeDelayMs int     `yaml:"outcome_delay_ms"`
}

// Item kinds understood by the battle bag.
const (
	ItemKindCapture = "capture"
	ItemKindHeal    = "heal"
)

type ItemDefinition struct {
	Kind         string  `yaml:"kind"`
	Description  string  `yaml:"description,omitempty"`
	CaptureBonus float64 `yaml:"capture_bonus,omitempty"`
	HealAmount   int     `yaml:"heal_amount,omitempty"`
}

type ShopConfig struct {
	Stock []ShopEntry `yaml:"stock"`
}

type ShopEntry struct {
	Item  string `yaml:"item"`
	Price int    `yaml:"price"`
}

// TrainerPlacement positions a trainer NPC. Facing is one of N, S, E, W.
type TrainerPlacement struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Facing string `yaml:"facing"`
}

type PlayerConfig struct {
	StartX        int            `yaml:"start_x"`
	StartY        int            `yaml:"start_y"`
	RecoveryX     int            `yaml:"recovery_x"`
	RecoveryY     int            `yaml:"recovery_y"`
	StartMoney    int            `yaml:"start_money"`
	StartBag      map[string]int `yaml:"start_bag"`
	StarterLevel  int            `yaml:"starter_level"`
	PartyCapacity int            `yaml:"party_capacity"`
	TrainerReward int            `yaml:"trainer_reward"`
}

type CatalogConfig struct {
	Path string `yaml:"path"`
}

type SavesConfig struct {
	Dir string `yaml:"dir"`
}

// MaxPartyCapacity is the hard cap on party size; config may only lower it.
const MaxPartyCapacity = 6

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// LoadConfig loads the configuration from a YAML file. Sections missing from
// the file keep their Default() values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate reports every inconsistent value at once.
func (c *Config) Validate() error {
	var problems []string
	e := c.Encounters
	if e.WildLevelMin < 1 || e.WildLevelMax < e.WildLevelMin {
		problems = append(problems, fmt.Sprintf("wild level band [%d,%d] is invalid", e.WildLevelMin, e.WildLevelMax))
	}
	if e.TrainerRosterMin < 1 || e.TrainerRosterMax < e.TrainerRosterMin {
		problems = append(problems, fmt.Sprintf("trainer roster size [%d,%d] is invalid", e.TrainerRosterMin, e.TrainerRosterMax))
	}
	if e.TrainerLevelMin < 1 || e.TrainerLevelMax < e.TrainerLevelMin {
		problems = append(problems, fmt.Sprintf("trainer level band [%d,%d] is invalid", e.TrainerLevelMin, e.TrainerLevelMax))
	}
	if c.Battle.EscapeChance < 0 || c.Battle.EscapeChance > 1 {
		problems = append(problems, fmt.Sprintf("escape chance %.2f outside [0,1]", c.Battle.EscapeChance))
	}
	if c.Battle.MoveSlots < 1 {
		problems = append(problems, "battle move_slots must be at least 1")
	}
	if c.Player.PartyCapacity < 1 || c.Player.PartyCapacity > MaxPartyCapacity {
		problems = append(problems, fmt.Sprintf("party capacity %d outside [1,%d]", c.Player.PartyCapacity, MaxPartyCapacity))
	}
	if c.Player.StarterLevel < 1 {
		problems = append(problems, "starter level must be at least 1")
	}
	if len(c.World.Rows) == 0 && c.World.MapFile == "" {
		problems = append(problems, "world has neither rows nor map_file")
	}
	for name, item := range c.Items {
		switch item.Kind {
		case ItemKindCapture:
			if item.CaptureBonus <= 0 {
				problems = append(problems, fmt.Sprintf("item %q: capture_bonus must be positive", name))
			}
		case ItemKindHeal:
			if item.HealAmount <= 0 {
				problems = append(problems, fmt.Sprintf("item %q: heal_amount must be positive", name))
			}
		default:
			problems = append(problems, fmt.Sprintf("item %q: unknown kind %q", name, item.Kind))
		}
	}
	for _, entry := range c.Shop.Stock {
		if _, ok := c.Items[entry.Item]; !ok {
			problems = append(problems, fmt.Sprintf("shop sells unknown item %q", entry.Item))
		}
	}
	letters := make(map[string]string)
	for key, tile := range c.Tiles {
		if len([]rune(tile.Letter)) != 1 {
			problems = append(problems, fmt.Sprintf("tile %q: letter must be a single character", key))
			continue
		}
		if other, dup := letters[tile.Letter]; dup {
			problems = append(problems, fmt.Sprintf("letter %q is used by tiles %q and %q", tile.Letter, other, key))
		}
		letters[tile.Letter] = key
	}
	for i, tr := range c.Trainers {
		switch tr.Facing {
		case "N", "S", "E", "W":
		default:
			problems = append(problems, fmt.Sprintf("trainer %d: facing %q is not one of N,S,E,W", i, tr.Facing))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("config validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetTileSize() int {
	return c.World.TileSize
}

// GetItem returns the bag item definition by display name.
func (c *Config) GetItem(name string) (ItemDefinition, bool) {
	item, ok := c.Items[name]
	return item, ok
}

// GetPrice returns the shop price of an item.
func (c *Config) GetPrice(name string) (int, bool) {
	for _, entry := range c.Shop.Stock {
		if entry.Item == name {
			return entry.Price, true
		}
	}
	return 0, false
}

// ExpReward is the experience granted for defeating a monster of the given level.
func (c *Config) ExpReward(enemyLevel int) int {
	return c.Battle.ExpBase + enemyLevel*c.Battle.ExpPerLevel
}
