package config

// DefaultWorldRows is the built-in overworld.
//
//	# wall   . plain   T tall grass   ' ' open ground
//	H hut    C shop    E exit marker
var DefaultWorldRows = []string{
	"########################",
	"#H....TT..####..TT....##",
	"#..####..##..#..#..TT..#",
	"#..#  #..#..##..#..##..#",
	"#..#  #..####..#..###..#",
	"#..#  #..TT....#..#....#",
	"#..####..TTTT..##..###.#",
	"#..T..####..TT..#..T..C#",
	"#..TT..#..#..TT..#..TT.#",
	"#......#....#......#...E#",
	"########################",
}

// Default returns the built-in configuration. LoadConfig overlays the YAML
// file on top of it.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1024,
			ScreenHeight: 640,
			WindowTitle:  "Monster Collector",
			SidebarWidth: 256,
		},
		World: WorldConfig{
			TileSize: 32,
			Rows:     append([]string(nil), DefaultWorldRows...),
		},
		Tiles: map[string]TileData{
			"wall":  {Name: "Wall", Letter: "#", Walkable: false, Color: [3]int{58, 58, 58}},
			"plain": {Name: "Plain", Letter: ".", Walkable: true, EncounterRate: 0.08, Color: [3]int{43, 43, 43}},
			"grass": {Name: "Tall Grass", Letter: "T", Walkable: true, EncounterRate: 0.16, Color: [3]int{47, 93, 52}},
			"open":  {Name: "Open Ground", Letter: " ", Walkable: true, EncounterRate: 0.04, Color: [3]int{34, 34, 34}},
			"hut":   {Name: "Hut", Letter: "H", Walkable: true, Event: "heal", Color: [3]int{44, 62, 80}},
			"shop":  {Name: "Charm Shop", Letter: "C", Walkable: true, Event: "shop", Color: [3]int{109, 76, 65}},
			"exit":  {Name: "Exit", Letter: "E", Walkable: true, Color: [3]int{142, 68, 173}},
		},
		Encounters: EncounterConfig{
			WildLevelMin:     2,
			WildLevelMax:     4,
			TrainerRosterMin: 1,
			TrainerRosterMax: 2,
			TrainerLevelMin:  4,
			TrainerLevelMax:  6,
		},
		Battle: BattleConfig{
			EscapeChance:   0.6,
			ExpBase:        12,
			ExpPerLevel:    3,
			MoveSlots:      2,
			OutcomeDelayMs: 50,
		},
		Items: map[string]ItemDefinition{
			"Charm Orb": {Kind: ItemKindCapture, CaptureBonus: 1.2, Description: "Attempts to befriend a wild monster"},
			"Potion":    {Kind: ItemKindHeal, HealAmount: 20, Description: "Restores 20 HP"},
		},
		Shop: ShopConfig{
			Stock: []ShopEntry{
				{Item: "Charm Orb", Price: 50},
				{Item: "Potion", Price: 40},
			},
		},
		Trainers: []TrainerPlacement{
			{X: 5, Y: 1, Facing: "W"},
			{X: 14, Y: 3, Facing: "S"},
			{X: 18, Y: 6, Facing: "W"},
		},
		Player: PlayerConfig{
			StartX:        1,
			StartY:        1,
			RecoveryX:     1,
			RecoveryY:     1,
			StartMoney:    200,
			StartBag:      map[string]int{"Charm Orb": 3, "Potion": 2},
			StarterLevel:  3,
			PartyCapacity: 6,
			TrainerReward: 50,
		},
		Catalog: CatalogConfig{Path: "assets/monsters.yaml"},
		Saves:   SavesConfig{Dir: "saves"},
		Server:  ServerConfig{Addr: ":2222", HostKey: "host_key"},
	}
}
