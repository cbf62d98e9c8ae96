package monster

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
func move(name string, power int, accuracy float64) MoveDefinition {
	return MoveDefinition{Name: name, Power: intp(power), Accuracy: floatp(accuracy)}
}

// DefaultCatalogDocument is written to disk on first run.
func DefaultCatalogDocument() CatalogDocument {
	return CatalogDocument{Monsters: map[string]SpeciesDefinition{
		"slime_girl": {
			Name: "Slime Girl", Element: string(ElementWater),
			BaseHP: intp(20), BaseAtk: intp(8), BaseDef: intp(6), BaseSpd: intp(7),
			CatchRate: intp(190),
			Icon:      "assets/monsters/slime_girl.png",
			Learnset:  []MoveDefinition{move("Splash Kiss", 30, 0.95), move("Ooze Slam", 40, 0.9)},
		},
		"harpy": {
			Name: "Harpy", Element: string(ElementAir),
			BaseHP: intp(22), BaseAtk: intp(9), BaseDef: intp(6), BaseSpd: intp(12),
			CatchRate: intp(160),
			Icon:      "assets/monsters/harpy.png",
			Learnset:  []MoveDefinition{move("Gust Peck", 35, 0.95), move("Sky Rake", 45, 0.88)},
		},
		"minotaur": {
			Name: "Minotaur", Element: string(ElementEarth),
			BaseHP: intp(28), BaseAtk: intp(8), BaseDef: intp(12), BaseSpd: intp(6),
			CatchRate: intp(120),
			Icon:      "assets/monsters/minotaur.png",
			Learnset:  []MoveDefinition{move("Tackle", 30, 0.95), move("Labyrinth Rush", 40, 0.85)},
		},
		"caterpillar_girl": {
			Name: "Caterpillar Girl", Element: string(ElementNormal),
			BaseHP: intp(20), BaseAtk: intp(8), BaseDef: intp(8), BaseSpd: intp(8),
			CatchRate: intp(180),
			Icon:      "assets/monsters/caterpillar_girl.png",
			Learnset:  []MoveDefinition{move("Tackle", 30, 0.95), move("String Shot", 20, 1.0)},
		},
		"mouse_girl": {
			Name: "Mouse Girl", Element: string(ElementNormal),
			BaseHP: intp(16), BaseAtk: intp(7), BaseDef: intp(5), BaseSpd: intp(14),
			CatchRate: intp(200),
			Icon:      "assets/monsters/mouse_girl.png",
			Learnset:  []MoveDefinition{move("Tackle", 30, 0.95), move("Dart", 20, 1.0)},
		},
	}}
}

// DefaultCatalog builds the default species set.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultCatalogDocument())
	if err != nil {
		panic("default monster catalog is invalid: " + err.Error())
	}
	return c
}
