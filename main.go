package main

import (
	"log"

	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/game"
	"monstercollector/internal/monster"
	"monstercollector/internal/ui"
	"monstercollector/internal/world"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// The species catalog is written out with the default set on first run
	created, err := monster.EnsureDefaultCatalog(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to prepare catalog: %v", err)
	}
	if created {
		log.Printf("Wrote default species catalog to %s", cfg.Catalog.Path)
	}
	catalog := monster.MustLoadCatalog(cfg.Catalog.Path)

	worldMap, err := world.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load world map: %v", err)
	}

	store := game.NewProfileStore(game.ResolveSaveDir(cfg.Saves.Dir))
	app := ui.NewApp(game.Resources{
		Config:  cfg,
		Catalog: catalog,
		Map:     worldMap,
		Rand:    dice.Global,
	}, store)
	if err := ui.Run(app); err != nil {
		log.Fatal(err)
	}
}
