package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"

	"monstercollector/internal/config"
	"monstercollector/internal/dice"
	"monstercollector/internal/game"
	"monstercollector/internal/monster"
	"monstercollector/internal/server"
	"monstercollector/internal/world"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg := config.MustLoadConfig("config.yaml")

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	if created, err := monster.EnsureDefaultCatalog(cfg.Catalog.Path); err != nil {
		log.Fatalf("Failed to prepare catalog: %v", err)
	} else if created {
		log.Printf("Wrote default species catalog to %s", cfg.Catalog.Path)
	}
	catalog := monster.MustLoadCatalog(cfg.Catalog.Path)
	log.Printf("Catalog loaded: %d species", catalog.Len())

	worldMap, err := world.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to load world map: %v", err)
	}

	listenAddr := cfg.Server.Addr
	if port := os.Getenv("PORT"); port != "" {
		listenAddr = ":" + port
	}
	store := game.NewProfileStore(game.ResolveSaveDir(cfg.Saves.Dir))
	sshServer := server.NewSSHServer(listenAddr, cfg.Server.HostKey, game.Resources{
		Config:  cfg,
		Catalog: catalog,
		Map:     worldMap,
		Rand:    dice.Global,
	}, store)

	log.Printf("Starting %s, connect with: ssh -p %s YourName@localhost", cfg.Display.WindowTitle, listenAddr[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, &pem.Block{Type: "PRIVATE KEY", Bytes: keyBytes})
}
