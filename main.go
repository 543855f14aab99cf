package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/config"
	"github.com/sagivt1/Adventure-arcade-game/save"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = common.NewSeed(); err != nil {
			log.Fatal(err)
		}
	}

	store, err := save.Open(context.Background(), cfg.SaveBackend, cfg.SaveDir)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("save: close store: %v", err)
		}
	}()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.WindowW, cfg.WindowH)
	ebiten.SetWindowTitle("Adventure")

	game, err := NewGame(cfg, store, common.NewRand(seed))
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	log.Printf("game: level=%s backend=%s seed=%d", cfg.StartLevel, cfg.SaveBackend, seed)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
