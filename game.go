package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/config"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/ecs/system"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
	"github.com/sagivt1/Adventure-arcade-game/save"
)

type Game struct {
	cfg config.Config

	world       *ecs.World
	scheduler   *ecs.Scheduler
	physics     *system.PhysicsSystem
	ai          *system.EnemyAISystem
	persistence *system.PersistenceSystem
	render      *system.RenderSystem

	watcher *prefabs.Watcher
	pause   *pauseMenu
	paused  bool
	quit    bool
}

func NewGame(cfg config.Config, store save.Store, rng common.Rand) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(),
		ai:      system.NewEnemyAISystem(),
		render:  system.NewRenderSystem(),
		paused:  cfg.StartPaused,
	}
	g.persistence = system.NewPersistenceSystem(store, cfg.StartLevel, cfg.Slot, rng, g.physics.Reset, g.ai.Reset)

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(system.NewEbitenInput()),
		system.NewPlayerControllerSystem(),
		system.NewStaminaSystem(),
		g.ai,
		g.physics,
		system.NewCombatTargetSystem(),
		system.NewAnimationSystem(),
		system.NewAttackSystem(),
		system.NewDamageSystem(),
		system.NewPickupSystem(),
		system.NewPlatformSystem(),
		system.NewFloorSwitchSystem(),
		system.NewTransitionSystem(),
		system.NewCameraSystem(),
		system.NewHUDSystem(),
		g.persistence,
	)

	if err := g.persistence.Init(g.world); err != nil {
		return nil, err
	}

	if cfg.HotReload {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"), "levels")
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pause = newPauseMenu(g)
	if g.paused {
		g.setPaused(true)
	}
	return g, nil
}

func (g *Game) Close() {
	if g == nil || g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		log.Printf("game: close watcher: %v", err)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.applyChanges()

	if g.paused {
		g.pause.Update()
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.setPaused(false)
		}
		return nil
	}

	g.scheduler.Update(g.world, 1/float64(ebiten.TPS()))

	if hud := g.hud(); hud != nil && hud.Paused {
		g.setPaused(true)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.cfg.Debug {
		system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
		system.DrawPlayerStateDebug(g.world, screen)
	}
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.WindowW, g.cfg.WindowH
}

func (g *Game) hud() *component.HUD {
	e, ok := ecs.First(g.world, component.HUDComponent.Kind())
	if !ok {
		return nil
	}
	hud, _ := ecs.Get(g.world, e, component.HUDComponent.Kind())
	return hud
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if hud := g.hud(); hud != nil {
		hud.Paused = paused
	}
	if paused && g.pause != nil {
		g.pause.open(g.persistence.Slot(), g.persistence.LevelName())
	}
}

// requestSave writes the active slot directly; the scheduler does not tick
// while the menu is open.
func (g *Game) requestSave() error {
	err := g.persistence.SaveGame(g.world, g.persistence.Slot())
	if err != nil {
		log.Printf("game: %v", err)
	}
	return err
}

// requestLoad queues a load of the active slot and processes it right away.
func (g *Game) requestLoad() {
	if err := system.Request(g.world, component.LoadRequestComponent.Kind(), component.LoadRequest{
		Slot:        g.persistence.Slot(),
		SetPosition: true,
		SwitchLevel: true,
	}); err != nil {
		log.Printf("game: request load: %v", err)
		return
	}
	g.persistence.Update(g.world)
	g.setPaused(false)
}

// applyChanges reloads scripts and levels edited on disk.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("game: watcher: %v", err)
	default:
	}
	reload := false
	for _, change := range g.watcher.Poll() {
		switch change.Kind {
		case prefabs.ChangeScript:
			log.Printf("game: script changed: %s", change.Path)
			g.ai.Invalidate(filepath.Base(change.Path))
		case prefabs.ChangePrefab:
			log.Printf("game: prefab changed: %s", change.Path)
			reload = true
		}
	}
	if !reload {
		return
	}
	if err := g.persistence.Reload(g.world); err != nil {
		log.Printf("game: %v", err)
		return
	}
	g.world.Events().Emit(system.EventMessage, fmt.Sprintf("Reloaded %s", g.persistence.LevelName()))
}
