package system

import (
	"fmt"
	"log"

	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

const hudMessageTime = 2.5

// HUDSystem mirrors UI events into the HUD singleton.
type HUDSystem struct{}

func NewHUDSystem() *HUDSystem { return &HUDSystem{} }

func (s *HUDSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	hudEnt, ok := ecs.First(w, component.HUDComponent.Kind())
	if !ok {
		return
	}
	hud, _ := ecs.Get(w, hudEnt, component.HUDComponent.Kind())

	for _, evt := range w.Events().DrainType(EventShowEnemyHealth, EventHideEnemyHealth, EventEnemyLocation, EventMessage) {
		switch evt.Type {
		case EventShowEnemyHealth:
			hud.EnemyHealthVisible = true
		case EventHideEnemyHealth:
			hud.EnemyHealthVisible = false
		case EventEnemyLocation:
			if loc, ok := evt.Data.(EnemyLocationEvent); ok {
				hud.EnemyLocation = loc.Location
				hud.EnemyHealthFraction = loc.Health
			}
		case EventMessage:
			if msg, ok := evt.Data.(string); ok {
				hud.ShowMessage(msg, hudMessageTime)
			}
		}
	}

	if player, _, alive := findPlayer(w); player.Valid() && !alive && ecs.Has(w, player, component.CharacterComponent.Kind()) && hud.Message == "" {
		hud.ShowMessage("You died. Load a save from the pause menu.", hudMessageTime)
	}

	ecs.ForEach(w, component.LevelLoadedComponent.Kind(), func(e ecs.Entity, loaded *component.LevelLoaded) {
		hud.ShowMessage(fmt.Sprintf("Entered %s", loaded.Name), hudMessageTime)
		log.Printf("hud: level=%s sequence=%d", loaded.Name, loaded.Sequence)
		ecs.DestroyEntity(w, e)
	})

	if hud.MessageTimer > 0 {
		hud.MessageTimer -= w.Delta()
		if hud.MessageTimer <= 0 {
			hud.MessageTimer = 0
			hud.Message = ""
		}
	}
}
