package entity

import (
	"fmt"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/levels"
)

// LoadLevelToWorld spawns every placed entity of lvl, the level singleton
// and, when none survived from a previous level, the player, the camera
// and the HUD.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, rng common.Rand) error {
	if w == nil || lvl == nil {
		return fmt.Errorf("load level: nil world or level")
	}

	ctx := &buildContext{Level: lvl.Name, Rand: rng}
	for i, ent := range lvl.Entities {
		if _, err := BuildLevelEntity(w, ent, ctx); err != nil {
			return fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err)
		}
	}

	if levelEnt, ok := ecs.First(w, component.LevelComponent.Kind()); ok {
		if l, ok := ecs.Get(w, levelEnt, component.LevelComponent.Kind()); ok {
			l.Name = lvl.Name
		}
	} else {
		levelEnt := ecs.CreateEntity(w)
		if err := ecs.Add(w, levelEnt, component.LevelComponent.Kind(), &component.Level{Name: lvl.Name}); err != nil {
			return fmt.Errorf("load level %q: add level: %w", lvl.Name, err)
		}
	}

	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if err := SetEntityTransform(w, player, lvl.PlayerStart, lvl.PlayerYaw); err != nil {
			return fmt.Errorf("load level %q: place player: %w", lvl.Name, err)
		}
	} else if _, err := NewPlayerAt(w, lvl.PlayerStart, lvl.PlayerYaw, rng); err != nil {
		return fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	if _, ok := ecs.First(w, component.CameraComponent.Kind()); !ok {
		if _, err := NewCamera(w, lvl.PlayerStart, 0); err != nil {
			return fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
	}

	if _, ok := ecs.First(w, component.HUDComponent.Kind()); !ok {
		if _, err := NewHUD(w); err != nil {
			return fmt.Errorf("load level %q: %w", lvl.Name, err)
		}
	}
	return nil
}
