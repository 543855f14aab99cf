package entity

import (
	"fmt"
	"strings"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/levels"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

type buildContext struct {
	Level string
	Rand  common.Rand
}

type levelEntityBuildFn func(w *ecs.World, ent levels.Entity, ctx *buildContext) (ecs.Entity, error)

var levelEntityRegistry = map[string]levelEntityBuildFn{
	"wall":         buildWall,
	"weapon":       buildWeapon,
	"enemy":        buildEnemy,
	"pickup":       buildPickup,
	"platform":     buildPlatform,
	"floor_switch": buildFloorSwitch,
	"transition":   buildTransition,
}

// BuildLevelEntity spawns one placed level entity by its type.
func BuildLevelEntity(w *ecs.World, ent levels.Entity, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	kind := strings.ToLower(strings.TrimSpace(ent.Type))
	builder, ok := levelEntityRegistry[kind]
	if !ok {
		return 0, fmt.Errorf("build entity: no builder for type %q", ent.Type)
	}
	e, err := builder(w, ent, ctx)
	if err != nil {
		return 0, fmt.Errorf("build entity: %s: %w", kind, err)
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, at common.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = at
	t.Rotation = common.Rotator{Yaw: yaw}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func buildWall(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	spec, err := prefabs.DecodeSpec[prefabs.WallSpec](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("decode wall spec: %w", err)
	}
	return NewWall(w, ent.Position, spec.To, spec.Thickness)
}

func buildWeapon(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	catalog, err := prefabs.LoadWeaponCatalog()
	if err != nil {
		return 0, err
	}
	spec, ok := catalog.Lookup(ent.Prefab)
	if !ok {
		return 0, fmt.Errorf("unknown weapon %q", ent.Prefab)
	}
	return NewWeapon(w, spec, ent.Position)
}

func buildEnemy(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	return NewEnemyAt(w, ent.Prefab, ent.Position)
}

func buildPickup(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	spec, err := prefabs.DecodeSpec[prefabs.PickupSpec](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("decode pickup spec: %w", err)
	}
	return NewPickup(w, spec, ent.Position)
}

func buildPlatform(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	spec, err := prefabs.DecodeSpec[prefabs.PlatformSpec](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("decode platform spec: %w", err)
	}
	return NewPlatform(w, spec, ent.Position)
}

func buildFloorSwitch(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	spec, err := prefabs.DecodeSpec[prefabs.FloorSwitchSpec](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("decode floor switch spec: %w", err)
	}
	return NewFloorSwitch(w, spec, ent.Position)
}

func buildTransition(w *ecs.World, ent levels.Entity, _ *buildContext) (ecs.Entity, error) {
	spec, err := prefabs.DecodeSpec[prefabs.TransitionSpec](ent.Props)
	if err != nil {
		return 0, fmt.Errorf("decode transition spec: %w", err)
	}
	return NewTransition(w, spec, ent.Position)
}
