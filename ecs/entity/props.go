package entity

import (
	"fmt"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

const (
	defaultWeaponRadius  = 40.0
	defaultPickupRadius  = 40.0
	defaultWallThickness = 20.0
	defaultPlatformSize  = 200.0
	defaultExitRadius    = 60.0
)

// NewWeapon spawns a weapon lying in the world, ready to be picked up.
func NewWeapon(w *ecs.World, spec prefabs.WeaponSpec, at common.Vec3) (ecs.Entity, error) {
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultWeaponRadius
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WeaponComponent.Kind(), &component.Weapon{
		Name:   spec.Name,
		Damage: spec.Damage,
		Reach:  spec.Reach,
		State:  component.WeaponPickUp,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("weapon: add weapon: %w", err)
	}
	if err := SetEntityTransform(w, e, at, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("weapon: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyItem, Radius: radius}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("weapon: add physics body: %w", err)
	}
	return e, nil
}

// NewWeaponByName spawns the catalog weapon called name.
func NewWeaponByName(w *ecs.World, name string, at common.Vec3) (ecs.Entity, error) {
	catalog, err := prefabs.LoadWeaponCatalog()
	if err != nil {
		return 0, fmt.Errorf("weapon: load catalog: %w", err)
	}
	spec, ok := catalog.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("weapon: unknown weapon %q", name)
	}
	return NewWeapon(w, spec, at)
}

func NewPickup(w *ecs.World, spec prefabs.PickupSpec, at common.Vec3) (ecs.Entity, error) {
	kind := component.PickupKind(spec.Kind)
	switch kind {
	case component.PickupCoin, component.PickupPotion:
	default:
		return 0, fmt.Errorf("pickup: unknown kind %q", spec.Kind)
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultPickupRadius
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:         kind,
		Count:        spec.Count,
		Amount:       spec.Amount,
		Radius:       radius,
		BaseZ:        at.Z,
		BobAmplitude: spec.BobAmplitude,
		BobSpeed:     spec.BobSpeed,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	if err := SetEntityTransform(w, e, at, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyItem, Radius: radius}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickup: add physics body: %w", err)
	}
	return e, nil
}

// NewWall spawns a static wall segment from one point to another.
func NewWall(w *ecs.World, from, to common.Vec3, thickness float64) (ecs.Entity, error) {
	if thickness <= 0 {
		thickness = defaultWallThickness
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WallTagComponent.Kind(), &component.WallTag{}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("wall: add tag: %w", err)
	}
	if err := SetEntityTransform(w, e, from, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("wall: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:      component.BodyWall,
		Radius:    thickness / 2,
		SegmentTo: to,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("wall: add physics body: %w", err)
	}
	return e, nil
}

func NewPlatform(w *ecs.World, spec prefabs.PlatformSpec, at common.Vec3) (ecs.Entity, error) {
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = defaultPlatformSize
	}
	if height <= 0 {
		height = defaultPlatformSize
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), component.NewPlatform(at, spec.Offset, spec.InterpSpeed, spec.InterpTime)); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("platform: add platform: %w", err)
	}
	if err := SetEntityTransform(w, e, at, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("platform: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:   component.BodyPlatform,
		Width:  width,
		Height: height,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("platform: add physics body: %w", err)
	}
	return e, nil
}

// NewFloorSwitch spawns the switch plate at at together with the door wall
// it controls.
func NewFloorSwitch(w *ecs.World, spec prefabs.FloorSwitchSpec, at common.Vec3) (ecs.Entity, error) {
	half := spec.DoorWidth / 2
	if half <= 0 {
		half = defaultPlatformSize / 2
	}
	door, err := NewWall(w,
		spec.Door.Sub(common.Vec3{X: half}),
		spec.Door.Add(common.Vec3{X: half}),
		defaultWallThickness)
	if err != nil {
		return 0, fmt.Errorf("floor switch: door: %w", err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.FloorSwitchComponent.Kind(), &component.FloorSwitch{
		Door:          door.Handle(),
		HalfExtents:   spec.HalfExtents,
		SwitchTime:    spec.SwitchTime,
		InitialDoor:   spec.Door,
		InitialSwitch: at,
		DoorRaise:     spec.DoorRaise,
		SwitchDrop:    spec.SwitchDrop,
		TweenSpeed:    spec.TweenSpeed,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		ecs.DestroyEntity(w, door)
		return 0, fmt.Errorf("floor switch: add switch: %w", err)
	}
	if err := SetEntityTransform(w, e, at, 0); err != nil {
		ecs.DestroyEntity(w, e)
		ecs.DestroyEntity(w, door)
		return 0, fmt.Errorf("floor switch: add transform: %w", err)
	}
	return e, nil
}

// NewTransition spawns a level exit volume.
func NewTransition(w *ecs.World, spec prefabs.TransitionSpec, at common.Vec3) (ecs.Entity, error) {
	if spec.Target == "" {
		return 0, fmt.Errorf("transition: missing target level")
	}
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultExitRadius
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransitionComponent.Kind(), &component.Transition{TargetLevel: spec.Target, Radius: radius}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("transition: add transition: %w", err)
	}
	if err := SetEntityTransform(w, e, at, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("transition: add transform: %w", err)
	}
	return e, nil
}

// HUDPersistentID keeps the HUD across level changes.
const HUDPersistentID = "hud"

// NewHUD spawns the UI singleton.
func NewHUD(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HUDComponent.Kind(), &component.HUD{}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("hud: add hud: %w", err)
	}
	if err := ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: HUDPersistentID, KeepOnLevelChange: true}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("hud: add persistent: %w", err)
	}
	return e, nil
}

// CameraPersistentID keeps the camera across level changes.
const CameraPersistentID = "camera"

// NewCamera spawns the view singleton centred on at.
func NewCamera(w *ecs.World, at common.Vec3, zoom float64) (ecs.Entity, error) {
	if zoom <= 0 {
		zoom = 0.5
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Center:     at,
		Zoom:       zoom,
		Smoothness: 6,
		LookAhead:  120,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: add camera: %w", err)
	}
	if err := ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: CameraPersistentID, KeepOnLevelChange: true}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: add persistent: %w", err)
	}
	return e, nil
}
