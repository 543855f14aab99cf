package system

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/ecs/entity"
	"github.com/sagivt1/Adventure-arcade-game/levels"
	"github.com/sagivt1/Adventure-arcade-game/save"
)

type PersistenceMode int

const (
	PersistenceOnLevelChange PersistenceMode = iota
	PersistenceOnReload
)

const defaultStoreTimeout = 2 * time.Second

// PersistenceSystem owns level loading and the save slots. Gameplay and the
// pause menu talk to it through request components; it processes them at
// the end of the tick.
type PersistenceSystem struct {
	store            save.Store
	slot             string
	levelName        string
	initialLevelName string
	rng              common.Rand
	resets           []func()
	timeout          time.Duration
	initialized      bool
	loadSequence     uint64
}

// NewPersistenceSystem builds the system. resets run whenever the world is
// rebuilt so collaborators holding per-entity state (physics, AI) start
// clean.
func NewPersistenceSystem(store save.Store, initialLevelName, slot string, rng common.Rand, resets ...func()) *PersistenceSystem {
	if slot == "" {
		slot = save.DefaultSlot
	}
	return &PersistenceSystem{
		store:            store,
		slot:             save.SanitizeSlot(slot),
		levelName:        initialLevelName,
		initialLevelName: initialLevelName,
		rng:              rng,
		resets:           resets,
		timeout:          defaultStoreTimeout,
	}
}

// LevelName is the level currently built into the world.
func (p *PersistenceSystem) LevelName() string {
	if p == nil {
		return ""
	}
	return p.levelName
}

// Slot is the default save slot.
func (p *PersistenceSystem) Slot() string {
	if p == nil {
		return ""
	}
	return p.slot
}

// Init builds the initial level. It is safe to call more than once; only
// the first call loads.
func (p *PersistenceSystem) Init(w *ecs.World) error {
	if p == nil || w == nil {
		return fmt.Errorf("persistence: nil system or world")
	}
	if p.initialized {
		return nil
	}
	p.initialized = true
	if err := p.reloadWorld(w, PersistenceOnReload); err != nil {
		return fmt.Errorf("persistence: initial load: %w", err)
	}
	return nil
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	if !p.initialized {
		if err := p.Init(w); err != nil {
			log.Printf("%v", err)
		}
		return
	}

	if req, ok := firstRequest(w, component.SaveRequestComponent.Kind()); ok {
		slot := p.slotOr(req.Slot)
		if err := p.SaveGame(w, slot); err != nil {
			log.Printf("persistence: %v", err)
			if errors.Is(err, ErrPlayerDead) {
				notify(w, "Cannot save while dead")
			} else {
				notify(w, "Save failed")
			}
		} else {
			notify(w, "Game saved")
		}
	}

	if req, ok := firstRequest(w, component.LoadRequestComponent.Kind()); ok {
		slot := p.slotOr(req.Slot)
		if err := p.LoadGame(w, slot, req.SetPosition, req.SwitchLevel); err != nil {
			log.Printf("persistence: %v", err)
			if errors.Is(err, save.ErrSlotNotFound) {
				notify(w, "No saved game")
			} else {
				notify(w, "Load failed")
			}
		}
		return
	}

	if req, ok := firstRequest(w, component.LevelChangeRequestComponent.Kind()); ok {
		if err := p.SwitchLevel(w, req.TargetLevel); err != nil {
			log.Printf("persistence: %v", err)
		}
	}
}

func (p *PersistenceSystem) slotOr(slot string) string {
	if slot == "" {
		return p.slot
	}
	return save.SanitizeSlot(slot)
}

// firstRequest returns the first pending request of kind and destroys every
// request entity of that kind.
func firstRequest[T any](w *ecs.World, kind component.ComponentKind[T]) (T, bool) {
	var out T
	found := false
	ecs.ForEach(w, kind, func(e ecs.Entity, req *T) {
		if !found && req != nil {
			out = *req
			found = true
		}
		ecs.DestroyEntity(w, e)
	})
	return out, found
}

// Request spawns a one-shot request entity carrying req.
func Request[T any](w *ecs.World, kind component.ComponentKind[T], req T) error {
	if w == nil {
		return fmt.Errorf("request: nil world")
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, kind, &req); err != nil {
		ecs.DestroyEntity(w, e)
		return err
	}
	return nil
}

// ErrPlayerDead is returned when saving while the player is dead.
var ErrPlayerDead = errors.New("persistence: player is dead")

func playerDead(w *ecs.World) bool {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return false
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	return ok && c.IsDead()
}

func notify(w *ecs.World, msg string) {
	w.Events().Emit(EventMessage, msg)
}

func (p *PersistenceSystem) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), p.timeout)
}

// Snapshot captures the player as a save record.
func (p *PersistenceSystem) Snapshot(w *ecs.World) (save.Record, error) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return save.Record{}, fmt.Errorf("snapshot: no player")
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	if !ok {
		return save.Record{}, fmt.Errorf("snapshot: player has no character")
	}
	rec := save.Record{
		Health:     c.Health,
		MaxHealth:  c.MaxHealth,
		Stamina:    c.Stamina,
		MaxStamina: c.MaxStamina,
		Coins:      c.Coins,
		LevelName:  p.levelName,
	}
	if tf, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		rec.Location = tf.Position
		rec.Rotation = tf.Rotation
	}
	if _, weapon, ok := EquippedWeapon(w, player); ok {
		rec.WeaponName = weapon.Name
	}
	return rec, nil
}

// SaveGame writes the player to slot. A dead player is never saved, so a
// record always loads into a living character.
func (p *PersistenceSystem) SaveGame(w *ecs.World, slot string) error {
	if p.store == nil {
		return fmt.Errorf("save: no store configured")
	}
	if playerDead(w) {
		return fmt.Errorf("save: slot %q: %w", slot, ErrPlayerDead)
	}
	rec, err := p.Snapshot(w)
	if err != nil {
		return fmt.Errorf("save: slot %q: %w", slot, err)
	}
	ctx, cancel := p.context()
	defer cancel()
	if err := p.store.Save(ctx, slot, rec); err != nil {
		return fmt.Errorf("save: slot %q: %w", slot, err)
	}
	log.Printf("persistence: saved slot=%s level=%s weapon=%q", slot, rec.LevelName, rec.WeaponName)
	return nil
}

// LoadGame restores the player from slot. With setPosition the saved
// location and rotation are applied too. With switchLevel a record from
// another level first rebuilds the world for that level.
func (p *PersistenceSystem) LoadGame(w *ecs.World, slot string, setPosition, switchLevel bool) error {
	if p.store == nil {
		return fmt.Errorf("load: no store configured")
	}
	ctx, cancel := p.context()
	defer cancel()
	rec, err := p.store.Load(ctx, slot)
	if err != nil {
		return fmt.Errorf("load: slot %q: %w", slot, err)
	}

	if switchLevel && rec.LevelName != "" && rec.LevelName != p.levelName {
		p.levelName = rec.LevelName
		if err := p.reloadWorld(w, PersistenceOnLevelChange); err != nil {
			return fmt.Errorf("load: slot %q: %w", slot, err)
		}
	}

	if err := p.ApplyRecord(w, rec, setPosition); err != nil {
		return fmt.Errorf("load: slot %q: %w", slot, err)
	}
	log.Printf("persistence: loaded slot=%s level=%s", slot, p.levelName)
	return nil
}

// LoadGameNoSwitch restores stats and weapon from slot but keeps the player
// where it is.
func (p *PersistenceSystem) LoadGameNoSwitch(w *ecs.World, slot string) error {
	return p.LoadGame(w, slot, false, false)
}

// SwitchLevel saves the player, rebuilds the world for name and restores
// the player's stats into it. The slot is then checkpointed at the new
// level's start. Switching to the current level is a no-op.
func (p *PersistenceSystem) SwitchLevel(w *ecs.World, name string) error {
	if name == "" || name == p.levelName {
		return nil
	}

	rec, snapErr := p.Snapshot(w)
	saved := false
	if snapErr == nil && p.store != nil {
		if err := p.SaveGame(w, p.slot); err != nil {
			log.Printf("persistence: %v", err)
		} else {
			saved = true
		}
	}

	prev := p.levelName
	p.levelName = name
	if err := p.reloadWorld(w, PersistenceOnLevelChange); err != nil {
		p.levelName = prev
		return fmt.Errorf("switch level %q: %w", name, err)
	}

	restored := false
	if saved {
		if err := p.LoadGameNoSwitch(w, p.slot); err != nil {
			log.Printf("persistence: %v", err)
		} else {
			restored = true
		}
	}
	if !restored && snapErr == nil {
		if err := p.ApplyRecord(w, rec, false); err != nil {
			return fmt.Errorf("switch level %q: %w", name, err)
		}
	}

	if saved {
		if err := p.SaveGame(w, p.slot); err != nil {
			log.Printf("persistence: %v", err)
		}
	}
	return nil
}

// Reload rebuilds the current level from disk and puts the player back where
// it was. Used when level or prefab files change.
func (p *PersistenceSystem) Reload(w *ecs.World) error {
	rec, snapErr := p.Snapshot(w)
	if err := p.reloadWorld(w, PersistenceOnReload); err != nil {
		return fmt.Errorf("reload level %q: %w", p.levelName, err)
	}
	if snapErr != nil {
		return nil
	}
	return p.ApplyRecord(w, rec, true)
}

// ApplyRecord copies rec onto the player. Restoring revives a dead player.
func (p *PersistenceSystem) ApplyRecord(w *ecs.World, rec save.Record, setPosition bool) error {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return fmt.Errorf("apply record: no player")
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	if !ok {
		return fmt.Errorf("apply record: player has no character")
	}
	c.Restore(rec.Health, rec.MaxHealth, rec.Stamina, rec.MaxStamina, rec.Coins)

	if anim, ok := ecs.Get(w, player, component.AnimatorComponent.Kind()); ok {
		anim.Frozen = false
		anim.Playing = false
	}
	// The montage is cut, so its AttackEnd notify never fires. End the
	// swing here or the sequencer stays Attacking.
	if seq, ok := ecs.Get(w, player, component.AttackSequencerComponent.Kind()); ok && seq.Attacking() {
		seq.End(false, false)
	}
	if _, weapon, ok := EquippedWeapon(w, player); ok {
		weapon.EndSwing()
	}
	if ct, ok := ecs.Get(w, player, component.CombatTargetComponent.Kind()); ok {
		ct.InterpEnabled = false
	}
	if mv, ok := ecs.Get(w, player, component.MovementComponent.Kind()); ok {
		mv.MaxSpeed = c.MaxSpeed
		if setPosition {
			mv.ControlYaw = rec.Rotation.Yaw
		}
	}
	if setPosition {
		if tf, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			tf.Position = rec.Location
			tf.Rotation = rec.Rotation
		}
	}

	if rec.WeaponName == "" {
		return nil
	}
	if _, current, ok := EquippedWeapon(w, player); ok && current.Name == rec.WeaponName {
		return nil
	}
	at := common.Vec3{}
	if tf, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		at = tf.Position
	}
	weapon, err := entity.NewWeaponByName(w, rec.WeaponName, at)
	if err != nil {
		return fmt.Errorf("apply record: %w", err)
	}
	if err := Equip(w, player, weapon); err != nil {
		ecs.DestroyEntity(w, weapon)
		return fmt.Errorf("apply record: %w", err)
	}
	return nil
}

func (p *PersistenceSystem) snapshotPersistentSingletons(w *ecs.World, mode PersistenceMode) map[string]ecs.Entity {
	preferred := map[string]ecs.Entity{}
	if w == nil {
		return preferred
	}

	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" || !p.shouldKeep(persistent, mode) {
			return
		}
		if _, exists := preferred[persistent.ID]; !exists {
			preferred[persistent.ID] = e
		}
	})

	return preferred
}

func (p *PersistenceSystem) pruneForReload(w *ecs.World, mode PersistenceMode) {
	if w == nil {
		return
	}

	toDestroy := make([]ecs.Entity, 0)
	for _, e := range ecs.Entities(w) {
		persistent, ok := ecs.Get(w, e, component.PersistentComponent.Kind())
		if !ok || persistent == nil || !p.shouldKeep(persistent, mode) {
			toDestroy = append(toDestroy, e)
		}
	}

	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

func (p *PersistenceSystem) resolvePersistentSingletons(w *ecs.World, preferred map[string]ecs.Entity) {
	if w == nil {
		return
	}

	seen := make(map[string]ecs.Entity)
	toDestroy := make([]ecs.Entity, 0)
	ecs.ForEach(w, component.PersistentComponent.Kind(), func(e ecs.Entity, persistent *component.Persistent) {
		if persistent == nil || persistent.ID == "" {
			return
		}
		if preferredEntity, ok := preferred[persistent.ID]; ok {
			seen[persistent.ID] = preferredEntity
			if e != preferredEntity {
				toDestroy = append(toDestroy, e)
			}
			return
		}

		if existing, ok := seen[persistent.ID]; ok && existing != e {
			toDestroy = append(toDestroy, e)
			return
		}
		seen[persistent.ID] = e
	})

	for _, e := range toDestroy {
		ecs.DestroyEntity(w, e)
	}
}

// reloadWorld reads the level before touching the world so a missing or
// broken level file leaves the current one intact.
func (p *PersistenceSystem) reloadWorld(w *ecs.World, mode PersistenceMode) error {
	level, err := levels.Load(p.levelName)
	if err != nil {
		return fmt.Errorf("load level %q: %w", p.levelName, err)
	}

	preferredSingletons := p.snapshotPersistentSingletons(w, mode)
	p.pruneForReload(w, mode)

	for _, reset := range p.resets {
		if reset != nil {
			reset()
		}
	}

	if err = entity.LoadLevelToWorld(w, level, p.rng); err != nil {
		return err
	}

	p.resolvePersistentSingletons(w, preferredSingletons)

	p.loadSequence++
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.LevelLoadedComponent.Kind(), &component.LevelLoaded{Name: level.Name, Sequence: p.loadSequence})
	log.Printf("persistence: loaded level=%s entities=%d", level.Name, len(level.Entities))
	return nil
}

func (p *PersistenceSystem) shouldKeep(persistent *component.Persistent, mode PersistenceMode) bool {
	if persistent == nil {
		return false
	}
	if mode == PersistenceOnReload {
		return false
	}
	return persistent.KeepOnLevelChange
}
