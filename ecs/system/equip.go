package system

import (
	"fmt"
	"log"

	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// Equip installs weapon into owner's slot. The previously equipped weapon
// entity is destroyed before the new one is installed.
func Equip(w *ecs.World, owner, weapon ecs.Entity) error {
	if w == nil || !ecs.IsAlive(w, owner) {
		return fmt.Errorf("equip: owner %v: %w", owner, component.ErrInvalidArgument)
	}
	if weapon == owner || !ecs.IsAlive(w, weapon) {
		return fmt.Errorf("equip: weapon %v: %w", weapon, component.ErrInvalidArgument)
	}
	wp, ok := ecs.Get(w, weapon, component.WeaponComponent.Kind())
	if !ok {
		return fmt.Errorf("equip: entity %v is not a weapon: %w", weapon, component.ErrInvalidArgument)
	}
	slot, ok := ecs.Get(w, owner, component.WeaponSlotComponent.Kind())
	if !ok {
		return fmt.Errorf("equip: owner %v has no weapon slot: %w", owner, component.ErrInvalidArgument)
	}
	if slot.Equipped == weapon.Handle() {
		return nil
	}

	if prev := ecs.FromHandle(slot.Equipped); prev.Valid() && ecs.IsAlive(w, prev) {
		ecs.DestroyEntity(w, prev)
	}
	slot.Install(weapon.Handle())

	wp.State = component.WeaponEquipped
	wp.Owner = owner.Handle()
	wp.Highlighted = false
	wp.EndSwing()

	if ov, ok := ecs.Get(w, owner, component.ActiveOverlapComponent.Kind()); ok && ov.Item == weapon.Handle() {
		ov.Item = 0
	}
	if tf, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		if wtf, ok := ecs.Get(w, weapon, component.TransformComponent.Kind()); ok {
			*wtf = *tf
		}
	}

	log.Printf("equip: owner=%v weapon=%s", owner, wp.Name)
	w.Events().Emit(EventWeaponEquipped, weapon.Handle())
	return nil
}

// EquippedWeapon resolves the owner's equipped weapon, if it is still alive.
func EquippedWeapon(w *ecs.World, owner ecs.Entity) (ecs.Entity, *component.Weapon, bool) {
	slot, ok := ecs.Get(w, owner, component.WeaponSlotComponent.Kind())
	if !ok || slot.Empty() {
		return 0, nil, false
	}
	e := ecs.FromHandle(slot.Equipped)
	if !ecs.IsAlive(w, e) {
		slot.Equipped = 0
		return 0, nil, false
	}
	wp, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, wp, true
}
