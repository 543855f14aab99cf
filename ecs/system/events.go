package system

import (
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
)

// UI events consumed by HUDSystem.
const (
	EventShowEnemyHealth ecs.EventType = "ui.show_enemy_health"
	EventHideEnemyHealth ecs.EventType = "ui.hide_enemy_health"
	EventEnemyLocation   ecs.EventType = "ui.enemy_location"
	EventMessage         ecs.EventType = "ui.message"
)

// Gameplay events.
const (
	EventDamage          ecs.EventType = "combat.damage"
	EventDied            ecs.EventType = "combat.died"
	EventPickupCollected ecs.EventType = "pickup.collected"
	EventWeaponEquipped  ecs.EventType = "weapon.equipped"
)

// DamageEvent asks DamageSystem to hurt Target on behalf of Causer.
type DamageEvent struct {
	Target uint64
	Causer uint64
	Amount float64
}

// DiedEvent reports an entity entering its death state.
type DiedEvent struct {
	Entity uint64
	Causer uint64
}

// PickupEvent reports a collected pickup.
type PickupEvent struct {
	Collector uint64
	Location  common.Vec3
	Kind      string
}

// EnemyLocationEvent carries the cached combat target location and its
// health fraction for the enemy health bar.
type EnemyLocationEvent struct {
	Location common.Vec3
	Health   float64
}
