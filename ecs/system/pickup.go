package system

import (
	"fmt"
	"log"
	"math"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

const (
	defaultBobAmplitude = 12.0
	defaultBobSpeed     = 3.0
	pickupMessageTime   = 2.0
)

// PickupSystem bobs collectibles in place and hands them to any character
// whose item overlap contains them.
type PickupSystem struct{}

func NewPickupSystem() *PickupSystem { return &PickupSystem{} }

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pickup *component.Pickup, t *component.Transform) {
		if pickup.BobAmplitude == 0 {
			pickup.BobAmplitude = defaultBobAmplitude
			pickup.BaseZ = t.Position.Z
		}
		if pickup.BobSpeed == 0 {
			pickup.BobSpeed = defaultBobSpeed
		}
		pickup.BobPhase += pickup.BobSpeed * dt
		t.Position.Z = pickup.BaseZ + math.Sin(pickup.BobPhase)*pickup.BobAmplitude
	})

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.OverlapsComponent.Kind(), func(collector ecs.Entity, c *component.Character, ov *component.Overlaps) {
		if c.IsDead() {
			return
		}
		for _, h := range ov.Items {
			item := ecs.FromHandle(h)
			pickup, ok := ecs.Get(w, item, component.PickupComponent.Kind())
			if !ok {
				continue
			}
			Collect(w, collector, item, pickup)
		}
	})
}

// Collect applies pickup to collector, records where it happened and removes
// the pickup from the world.
func Collect(w *ecs.World, collector, item ecs.Entity, pickup *component.Pickup) {
	if w == nil || pickup == nil || !ecs.IsAlive(w, item) {
		return
	}
	c, ok := ecs.Get(w, collector, component.CharacterComponent.Kind())
	if !ok {
		return
	}

	var msg string
	switch pickup.Kind {
	case component.PickupCoin:
		n := pickup.Count
		if n <= 0 {
			n = 1
		}
		c.AddCoins(n)
		msg = fmt.Sprintf("+%d coin (total %d)", n, c.Coins)
	case component.PickupPotion:
		c.Heal(pickup.Amount)
		msg = fmt.Sprintf("+%.0f health", pickup.Amount)
	default:
		log.Printf("pickup: entity=%v unknown kind %q", item, pickup.Kind)
		return
	}

	var at common.Vec3
	if tf, ok := ecs.Get(w, item, component.TransformComponent.Kind()); ok {
		at = tf.Position
	}
	if plog, ok := ecs.Get(w, collector, component.PickupLogComponent.Kind()); ok {
		plog.Record(at)
	}

	w.Events().Emit(EventPickupCollected, PickupEvent{
		Collector: collector.Handle(),
		Location:  at,
		Kind:      string(pickup.Kind),
	})
	w.Events().Emit(EventMessage, msg)

	log.Printf("pickup: entity=%v kind=%s collector=%v", item, pickup.Kind, collector)
	ecs.DestroyEntity(w, item)
}
