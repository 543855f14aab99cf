package system

import (
	"log"

	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// TransitionSystem detects when the player enters a level exit and requests
// a level change by spawning a one-shot request entity.
type TransitionSystem struct{}

func NewTransitionSystem() *TransitionSystem { return &TransitionSystem{} }

func (ts *TransitionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	// A request is already waiting for PersistenceSystem.
	if _, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind()); ok {
		return
	}

	player, pos, alive := findPlayer(w)
	if !alive {
		return
	}

	radius := 0.0
	if pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		radius = pb.Radius
	}

	for _, ent := range ecs.Query(w, component.TransitionComponent.Kind(), component.TransformComponent.Kind()) {
		tr, _ := ecs.Get(w, ent, component.TransitionComponent.Kind())
		tf, _ := ecs.Get(w, ent, component.TransformComponent.Kind())
		if tr.TargetLevel == "" {
			continue
		}
		d := pos.Sub(tf.Position)
		d.Z = 0
		if d.Len() > tr.Radius+radius {
			continue
		}

		log.Printf("transition: entity=%v target=%s", ent, tr.TargetLevel)
		if err := Request(w, component.LevelChangeRequestComponent.Kind(), component.LevelChangeRequest{TargetLevel: tr.TargetLevel}); err != nil {
			log.Printf("transition: request level change: %v", err)
		}
		return
	}
}
