package system

import (
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward a point just ahead of the player.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	tf, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	target := tf.Position.Add(tf.Rotation.Forward().Scale(cam.LookAhead))
	target.Z = 0
	cam.Center = common.VInterpTo(cam.Center, target, w.Delta(), cam.Smoothness)
}
