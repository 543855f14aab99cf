package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	barWidth  = 220
	barHeight = 14
	// heightTint is how many world units of Z lighten a shape fully.
	heightTint = 600.0
)

// RenderSystem draws the world top-down from the camera, then the HUD.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	var cam *component.Camera
	if camEntity, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		cam, _ = ecs.Get(w, camEntity, component.CameraComponent.Kind())
	}
	if cam != nil {
		b := screen.Bounds()
		cam.ViewW, cam.ViewH = float64(b.Dx()), float64(b.Dy())
	}

	screen.Fill(colornames.Darkslategray)

	r.drawPlatforms(w, screen, cam)
	r.drawSwitches(w, screen, cam)
	r.drawWalls(w, screen, cam)
	r.drawTransitions(w, screen, cam)
	r.drawPickups(w, screen, cam)
	r.drawWeapons(w, screen, cam)
	r.drawActors(w, screen, cam)
	r.drawHUD(w, screen, cam)
}

func (r *RenderSystem) drawWalls(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, tf *component.Transform) {
		if pb.Kind != component.BodyWall {
			return
		}
		clr := color.Color(colornames.Lightgray)
		if pb.Disabled {
			clr = colornames.Dimgray
		}
		x1, y1 := cam.ToScreen(tf.Position)
		x2, y2 := cam.ToScreen(pb.SegmentTo)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(cam.Scale(pb.Radius*2)), clr, true)
	})
}

func (r *RenderSystem) drawPlatforms(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, _ *component.Platform, tf *component.Transform, pb *component.PhysicsBody) {
		x, y := cam.ToScreen(tf.Position.Sub(common.Vec3{X: pb.Width / 2, Y: pb.Height / 2}))
		ww, hh := cam.Scale(pb.Width), cam.Scale(pb.Height)
		vector.FillRect(screen, float32(x), float32(y), float32(ww), float32(hh), tint(colornames.Saddlebrown, tf.Position.Z), true)
		vector.StrokeRect(screen, float32(x), float32(y), float32(ww), float32(hh), 2, colornames.Burlywood, true)
	})
}

func (r *RenderSystem) drawSwitches(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach(w, component.FloorSwitchComponent.Kind(), func(_ ecs.Entity, fs *component.FloorSwitch) {
		x, y := cam.ToScreen(fs.InitialSwitch.Sub(fs.HalfExtents))
		ww, hh := cam.Scale(fs.HalfExtents.X*2), cam.Scale(fs.HalfExtents.Y*2)
		clr := color.Color(colornames.Goldenrod)
		if fs.CharacterOnSwitch {
			clr = colornames.Gold
		}
		vector.FillRect(screen, float32(x), float32(y), float32(ww), float32(hh), clr, true)
	})
}

func (r *RenderSystem) drawTransitions(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach2(w, component.TransitionComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tr *component.Transition, tf *component.Transform) {
		x, y := cam.ToScreen(tf.Position)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(cam.Scale(tr.Radius)), 2, colornames.Mediumpurple, true)
		ebitenutil.DebugPrintAt(screen, tr.TargetLevel, int(x)-16, int(y)-6)
	})
}

func (r *RenderSystem) drawPickups(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, tf *component.Transform) {
		x, y := cam.ToScreen(tf.Position)
		clr := color.Color(colornames.Gold)
		if p.Kind == component.PickupPotion {
			clr = colornames.Crimson
		}
		vector.FillCircle(screen, float32(x), float32(y), float32(cam.Scale(p.Radius)), tint(clr, tf.Position.Z), true)
	})
}

func (r *RenderSystem) drawWeapons(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon, tf *component.Transform) {
		if wp.State == component.WeaponEquipped {
			return
		}
		x, y := cam.ToScreen(tf.Position)
		end := tf.Position.Add(common.Vec3{X: wp.Reach / 2})
		ex, ey := cam.ToScreen(end)
		clr := color.Color(colornames.Silver)
		if wp.Highlighted {
			clr = colornames.White
			vector.StrokeCircle(screen, float32(x), float32(y), float32(cam.Scale(wp.Reach/2)), 1, colornames.Yellow, true)
		}
		vector.StrokeLine(screen, float32(x), float32(y), float32(ex), float32(ey), 4, clr, true)
		ebitenutil.DebugPrintAt(screen, wp.Name, int(x), int(y)+8)
	})
}

func (r *RenderSystem) drawActors(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tf *component.Transform) {
		if pb.Kind != component.BodyActor {
			return
		}
		clr := color.Color(colornames.Steelblue)
		if ecs.Has(w, e, component.EnemyTagComponent.Kind()) {
			clr = colornames.Indianred
		}
		if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.IsDead() {
			clr = colornames.Gray
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !h.IsAlive() {
			clr = colornames.Gray
		}

		x, y := cam.ToScreen(tf.Position)
		radius := cam.Scale(pb.Radius)
		vector.FillCircle(screen, float32(x), float32(y), float32(radius), tint(clr, tf.Position.Z), true)

		facing := tf.Position.Add(tf.Rotation.Forward().Scale(pb.Radius * 1.6))
		fx, fy := cam.ToScreen(facing)
		vector.StrokeLine(screen, float32(x), float32(y), float32(fx), float32(fy), 3, colornames.White, true)

		if _, weapon, ok := EquippedWeapon(w, e); ok {
			reach := tf.Position.Add(tf.Rotation.Forward().Scale(weapon.Reach))
			rx, ry := cam.ToScreen(reach)
			clr := color.Color(colornames.Silver)
			if weapon.CollisionActive {
				clr = colornames.Orangered
			}
			vector.StrokeLine(screen, float32(x), float32(y), float32(rx), float32(ry), 2, clr, true)
		}
	})
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image, cam *component.Camera) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if c, ok := ecs.Get(w, player, component.CharacterComponent.Kind()); ok {
		drawBar(screen, 16, 16, barWidth, c.Health/c.MaxHealth, colornames.Firebrick)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("HP %.0f/%.0f", c.Health, c.MaxHealth), 16+barWidth+8, 14)

		staminaFrac := 0.0
		if c.MaxStamina > 0 {
			staminaFrac = c.Stamina / c.MaxStamina
		}
		staminaClr := color.Color(colornames.Limegreen)
		switch c.StaminaStatus {
		case component.StaminaBelowMinimum:
			staminaClr = colornames.Yellow
		case component.StaminaExhausted, component.StaminaExhaustedRecovering:
			staminaClr = colornames.Orangered
		}
		drawBar(screen, 16, 36, barWidth, staminaFrac, staminaClr)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ST %.0f/%.0f", c.Stamina, c.MaxStamina), 16+barWidth+8, 34)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Coins %d", c.Coins), 16, 56)
	}

	hudEnt, ok := ecs.First(w, component.HUDComponent.Kind())
	if !ok {
		return
	}
	hud, _ := ecs.Get(w, hudEnt, component.HUDComponent.Kind())
	if hud.EnemyHealthVisible {
		x, y := cam.ToScreen(hud.EnemyLocation)
		drawBar(screen, float32(x)-barWidth/4, float32(y)-float32(cam.Scale(90)), barWidth/2, hud.EnemyHealthFraction, colornames.Orangered)
	}
	if hud.Message != "" {
		b := screen.Bounds()
		ebitenutil.DebugPrintAt(screen, hud.Message, b.Dx()/2-len(hud.Message)*3, b.Dy()-40)
	}
}

func drawBar(screen *ebiten.Image, x, y, bw float32, frac float64, clr color.Color) {
	frac = common.Clamp(frac, 0, 1)
	vector.FillRect(screen, x, y, bw, barHeight, colornames.Black, false)
	vector.FillRect(screen, x, y, bw*float32(frac), barHeight, clr, false)
	vector.StrokeRect(screen, x, y, bw, barHeight, 1, colornames.White, false)
}

// tint lightens clr with height so raised shapes read as closer.
func tint(clr color.Color, z float64) color.Color {
	r, g, b, a := clr.RGBA()
	t := common.Clamp(z/heightTint, 0, 1) * 0.5
	mix := func(v uint32) uint8 {
		f := float64(v>>8) + (255-float64(v>>8))*t
		return uint8(f)
	}
	return color.RGBA{R: mix(r), G: mix(g), B: mix(b), A: uint8(a >> 8)}
}
