package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

const debugCircleSegments = 20

var (
	debugWallColor     = cp.FColor{R: 0.9, G: 0.9, B: 0.2, A: 0.9}
	debugActorColor    = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	debugItemColor     = cp.FColor{R: 0.3, G: 0.6, B: 1, A: 0.9}
	debugDisabledColor = cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.4}
)

// DrawPhysicsDebug outlines every shape in the space, colored by its
// collision category. Disabled shapes (open doors, equipped weapons) are
// drawn grey.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, cam: debugCamera(w)})
}

// DrawPlayerStateDebug prints the player's status machines and combat state.
func DrawPlayerStateDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	c, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	if !ok {
		return
	}
	attack := "idle"
	if seq, ok := ecs.Get(w, player, component.AttackSequencerComponent.Kind()); ok && seq.Attacking() {
		attack = seq.Current.Section
	}
	target := "none"
	if ct, ok := ecs.Get(w, player, component.CombatTargetComponent.Kind()); ok && ct.HasTarget {
		target = fmt.Sprintf("%v interp=%v", ecs.FromHandle(ct.Target), ct.InterpEnabled)
	}
	grounded := false
	if mv, ok := ecs.Get(w, player, component.MovementComponent.Kind()); ok {
		grounded = mv.Grounded
	}
	text := fmt.Sprintf("Movement: %s\nStamina: %s (%.0f)\nMaxSpeed: %.0f\nAttack: %s\nTarget: %s\nGrounded: %v\nTPS: %.0f",
		c.MovementStatus, c.StaminaStatus, c.Stamina, c.MaxSpeed, attack, target, grounded, ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, text, screen.Bounds().Dx()-240, 10)
}

// physicsDebugDrawer implements cp.Drawer on top of the top-down camera.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	cam    *component.Camera
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.circle(pos, radius, outline)
	d.line(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fill)
}

// DrawFatSegment draws walls at their collision thickness.
func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	width := d.cam.Scale(radius * 2)
	if width < 1 {
		width = 1
	}
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), toNRGBA(outline, 0.35), true)
	d.line(a, b, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 || count > len(verts) {
		return
	}
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	x, y := d.toScreen(pos)
	vector.FillCircle(d.screen, float32(x), float32(y), float32(math.Max(size, 2)), toNRGBA(fill, 1), true)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return debugActorColor
}

// ShapeColor maps the shape's collision category to a debug color.
func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return debugColorFor(shape.Filter.Categories)
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return debugDisabledColor
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) line(a, b cp.Vector, clr cp.FColor) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(clr, 1), true)
}

func (d *physicsDebugDrawer) circle(center cp.Vector, radius float64, clr cp.FColor) {
	if radius <= 0 {
		return
	}
	prev := center.Add(cp.Vector{X: radius})
	for i := 1; i <= debugCircleSegments; i++ {
		t := 2 * math.Pi * float64(i) / debugCircleSegments
		next := center.Add(cp.ForAngle(t).Mult(radius))
		d.line(prev, next, clr)
		prev = next
	}
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return d.cam.ToScreen(common.Vec3{X: v.X, Y: v.Y})
}

func debugColorFor(categories uint) cp.FColor {
	switch {
	case categories&categoryWall != 0:
		return debugWallColor
	case categories&categoryActor != 0:
		return debugActorColor
	case categories&categoryItem != 0:
		return debugItemColor
	default:
		return debugDisabledColor
	}
}

// toNRGBA converts a cp color, scaling its alpha by alpha.
func toNRGBA(c cp.FColor, alpha float32) color.NRGBA {
	return color.NRGBA{
		R: unitByte(c.R),
		G: unitByte(c.G),
		B: unitByte(c.B),
		A: unitByte(c.A * alpha),
	}
}

func unitByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

func debugCamera(w *ecs.World) *component.Camera {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	return cam
}
