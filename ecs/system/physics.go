package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

const (
	categoryWall uint = 1 << iota
	categoryActor
	categoryItem
)

const (
	// orientRate is how fast a character turns to face its movement, in
	// degrees per second.
	orientRate = 540.0
	// stepUp is the highest ledge a character climbs onto without jumping.
	stepUp = 50.0
	// skinWidth keeps swept bodies from resting exactly on a surface.
	skinWidth = 0.01
)

var (
	wallQueryFilter  = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryWall)
	actorQueryFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryActor)
	itemQueryFilter  = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categoryItem)
	disabledFilter   = cp.NewShapeFilter(cp.NO_GROUP, 0, 0)
)

// PhysicsSystem is the movement and overlap collaborator. Bodies are
// kinematic: the system places them from Transforms, sweeps actor moves
// against walls and fills Overlaps from point queries.
type PhysicsSystem struct {
	space  *cp.Space
	bodies map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:  cp.NewSpace(),
		bodies: make(map[ecs.Entity]*bodyInfo),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Reset drops every body; used when the world is rebuilt for a new level.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.space = cp.NewSpace()
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.Reset()
	}
	dt := w.Delta()

	ps.cleanupEntities(w)
	ps.syncEntities(w)
	ps.moveActors(w, dt)

	ps.space.Step(dt)

	ps.collectOverlaps(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, tf *component.Transform) {
		info := ps.bodies[e]
		if info == nil {
			info = ps.createBodyInfo(e, pb, tf)
			ps.bodies[e] = info
			pb.Body = info.body
			pb.Shape = info.shape
		}
		if info.static {
			if pb.Disabled {
				info.shape.SetFilter(disabledFilter)
			} else {
				info.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryWall, cp.ALL_CATEGORIES))
			}
			return
		}
		info.body.SetPosition(cp.Vector{X: tf.Position.X, Y: tf.Position.Y})
		if pb.Kind == component.BodyItem {
			ps.syncItemFilter(w, e, info)
		}
	})
}

// syncItemFilter hides equipped weapons from item queries.
func (ps *PhysicsSystem) syncItemFilter(w *ecs.World, e ecs.Entity, info *bodyInfo) {
	if wp, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok && wp.State == component.WeaponEquipped {
		info.shape.SetFilter(disabledFilter)
		return
	}
	info.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryItem, cp.ALL_CATEGORIES))
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, pb *component.PhysicsBody, tf *component.Transform) *bodyInfo {
	pos := cp.Vector{X: tf.Position.X, Y: tf.Position.Y}

	if pb.Kind == component.BodyWall {
		radius := pb.Radius
		if radius <= 0 {
			radius = 1
		}
		shape := cp.NewSegment(ps.space.StaticBody, pos, cp.Vector{X: pb.SegmentTo.X, Y: pb.SegmentTo.Y}, radius)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryWall, cp.ALL_CATEGORIES))
		shape.UserData = e
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	body := cp.NewKinematicBody()
	body.SetPosition(pos)
	ps.space.AddBody(body)

	var shape *cp.Shape
	if pb.Kind == component.BodyPlatform && pb.Width > 0 && pb.Height > 0 {
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	} else {
		radius := pb.Radius
		if radius <= 0 {
			radius = 16
		}
		shape = cp.NewCircle(body, radius, cp.Vector{})
	}
	switch pb.Kind {
	case component.BodyItem:
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryItem, cp.ALL_CATEGORIES))
	case component.BodyActor:
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryActor, cp.ALL_CATEGORIES))
	default:
		shape.SetFilter(disabledFilter)
	}
	shape.UserData = e
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) moveActors(w *ecs.World, dt float64) {
	if dt <= 0 {
		return
	}
	ecs.ForEach3(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, mv *component.Movement, tf *component.Transform, pb *component.PhysicsBody) {
		pos := tf.Position

		if mv.JumpRequested && mv.Grounded {
			mv.VerticalSpeed = mv.JumpSpeed
			mv.Grounded = false
		}
		mv.JumpRequested = false
		mv.VerticalSpeed -= mv.Gravity * dt
		pos.Z += mv.VerticalSpeed * dt

		delta := mv.Direction.Scale(mv.MaxSpeed * dt)
		delta.Z = 0
		var hit component.BlockingHit
		pos, hit = ps.moveAndSlide(pos, delta, pb.Radius)
		mv.LastHit = hit

		floor := floorHeight(w, pos)
		if pos.Z <= floor {
			pos.Z = floor
			mv.VerticalSpeed = 0
			mv.Grounded = true
		} else {
			mv.Grounded = false
		}

		interp := false
		if ct, ok := ecs.Get(w, e, component.CombatTargetComponent.Kind()); ok {
			interp = ct.InterpEnabled && ct.HasTarget
		}
		if !interp && !delta.IsNearlyZero() {
			tf.Rotation = common.RInterpConstantYaw(tf.Rotation, math.Atan2(delta.Y, delta.X)*180/math.Pi, dt, orientRate)
		}

		tf.Position = pos
		if pb.Body != nil {
			pb.Body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		}
	})
}

// sweep casts a circle of radius along delta against enabled walls.
func (ps *PhysicsSystem) sweep(from, delta common.Vec3, radius float64) component.BlockingHit {
	if delta.IsNearlyZero() {
		return component.BlockingHit{}
	}
	to := from.Add(delta)
	info := ps.space.SegmentQueryFirst(cp.Vector{X: from.X, Y: from.Y}, cp.Vector{X: to.X, Y: to.Y}, radius, wallQueryFilter)
	if info.Shape == nil {
		return component.BlockingHit{}
	}
	return component.BlockingHit{
		Blocked: true,
		Normal:  common.Vec3{X: info.Normal.X, Y: info.Normal.Y},
		Time:    info.Alpha,
	}
}

// moveAndSlide moves as far as delta allows; on a blocking hit the rest of
// the move slides along the surface.
func (ps *PhysicsSystem) moveAndSlide(pos, delta common.Vec3, radius float64) (common.Vec3, component.BlockingHit) {
	hit := ps.sweep(pos, delta, radius)
	if !hit.Blocked {
		return pos.Add(delta), hit
	}
	pos = pos.Add(delta.Scale(hit.Time)).Add(hit.Normal.Scale(skinWidth))

	slide := common.SlideAlongSurface(delta, hit.Normal, 1-hit.Time)
	if second := ps.sweep(pos, slide, radius); second.Blocked {
		pos = pos.Add(slide.Scale(second.Time)).Add(second.Normal.Scale(skinWidth))
	} else {
		pos = pos.Add(slide)
	}
	return pos, hit
}

// floorHeight is the highest platform top under pos that pos can stand on,
// or zero for the ground.
func floorHeight(w *ecs.World, pos common.Vec3) float64 {
	floor := 0.0
	ecs.ForEach3(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, _ *component.Platform, tf *component.Transform, pb *component.PhysicsBody) {
		if math.Abs(pos.X-tf.Position.X) > pb.Width/2 || math.Abs(pos.Y-tf.Position.Y) > pb.Height/2 {
			return
		}
		top := tf.Position.Z
		if pos.Z >= top-stepUp && top > floor {
			floor = top
		}
	})
	return floor
}

func (ps *PhysicsSystem) collectOverlaps(w *ecs.World) {
	ecs.ForEach3(w, component.OverlapsComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ov *component.Overlaps, pb *component.PhysicsBody, tf *component.Transform) {
		at := cp.Vector{X: tf.Position.X, Y: tf.Position.Y}

		var enemies []uint64
		if pb.DetectRadius > 0 {
			ps.space.PointQuery(at, pb.DetectRadius, actorQueryFilter, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
				other, ok := shape.UserData.(ecs.Entity)
				if !ok || other == e || !ecs.IsAlive(w, other) || !ecs.Has(w, other, component.EnemyComponent.Kind()) {
					return
				}
				enemies = append(enemies, other.Handle())
			}, nil)
		}
		// Handle order makes PickNearest ties resolve to the lowest handle.
		sort.Slice(enemies, func(i, j int) bool { return enemies[i] < enemies[j] })
		ov.EnemiesChanged = !sameHandles(ov.Enemies, enemies)
		ov.Enemies = enemies

		var items []uint64
		if pb.PickupRadius > 0 {
			ps.space.PointQuery(at, pb.PickupRadius, itemQueryFilter, func(shape *cp.Shape, _ cp.Vector, _ float64, _ cp.Vector, _ interface{}) {
				other, ok := shape.UserData.(ecs.Entity)
				if !ok || other == e || !ecs.IsAlive(w, other) {
					return
				}
				items = append(items, other.Handle())
			}, nil)
		}
		sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
		ov.Items = items

		updateActiveOverlap(w, e, tf.Position, items)
	})
}

// updateActiveOverlap picks the nearest pickup-state weapon as the item the
// primary action would equip, and highlights every weapon in range.
func updateActiveOverlap(w *ecs.World, e ecs.Entity, pos common.Vec3, items []uint64) {
	active, ok := ecs.Get(w, e, component.ActiveOverlapComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach(w, component.WeaponComponent.Kind(), func(_ ecs.Entity, wp *component.Weapon) {
		wp.Highlighted = false
	})

	best := uint64(0)
	bestDist := math.Inf(1)
	for _, h := range items {
		item := ecs.FromHandle(h)
		wp, ok := ecs.Get(w, item, component.WeaponComponent.Kind())
		if !ok || wp.State != component.WeaponPickUp {
			continue
		}
		wp.Highlighted = true
		tf, ok := ecs.Get(w, item, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if d := tf.Position.Dist(pos); d < bestDist {
			best = h
			bestDist = d
		}
	}
	active.Item = best
}

func sameHandles(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
