package common

import "math"

const smallNumber = 1e-8

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Vec3 is a world-space vector. Z is up; the physics plane is X/Y.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) LenSquared() float64 {
	return v.Dot(v)
}

// Dist is the Euclidean distance between two points.
func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

func (v Vec3) IsNearlyZero() bool {
	return v.LenSquared() < 1e-8
}

// Normalize returns the unit vector, or the zero vector for tiny inputs.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < smallNumber {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// ClampMaxSize shortens v to at most max.
func (v Vec3) ClampMaxSize(max float64) Vec3 {
	if max < smallNumber {
		return Vec3{}
	}
	l := v.Len()
	if l > max {
		return v.Scale(max / l)
	}
	return v
}

// Rotator holds Euler angles in degrees.
type Rotator struct {
	Pitch float64 `yaml:"pitch"`
	Yaw   float64 `yaml:"yaw"`
	Roll  float64 `yaml:"roll"`
}

// NormalizeAxis maps an angle into (-180, 180].
func NormalizeAxis(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg > 180 {
		deg -= 360
	}
	return deg
}

func (r Rotator) Normalize() Rotator {
	return Rotator{Pitch: NormalizeAxis(r.Pitch), Yaw: NormalizeAxis(r.Yaw), Roll: NormalizeAxis(r.Roll)}
}

// Forward returns the unit vector on the ground plane for the yaw.
func (r Rotator) Forward() Vec3 {
	rad := r.Yaw * math.Pi / 180
	return Vec3{X: math.Cos(rad), Y: math.Sin(rad)}
}

// Right returns the ground-plane unit vector 90 degrees clockwise of Forward.
func (r Rotator) Right() Vec3 {
	rad := (r.Yaw + 90) * math.Pi / 180
	return Vec3{X: math.Cos(rad), Y: math.Sin(rad)}
}

// LookAtYaw returns a rotator facing from -> to with pitch and roll zeroed.
func LookAtYaw(from, to Vec3) Rotator {
	d := to.Sub(from)
	if math.Abs(d.X) < smallNumber && math.Abs(d.Y) < smallNumber {
		return Rotator{}
	}
	return Rotator{Yaw: math.Atan2(d.Y, d.X) * 180 / math.Pi}
}

// RInterpTo moves current toward target along the shortest arc per axis at
// speed per second. A non-positive speed snaps to target.
func RInterpTo(current, target Rotator, dt, speed float64) Rotator {
	if dt <= 0 {
		return current
	}
	if speed <= 0 {
		return target
	}
	delta := Rotator{
		Pitch: NormalizeAxis(target.Pitch - current.Pitch),
		Yaw:   NormalizeAxis(target.Yaw - current.Yaw),
		Roll:  NormalizeAxis(target.Roll - current.Roll),
	}
	if math.Abs(delta.Pitch) < 1e-4 && math.Abs(delta.Yaw) < 1e-4 && math.Abs(delta.Roll) < 1e-4 {
		return target
	}
	alpha := Clamp(dt*speed, 0, 1)
	return Rotator{
		Pitch: current.Pitch + delta.Pitch*alpha,
		Yaw:   current.Yaw + delta.Yaw*alpha,
		Roll:  current.Roll + delta.Roll*alpha,
	}.Normalize()
}

// InterpYawTo interpolates only the yaw of current toward target's yaw,
// leaving pitch and roll untouched.
func InterpYawTo(current, target Rotator, dt, speed float64) Rotator {
	next := RInterpTo(Rotator{Yaw: current.Yaw}, Rotator{Yaw: target.Yaw}, dt, speed)
	current.Yaw = next.Yaw
	return current
}

// VInterpTo moves current toward target proportionally to the remaining
// distance at speed per second.
func VInterpTo(current, target Vec3, dt, speed float64) Vec3 {
	if speed <= 0 {
		return target
	}
	dist := target.Sub(current)
	if dist.LenSquared() < 1e-8 {
		return target
	}
	return current.Add(dist.Scale(Clamp(dt*speed, 0, 1)))
}

// SlideAlongSurface projects the unconsumed part of delta onto the plane of a
// blocking surface. remaining is the fraction of the move left after impact.
func SlideAlongSurface(delta, normal Vec3, remaining float64) Vec3 {
	n := normal.Normalize()
	slide := delta.Sub(n.Scale(delta.Dot(n)))
	return slide.Scale(Clamp(remaining, 0, 1))
}

// RInterpConstantYaw turns current's yaw toward yaw at a fixed rate in
// degrees per second.
func RInterpConstantYaw(current Rotator, yaw, dt, rate float64) Rotator {
	if dt <= 0 {
		return current
	}
	delta := NormalizeAxis(yaw - current.Yaw)
	step := rate * dt
	if rate <= 0 || math.Abs(delta) <= step {
		current.Yaw = NormalizeAxis(yaw)
		return current
	}
	if delta < 0 {
		step = -step
	}
	current.Yaw = NormalizeAxis(current.Yaw + step)
	return current
}

// FInterpTo moves current toward target proportionally to the remaining
// distance at speed per second.
func FInterpTo(current, target, dt, speed float64) float64 {
	if speed <= 0 {
		return target
	}
	d := target - current
	if d*d < 1e-8 {
		return target
	}
	return current + d*Clamp(dt*speed, 0, 1)
}
