package geom

import "math"

// Vec3 is a 3-component vector. Value type, no identity.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Norm2() float64       { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Norm() float64        { return math.Sqrt(v.Norm2()) }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Normalize() Vec3 {
	if l := v.Norm(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}

// AddScaled returns v + s*o, the fused form every integrator loop needs.
func (v Vec3) AddScaled(s float64, o Vec3) Vec3 {
	return Vec3{v.X + s*o.X, v.Y + s*o.Y, v.Z + s*o.Z}
}

func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
