// Package vec3 implements the 3D vector and color arithmetic shared by every
// other package in the tracer.
package vec3

import "math"

// Vec3 is a triple of 64-bit floats. It is used both as a spatial vector and,
// aliased as Color, as a linear-light RGB triple.
type Vec3 [3]float64

// Color is a Vec3 used to hold linear-light RGB radiance.
type Color = Vec3

// New returns the vector (x, y, z).
func New(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Mul returns the componentwise product v*u.
func (v Vec3) Mul(u Vec3) Vec3 {
	return Vec3{v[0] * u[0], v[1] * u[1], v[2] * u[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div returns v scaled by 1/s.
func (v Vec3) Div(s float64) Vec3 {
	return v.Scale(1 / s)
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Cross returns the cross product v×u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// LengthSquared returns the squared length of v.
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// NearZero reports whether every component of v is close to zero.
// Used to guard Lambertian scatter against a degenerate direction.
func (v Vec3) NearZero() bool {
	const eps = 1e-8
	return math.Abs(v[0]) < eps && math.Abs(v[1]) < eps && math.Abs(v[2]) < eps
}

// Unit returns v normalized to unit length. Undefined (and not guarded
// against) for a zero-length v; callers must not call Unit on a zero vector.
func (v Vec3) Unit() Vec3 {
	return v.Div(v.Length())
}

// Min returns the componentwise minimum of v and u.
func (v Vec3) Min(u Vec3) Vec3 {
	return Vec3{math.Min(v[0], u[0]), math.Min(v[1], u[1]), math.Min(v[2], u[2])}
}

// Max returns the componentwise maximum of v and u.
func (v Vec3) Max(u Vec3) Vec3 {
	return Vec3{math.Max(v[0], u[0]), math.Max(v[1], u[1]), math.Max(v[2], u[2])}
}

// Reflect returns v reflected about the unit normal n.
func Reflect(v, n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Refract returns uv refracted through the unit normal n with ratio of
// refractive indices etaiOverEtat, per Snell's law.
func Refract(uv, n Vec3, etaiOverEtat float64) Vec3 {
	cosTheta := math.Min(uv.Neg().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Scale(cosTheta)).Scale(etaiOverEtat)
	rOutParallel := n.Scale(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// RotateAxisAngle returns v rotated by angle (radians) around the unit axis,
// using the Rodrigues rotation formula (the quaternion-rotation contract
// from the data model, without carrying a quaternion type through the rest
// of the package).
func (v Vec3) RotateAxisAngle(axis Vec3, angle float64) Vec3 {
	sinA, cosA := math.Sincos(angle)
	return v.Scale(cosA).
		Add(axis.Cross(v).Scale(sinA)).
		Add(axis.Scale(axis.Dot(v) * (1 - cosA)))
}
