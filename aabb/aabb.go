// Package aabb implements the axis-aligned bounding box and its slab
// intersection test.
package aabb

import (
	"math"

	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// AABB is an axis-aligned bounding box with componentwise Min <= Max.
type AABB struct {
	min vec3.Vec3
	max vec3.Vec3
}

// New returns the AABB spanning a and b, reordering components so that
// Min <= Max on every axis regardless of the order a and b are given in.
func New(a, b vec3.Vec3) AABB {
	return AABB{min: a.Min(b), max: a.Max(b)}
}

// Min returns the box's minimum corner.
func (b AABB) Min() vec3.Vec3 { return b.min }

// Max returns the box's maximum corner.
func (b AABB) Max() vec3.Vec3 { return b.max }

// Hit reports whether r intersects the box within the parametric interval
// [tMin, tMax], using the slab method on each axis in turn. A zero
// direction component produces a ±Inf invD; the resulting infinite interval
// update is either a no-op or makes the test a miss, which is the desired
// behavior without any special-casing.
func (b AABB) Hit(r ray.Ray, tMin, tMax float64) bool {
	origin := r.Origin()
	dir := r.Direction()
	for a := 0; a < 3; a++ {
		invD := 1 / dir[a]
		t0 := (b.min[a] - origin[a]) * invD
		t1 := (b.max[a] - origin[a]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false
		}
	}
	return true
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{min: a.min.Min(b.min), max: a.max.Max(b.max)}
}

// Empty returns a degenerate AABB that contains no point; useful as a fold
// seed when unioning over a possibly-empty collection.
func Empty() AABB {
	inf := math.Inf(1)
	return AABB{min: vec3.New(inf, inf, inf), max: vec3.New(-inf, -inf, -inf)}
}
