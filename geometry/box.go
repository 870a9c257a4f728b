package geometry

import (
	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Box is an axis-aligned box built from six rectangles, tested against in
// turn with the closest hit winning. Rectangle coordinates are absolute
// (already positioned), matching the rectangles' own convention of
// ignoring the owner's Pos().
type Box struct {
	Min, Max vec3.Vec3
	sides    [6]Primitive
}

// NewBox returns a box spanning [min,max].
func NewBox(min, max vec3.Vec3) *Box {
	return &Box{
		Min: min,
		Max: max,
		sides: [6]Primitive{
			NewXYRect(min.X(), max.X(), min.Y(), max.Y(), max.Z()),
			NewXYRect(min.X(), max.X(), min.Y(), max.Y(), min.Z()),
			NewXZRect(min.X(), max.X(), min.Z(), max.Z(), max.Y()),
			NewXZRect(min.X(), max.X(), min.Z(), max.Z(), min.Y()),
			NewYZRect(min.Y(), max.Y(), min.Z(), max.Z(), max.X()),
			NewYZRect(min.Y(), max.Y(), min.Z(), max.Z(), min.X()),
		},
	}
}

// ObjHit implements Primitive.
func (b *Box) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	var rec HitRecord
	hitAny := false
	closest := tMax
	for _, side := range b.sides {
		if hr, ok := side.ObjHit(owner, r, tMin, closest); ok {
			closest = hr.T
			rec = hr
			hitAny = true
		}
	}
	return rec, hitAny
}

// CreateBoundingBox implements Primitive.
func (b *Box) CreateBoundingBox(vec3.Vec3, float64, float64) aabb.AABB {
	return aabb.New(b.Min, b.Max)
}

// UpdatePos implements Primitive, shifting every side plus the cached
// min/max corners.
func (b *Box) UpdatePos(delta vec3.Vec3) {
	for _, side := range b.sides {
		side.UpdatePos(delta)
	}
	b.Min = b.Min.Add(delta)
	b.Max = b.Max.Add(delta)
}

// Clone implements Primitive, deep-copying every side.
func (b *Box) Clone() Primitive {
	clone := &Box{Min: b.Min, Max: b.Max}
	for i, side := range b.sides {
		clone.sides[i] = side.Clone()
	}
	return clone
}
