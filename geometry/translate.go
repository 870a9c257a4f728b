package geometry

import (
	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Translate wraps a child primitive, offsetting it by a fixed vector.
type Translate struct {
	Offset vec3.Vec3
	object Primitive
}

// NewTranslate returns object shifted by offset.
func NewTranslate(object Primitive, offset vec3.Vec3) *Translate {
	return &Translate{Offset: offset, object: object}
}

// ObjHit implements Primitive: the ray is moved by -Offset into the
// child's local space, and the resulting hit point is translated back.
func (t *Translate) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	moved := ray.New(r.Origin().Sub(t.Offset), r.Direction(), r.Time())
	rec, ok := t.object.ObjHit(owner, moved, tMin, tMax)
	if !ok {
		return HitRecord{}, false
	}
	rec.Point = rec.Point.Add(t.Offset)
	rec.SetFaceNormal(moved, rec.Normal)
	return rec, true
}

// CreateBoundingBox implements Primitive.
func (t *Translate) CreateBoundingBox(pos vec3.Vec3, tA, tB float64) aabb.AABB {
	box := t.object.CreateBoundingBox(pos, tA, tB)
	return aabb.New(box.Min().Add(t.Offset), box.Max().Add(t.Offset))
}

// UpdatePos implements Primitive by shifting the cached offset.
func (t *Translate) UpdatePos(delta vec3.Vec3) {
	t.Offset = t.Offset.Add(delta)
}

// Clone implements Primitive, deep-copying the wrapped child.
func (t *Translate) Clone() Primitive {
	return &Translate{Offset: t.Offset, object: t.object.Clone()}
}
