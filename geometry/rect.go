package geometry

import (
	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// padding is the AABB thickness padded onto a rectangle's degenerate axis
// so the box never collapses to zero volume.
const padding = 1e-4

// XYRect is a rectangle in the plane z=K, spanning [X0,X1]x[Y0,Y1].
type XYRect struct {
	X0, X1, Y0, Y1, K float64
}

// NewXYRect returns a new XYRect.
func NewXYRect(x0, x1, y0, y1, k float64) *XYRect {
	return &XYRect{X0: x0, X1: x1, Y0: y0, Y1: y1, K: k}
}

// ObjHit implements Primitive.
func (rect *XYRect) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	origin, dir := r.Origin(), r.Direction()
	t := (rect.K - origin.Z()) / dir.Z()
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}
	x := origin.X() + t*dir.X()
	y := origin.Y() + t*dir.Y()
	if x < rect.X0 || x > rect.X1 || y < rect.Y0 || y > rect.Y1 {
		return HitRecord{}, false
	}
	u := (x - rect.X0) / (rect.X1 - rect.X0)
	v := (y - rect.Y0) / (rect.Y1 - rect.Y0)
	rec := HitRecord{Point: r.At(t), T: t, Material: owner.Material(), U: u, V: v}
	rec.SetFaceNormal(r, vec3.New(0, 0, 1))
	return rec, true
}

// CreateBoundingBox implements Primitive.
func (rect *XYRect) CreateBoundingBox(vec3.Vec3, float64, float64) aabb.AABB {
	return aabb.New(
		vec3.New(rect.X0, rect.Y0, rect.K-padding),
		vec3.New(rect.X1, rect.Y1, rect.K+padding),
	)
}

// UpdatePos implements Primitive.
func (rect *XYRect) UpdatePos(delta vec3.Vec3) {
	rect.X0 += delta.X()
	rect.X1 += delta.X()
	rect.Y0 += delta.Y()
	rect.Y1 += delta.Y()
	rect.K += delta.Z()
}


// Clone implements Primitive.
func (rect *XYRect) Clone() Primitive {
	clone := *rect
	return &clone
}

// XZRect is a rectangle in the plane y=K, spanning [X0,X1]x[Z0,Z1].
type XZRect struct {
	X0, X1, Z0, Z1, K float64
}

// NewXZRect returns a new XZRect.
func NewXZRect(x0, x1, z0, z1, k float64) *XZRect {
	return &XZRect{X0: x0, X1: x1, Z0: z0, Z1: z1, K: k}
}

// ObjHit implements Primitive.
func (rect *XZRect) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	origin, dir := r.Origin(), r.Direction()
	t := (rect.K - origin.Y()) / dir.Y()
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}
	x := origin.X() + t*dir.X()
	z := origin.Z() + t*dir.Z()
	if x < rect.X0 || x > rect.X1 || z < rect.Z0 || z > rect.Z1 {
		return HitRecord{}, false
	}
	u := (x - rect.X0) / (rect.X1 - rect.X0)
	v := (z - rect.Z0) / (rect.Z1 - rect.Z0)
	rec := HitRecord{Point: r.At(t), T: t, Material: owner.Material(), U: u, V: v}
	rec.SetFaceNormal(r, vec3.New(0, 1, 0))
	return rec, true
}

// CreateBoundingBox implements Primitive.
func (rect *XZRect) CreateBoundingBox(vec3.Vec3, float64, float64) aabb.AABB {
	return aabb.New(
		vec3.New(rect.X0, rect.K-padding, rect.Z0),
		vec3.New(rect.X1, rect.K+padding, rect.Z1),
	)
}

// UpdatePos implements Primitive.
func (rect *XZRect) UpdatePos(delta vec3.Vec3) {
	rect.X0 += delta.X()
	rect.X1 += delta.X()
	rect.Z0 += delta.Z()
	rect.Z1 += delta.Z()
	rect.K += delta.Y()
}


// Clone implements Primitive.
func (rect *XZRect) Clone() Primitive {
	clone := *rect
	return &clone
}

// YZRect is a rectangle in the plane x=K, spanning [Y0,Y1]x[Z0,Z1].
type YZRect struct {
	Y0, Y1, Z0, Z1, K float64
}

// NewYZRect returns a new YZRect.
func NewYZRect(y0, y1, z0, z1, k float64) *YZRect {
	return &YZRect{Y0: y0, Y1: y1, Z0: z0, Z1: z1, K: k}
}

// ObjHit implements Primitive.
func (rect *YZRect) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	origin, dir := r.Origin(), r.Direction()
	t := (rect.K - origin.X()) / dir.X()
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}
	y := origin.Y() + t*dir.Y()
	z := origin.Z() + t*dir.Z()
	if y < rect.Y0 || y > rect.Y1 || z < rect.Z0 || z > rect.Z1 {
		return HitRecord{}, false
	}
	u := (y - rect.Y0) / (rect.Y1 - rect.Y0)
	v := (z - rect.Z0) / (rect.Z1 - rect.Z0)
	rec := HitRecord{Point: r.At(t), T: t, Material: owner.Material(), U: u, V: v}
	rec.SetFaceNormal(r, vec3.New(1, 0, 0))
	return rec, true
}

// CreateBoundingBox implements Primitive.
func (rect *YZRect) CreateBoundingBox(vec3.Vec3, float64, float64) aabb.AABB {
	return aabb.New(
		vec3.New(rect.K-padding, rect.Y0, rect.Z0),
		vec3.New(rect.K+padding, rect.Y1, rect.Z1),
	)
}

// UpdatePos implements Primitive.
func (rect *YZRect) UpdatePos(delta vec3.Vec3) {
	rect.Y0 += delta.Y()
	rect.Y1 += delta.Y()
	rect.Z0 += delta.Z()
	rect.Z1 += delta.Z()
	rect.K += delta.X()
}

// Clone implements Primitive.
func (rect *YZRect) Clone() Primitive {
	clone := *rect
	return &clone
}
