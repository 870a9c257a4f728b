package geometry

import (
	"math"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// MovingSphere is a sphere whose center is a linear interpolation between
// PosA (at TimeA) and PosB (at TimeB), giving motion blur when the camera
// samples ray time uniformly over the window. Its own endpoint positions
// are tracked independently of the owning SceneObject's position field,
// matching the reference implementation.
type MovingSphere struct {
	PosA, PosB   vec3.Vec3
	Radius       float64
	TimeA, TimeB float64
	bounds       aabb.AABB
}

// NewMovingSphere returns a moving sphere traveling from posA at timeA to
// posB at timeB.
func NewMovingSphere(posA, posB vec3.Vec3, radius, timeA, timeB float64) *MovingSphere {
	r := vec3.New(radius, radius, radius)
	boxA := aabb.New(posA.Sub(r), posA.Add(r))
	boxB := aabb.New(posB.Sub(r), posB.Add(r))
	return &MovingSphere{
		PosA: posA, PosB: posB, Radius: radius,
		TimeA: timeA, TimeB: timeB,
		bounds: aabb.Union(boxA, boxB),
	}
}

// PosAt returns the sphere's center at the given ray time.
func (m *MovingSphere) PosAt(time float64) vec3.Vec3 {
	t := (time - m.TimeA) / (m.TimeB - m.TimeA)
	return m.PosA.Add(m.PosB.Sub(m.PosA).Scale(t))
}

// ObjHit implements Primitive.
func (m *MovingSphere) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	center := m.PosAt(r.Time())
	oc := r.Origin().Sub(center)
	a := r.Direction().LengthSquared()
	halfB := oc.Dot(r.Direction())
	c := oc.LengthSquared() - m.Radius*m.Radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}
	sqrtd := math.Sqrt(discriminant)

	root := (-halfB - sqrtd) / a
	if root < tMin || tMax < root {
		root = (-halfB + sqrtd) / a
		if root < tMin || tMax < root {
			return HitRecord{}, false
		}
	}

	point := r.At(root)
	outwardNormal := point.Sub(center).Div(m.Radius)

	rec := HitRecord{Point: point, T: root, Material: owner.Material()}
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}

// CreateBoundingBox implements Primitive. The bounding box is precomputed
// at construction as the union of both time-endpoint spheres.
func (m *MovingSphere) CreateBoundingBox(vec3.Vec3, float64, float64) aabb.AABB {
	return m.bounds
}

// UpdatePos implements Primitive, shifting both endpoint centers and the
// cached bounding box.
func (m *MovingSphere) UpdatePos(delta vec3.Vec3) {
	m.PosA = m.PosA.Add(delta)
	m.PosB = m.PosB.Add(delta)
	m.bounds = aabb.New(m.bounds.Min().Add(delta), m.bounds.Max().Add(delta))
}

// Clone implements Primitive.
func (m *MovingSphere) Clone() Primitive {
	clone := *m
	return &clone
}
