package geometry

import (
	"math"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Sphere is a stationary sphere of the given radius, centered on its
// owning object's position.
type Sphere struct {
	Radius float64
}

// NewSphere returns a sphere of the given radius.
func NewSphere(radius float64) *Sphere {
	return &Sphere{Radius: radius}
}

// sphereUV computes (u,v) from a point on the unit sphere, per the
// spherical-coordinate convention θ=acos(-y), φ=atan2(-z,x)+π.
func sphereUV(p vec3.Vec3) (u, v float64) {
	theta := math.Acos(-p.Y())
	phi := math.Atan2(-p.Z(), p.X()) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

// ObjHit implements Primitive.
func (s *Sphere) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	center := owner.Pos()
	oc := r.Origin().Sub(center)
	a := r.Direction().LengthSquared()
	halfB := oc.Dot(r.Direction())
	c := oc.LengthSquared() - s.Radius*s.Radius
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
	outwardNormal := point.Sub(center).Div(s.Radius)
	u, v := sphereUV(outwardNormal)

	rec := HitRecord{Point: point, T: root, Material: owner.Material(), U: u, V: v}
	rec.SetFaceNormal(r, outwardNormal)
	return rec, true
}

// CreateBoundingBox implements Primitive.
func (s *Sphere) CreateBoundingBox(pos vec3.Vec3, _, _ float64) aabb.AABB {
	r := vec3.New(s.Radius, s.Radius, s.Radius)
	return aabb.New(pos.Sub(r), pos.Add(r))
}

// UpdatePos implements Primitive. Sphere has no interior state beyond its
// radius, so there is nothing to shift.
func (s *Sphere) UpdatePos(vec3.Vec3) {}

// Clone implements Primitive.
func (s *Sphere) Clone() Primitive {
	clone := *s
	return &clone
}
