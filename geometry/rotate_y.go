package geometry

import (
	"math"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// RotateY wraps a child primitive, rotated by a fixed angle around the Y
// axis.
type RotateY struct {
	sinTheta, cosTheta float64
	object             Primitive
}

// NewRotateY returns object rotated by angleDegrees around the Y axis.
func NewRotateY(object Primitive, angleDegrees float64) *RotateY {
	radians := angleDegrees * math.Pi / 180
	sin, cos := math.Sincos(radians)
	return &RotateY{sinTheta: sin, cosTheta: cos, object: object}
}

// ObjHit implements Primitive: the incoming ray is rotated by -angle into
// the child's local space, the child is tested, and the resulting point
// and normal are rotated back by +angle.
func (rot *RotateY) ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool) {
	origin, dir := r.Origin(), r.Direction()

	rotatedOrigin := vec3.New(
		rot.cosTheta*origin.X()-rot.sinTheta*origin.Z(),
		origin.Y(),
		rot.sinTheta*origin.X()+rot.cosTheta*origin.Z(),
	)
	rotatedDir := vec3.New(
		rot.cosTheta*dir.X()-rot.sinTheta*dir.Z(),
		dir.Y(),
		rot.sinTheta*dir.X()+rot.cosTheta*dir.Z(),
	)
	rotated := ray.New(rotatedOrigin, rotatedDir, r.Time())

	rec, ok := rot.object.ObjHit(owner, rotated, tMin, tMax)
	if !ok {
		return HitRecord{}, false
	}

	point := vec3.New(
		rot.cosTheta*rec.Point.X()+rot.sinTheta*rec.Point.Z(),
		rec.Point.Y(),
		-rot.sinTheta*rec.Point.X()+rot.cosTheta*rec.Point.Z(),
	)
	normal := vec3.New(
		rot.cosTheta*rec.Normal.X()+rot.sinTheta*rec.Normal.Z(),
		rec.Normal.Y(),
		-rot.sinTheta*rec.Normal.X()+rot.cosTheta*rec.Normal.Z(),
	)

	rec.Point = point
	rec.SetFaceNormal(rotated, normal)
	return rec, true
}

// CreateBoundingBox implements Primitive using the standard 8-corner
// rotated-AABB expansion. The reference implementation's equivalent
// routine contains a transcription bug (an addition where a
// multiplication by z was intended); this uses the corrected formula.
func (rot *RotateY) CreateBoundingBox(pos vec3.Vec3, tA, tB float64) aabb.AABB {
	box := rot.object.CreateBoundingBox(pos, tA, tB)

	min := vec3.New(math.Inf(1), math.Inf(1), math.Inf(1))
	max := vec3.New(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.Max().X() + float64(1-i)*box.Min().X()
				y := float64(j)*box.Max().Y() + float64(1-j)*box.Min().Y()
				z := float64(k)*box.Max().Z() + float64(1-k)*box.Min().Z()

				newX := rot.cosTheta*x + rot.sinTheta*z
				newZ := -rot.sinTheta*x + rot.cosTheta*z

				tester := vec3.New(newX, y, newZ)
				min = min.Min(tester)
				max = max.Max(tester)
			}
		}
	}
	return aabb.New(min, max)
}

// UpdatePos implements Primitive by delegating to the child.
func (rot *RotateY) UpdatePos(delta vec3.Vec3) {
	rot.object.UpdatePos(delta)
}

// Clone implements Primitive, deep-copying the wrapped child.
func (rot *RotateY) Clone() Primitive {
	return &RotateY{sinTheta: rot.sinTheta, cosTheta: rot.cosTheta, object: rot.object.Clone()}
}
