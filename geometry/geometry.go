// Package geometry defines the hit-record contract and the primitive
// interface implemented by every shape (sphere, rectangles, box,
// translate, rotate-y). Primitives are deliberately unaware of the scene
// package: they receive only the thin Owner view they need (material and
// current position), which keeps geometry free of an import cycle with
// scene.
package geometry

import (
	"math/rand"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Material is the scattering/emission contract shared by every material
// kind. Scatter returns ok=false when the incoming ray is absorbed.
type Material interface {
	Scatter(rIn ray.Ray, rec HitRecord, rng *rand.Rand) (scattered ray.Ray, attenuation vec3.Color, ok bool)
	Emitted(u, v float64, p vec3.Vec3) vec3.Color
}

// HitRecord describes a ray-primitive intersection.
type HitRecord struct {
	Point     vec3.Vec3
	Normal    vec3.Vec3
	T         float64
	FrontFace bool
	Material  Material
	U, V      float64
	ObjID     int
}

// SetFaceNormal orients Normal against the ray and records FrontFace,
// given the true outward-facing normal at Point.
func (h *HitRecord) SetFaceNormal(r ray.Ray, outwardNormal vec3.Vec3) {
	h.FrontFace = r.Direction().Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Neg()
	}
}

// Owner is the view of a SceneObject a primitive needs: its shared
// material handle and its current position.
type Owner interface {
	Material() Material
	Pos() vec3.Vec3
}

// Primitive is the contract every geometry variant implements: Sphere,
// MovingSphere, the axis-aligned rectangles, Box, Translate and RotateY.
type Primitive interface {
	// ObjHit tests r against the primitive, given the owning object's
	// current material/position view.
	ObjHit(owner Owner, r ray.Ray, tMin, tMax float64) (HitRecord, bool)

	// CreateBoundingBox returns the primitive's AABB given the owning
	// object's position and the render's motion-blur time window.
	CreateBoundingBox(pos vec3.Vec3, tA, tB float64) aabb.AABB

	// UpdatePos shifts any interior state the primitive caches so it
	// remains self-consistent after the owning object moves by delta.
	UpdatePos(delta vec3.Vec3)

	// Clone returns a deep copy of the primitive, independent of the
	// original's interior state. The BVH clones every SceneObject's
	// primitive into its leaves so that interactive-side mutation
	// between renders never reaches an in-flight render's snapshot.
	Clone() Primitive
}
