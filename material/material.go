// Package material implements the four reference material kinds —
// Lambertian, Metal, Dielectric, DiffuseLight — against the
// geometry.Material scatter/emit contract.
package material

import (
	"math"
	"math/rand"

	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/texture"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Lambertian scatters toward normal+random-unit-vector, falling back to
// the normal itself when that sum is near zero (a degenerate direction
// that would otherwise produce NaNs downstream).
type Lambertian struct {
	Texture texture.Texture
}

// NewLambertian returns a Lambertian material sampling tex for its
// attenuation.
func NewLambertian(tex texture.Texture) *Lambertian {
	return &Lambertian{Texture: tex}
}

// NewLambertianColor returns a Lambertian material with a solid-color
// texture, a convenience matching the reference's new_with_color.
func NewLambertianColor(c vec3.Color) *Lambertian {
	return NewLambertian(texture.NewSolidColor(c))
}

// Scatter implements geometry.Material.
func (l *Lambertian) Scatter(rIn ray.Ray, rec geometry.HitRecord, rng *rand.Rand) (ray.Ray, vec3.Color, bool) {
	direction := rec.Normal.Add(vec3.RandomUnitVector(rng))
	if direction.NearZero() {
		direction = rec.Normal
	}
	scattered := ray.New(rec.Point, direction, rIn.Time())
	attenuation := l.Texture.Value(rec.U, rec.V, rec.Point)
	return scattered, attenuation, true
}

// Emitted implements geometry.Material: Lambertian surfaces do not emit.
func (l *Lambertian) Emitted(float64, float64, vec3.Vec3) vec3.Color { return vec3.Vec3{} }

// Metal reflects about the surface normal, fuzzed by a random offset
// scaled by Fuzz.
type Metal struct {
	Texture texture.Texture
	Fuzz    float64
}

// NewMetal returns a Metal material sampling tex for its attenuation,
// with reflections fuzzed by fuzz (clamped to [0,1] by the caller's
// scene-load validation, not here).
func NewMetal(tex texture.Texture, fuzz float64) *Metal {
	return &Metal{Texture: tex, Fuzz: fuzz}
}

// NewMetalColor returns a Metal material with a solid-color texture.
func NewMetalColor(c vec3.Color, fuzz float64) *Metal {
	return NewMetal(texture.NewSolidColor(c), fuzz)
}

// Scatter implements geometry.Material. Scatter fails (ok=false) when the
// fuzzed reflection points into the surface.
func (m *Metal) Scatter(rIn ray.Ray, rec geometry.HitRecord, rng *rand.Rand) (ray.Ray, vec3.Color, bool) {
	reflected := vec3.Reflect(rIn.Direction().Unit(), rec.Normal)
	direction := reflected.Add(vec3.RandomInUnitSphere(rng).Scale(m.Fuzz))
	scattered := ray.New(rec.Point, direction, rIn.Time())
	if scattered.Direction().Dot(rec.Normal) <= 0 {
		return ray.Ray{}, vec3.Color{}, false
	}
	return scattered, m.Texture.Value(rec.U, rec.V, rec.Point), true
}

// Emitted implements geometry.Material: Metal surfaces do not emit.
func (m *Metal) Emitted(float64, float64, vec3.Vec3) vec3.Color { return vec3.Vec3{} }

// Dielectric is a clear refractive material (glass, water) that either
// refracts or reflects a ray based on Snell's law, total internal
// reflection, and Schlick's reflectance approximation.
type Dielectric struct {
	RefractionIndex float64
}

// NewDielectric returns a dielectric material with the given index of
// refraction.
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// reflectance computes the Schlick approximation to the Fresnel
// reflectance at the given cosine and index-of-refraction ratio.
func reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Scatter implements geometry.Material.
func (d *Dielectric) Scatter(rIn ray.Ray, rec geometry.HitRecord, rng *rand.Rand) (ray.Ray, vec3.Color, bool) {
	refractionRatio := d.RefractionIndex
	if rec.FrontFace {
		refractionRatio = 1.0 / d.RefractionIndex
	}

	unitDirection := rIn.Direction().Unit()
	cosTheta := math.Min(unitDirection.Neg().Dot(rec.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction vec3.Vec3
	if cannotRefract || reflectance(cosTheta, refractionRatio) > rng.Float64() {
		direction = vec3.Reflect(unitDirection, rec.Normal)
	} else {
		direction = vec3.Refract(unitDirection, rec.Normal, refractionRatio)
	}

	scattered := ray.New(rec.Point, direction, rIn.Time())
	return scattered, vec3.New(1, 1, 1), true
}

// Emitted implements geometry.Material: Dielectric surfaces do not emit.
func (d *Dielectric) Emitted(float64, float64, vec3.Vec3) vec3.Color { return vec3.Vec3{} }

// DiffuseLight never scatters; it only emits, using Texture.Value as the
// emitted radiance.
type DiffuseLight struct {
	Texture texture.Texture
}

// NewDiffuseLight returns a light material emitting tex's value.
func NewDiffuseLight(tex texture.Texture) *DiffuseLight {
	return &DiffuseLight{Texture: tex}
}

// NewDiffuseLightColor returns a light material with a solid-color texture.
func NewDiffuseLightColor(c vec3.Color) *DiffuseLight {
	return NewDiffuseLight(texture.NewSolidColor(c))
}

// Scatter implements geometry.Material: DiffuseLight never scatters.
func (d *DiffuseLight) Scatter(ray.Ray, geometry.HitRecord, *rand.Rand) (ray.Ray, vec3.Color, bool) {
	return ray.Ray{}, vec3.Color{}, false
}

// Emitted implements geometry.Material.
func (d *DiffuseLight) Emitted(u, v float64, p vec3.Vec3) vec3.Color {
	return d.Texture.Value(u, v, p)
}
