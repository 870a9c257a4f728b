// Package texture implements the Value(u,v,p) contract and its four
// reference implementations: solid color, checkered, image-sampled and
// Perlin noise.
package texture

import "github.com/sakarias88/racer-tracer/vec3"

// Texture maps a surface sample (uv plus the hit point) to a color.
type Texture interface {
	Value(u, v float64, p vec3.Vec3) vec3.Color
}

// SolidColor is a texture with a single constant color.
type SolidColor struct {
	Color vec3.Color
}

// NewSolidColor returns a solid-color texture.
func NewSolidColor(c vec3.Color) *SolidColor { return &SolidColor{Color: c} }

// Value implements Texture.
func (s *SolidColor) Value(float64, float64, vec3.Vec3) vec3.Color { return s.Color }
