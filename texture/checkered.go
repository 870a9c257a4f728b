package texture

import (
	"math"

	"github.com/sakarias88/racer-tracer/vec3"
)

// checkerSize is the frequency constant used by the sign test below,
// matching the reference implementation's fixed value of 10.
const checkerSize = 10.0

// Checkered alternates between two sub-textures based on the sign of
// sin(f*x)*sin(f*y)*sin(f*z) evaluated on the hit point (not its uv),
// giving a 3D checker pattern that stays aligned across a primitive's
// surface regardless of its own uv parametrization.
type Checkered struct {
	Even, Odd Texture
}

// NewCheckered returns a checkered texture alternating between even and odd.
func NewCheckered(even, odd Texture) *Checkered {
	return &Checkered{Even: even, Odd: odd}
}

// Value implements Texture.
func (c *Checkered) Value(u, v float64, p vec3.Vec3) vec3.Color {
	sines := math.Sin(checkerSize*p.X()) * math.Sin(checkerSize*p.Y()) * math.Sin(checkerSize*p.Z())
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}
