// Package background implements the pluggable miss-ray color contract: a
// ray that hits nothing in the scene is colored by a Background instead of
// the reference implementation's hardcoded sky gradient.
package background

import (
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// Background maps a ray that hit nothing to a color.
type Background interface {
	Color(r ray.Ray) vec3.Color
}

// Sky is a vertical gradient interpolated on t = 0.5*(dir.y()+1): the
// color is t*Bottom + (1-t)*Top, so a straight-up ray (dir.y()=1) gets
// Bottom and a straight-down ray (dir.y()=-1) gets Top.
type Sky struct {
	Top, Bottom vec3.Color
}

// NewSky returns a Sky background.
func NewSky(top, bottom vec3.Color) *Sky {
	return &Sky{Top: top, Bottom: bottom}
}

// DefaultSky returns the reference implementation's default sky: pale
// blue straight up, fading to white straight down.
func DefaultSky() *Sky {
	return &Sky{Top: vec3.New(1, 1, 1), Bottom: vec3.New(0.5, 0.7, 1.0)}
}

// Color implements Background.
func (s *Sky) Color(r ray.Ray) vec3.Color {
	unit := r.Direction().Unit()
	t := 0.5 * (unit.Y() + 1.0)
	return s.Bottom.Scale(t).Add(s.Top.Scale(1 - t))
}

// Solid is a constant-color background, exercising the same interface
// with the simplest possible implementation.
type Solid struct {
	Value vec3.Color
}

// NewSolid returns a Solid background of the given color.
func NewSolid(c vec3.Color) *Solid {
	return &Solid{Value: c}
}

// Color implements Background.
func (s *Solid) Color(ray.Ray) vec3.Color { return s.Value }
