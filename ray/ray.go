// Package ray implements the immutable ray type shared by geometry,
// material and renderer code.
package ray

import "github.com/sakarias88/racer-tracer/vec3"

// Ray is an immutable origin/direction/time triple. Time lies in the
// camera's motion-blur window [t_a, t_b].
type Ray struct {
	origin    vec3.Vec3
	direction vec3.Vec3
	time      float64
}

// New returns a ray with the given origin, direction and time.
func New(origin, direction vec3.Vec3, time float64) Ray {
	return Ray{origin: origin, direction: direction, time: time}
}

// Origin returns the ray's origin.
func (r Ray) Origin() vec3.Vec3 { return r.origin }

// Direction returns the ray's direction.
func (r Ray) Direction() vec3.Vec3 { return r.direction }

// Time returns the ray's time sample, used by moving primitives.
func (r Ray) Time() float64 { return r.time }

// At returns the point origin + t*direction.
func (r Ray) At(t float64) vec3.Vec3 {
	return r.origin.Add(r.direction.Scale(t))
}
