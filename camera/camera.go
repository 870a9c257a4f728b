// Package camera implements the thin-lens pinhole camera: primary-ray
// generation, interactive movement/rotation, and the event-driven
// SharedCamera mirror that lets render-side readers snapshot the
// interactive-side camera without locking.
package camera

import (
	"math"
	"math/rand"

	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

func degreesToRadians(d float64) float64 { return d * math.Pi / 180 }

// SharedData is the immutable snapshot of a Camera a render thread reads:
// origin, basis, viewport geometry and the motion-blur time window. It is
// safe to read without locking because each render clones its own copy.
type SharedData struct {
	Origin                     vec3.Vec3
	Forward, Right, Up, SceneUp vec3.Vec3
	Horizontal, Vertical       vec3.Vec3
	UpperLeftCorner            vec3.Vec3
	ViewportWidth, ViewportHeight float64
	VFov                       float64
	LensRadius                 float64
	FocusDistance              float64
	TimeA, TimeB               float64
}

// GetRay generates a primary ray through normalized screen coordinates
// (u,v), sampling a random point on the lens disk and a uniform time
// sample in [TimeA,TimeB] for motion blur.
func (d SharedData) GetRay(u, v float64, rng *rand.Rand) ray.Ray {
	lensPoint := vec3.RandomInUnitDisk(rng).Scale(d.LensRadius)
	offset := d.Right.Scale(lensPoint.X()).Add(d.Up.Scale(lensPoint.Y()))
	origin := d.Origin.Add(offset)
	direction := d.UpperLeftCorner.
		Add(d.Horizontal.Scale(u)).
		Sub(d.Vertical.Scale(v)).
		Sub(d.Origin).
		Sub(offset)
	time := d.TimeA
	if d.TimeB > d.TimeA {
		time = d.TimeA + rng.Float64()*(d.TimeB-d.TimeA)
	}
	return ray.New(origin, direction, time)
}

// Camera is the interactive-thread-owned camera: mutating methods recompute
// the derived basis/viewport fields and publish a fresh SharedData snapshot
// to the writer so render threads observe the change on their next refresh.
type Camera struct {
	data   SharedData
	writer databus.DataWriter[SharedData]
}

// Params bundles a Camera's construction-time parameters.
type Params struct {
	LookFrom, LookAt, SceneUp vec3.Vec3
	VFov                      float64
	AspectRatio               float64
	Aperture                  float64
	FocusDistance             float64
	TimeA, TimeB              float64
}

// New returns a Camera built from params, publishing its initial state
// through writer.
func New(params Params, writer databus.DataWriter[SharedData]) *Camera {
	h := math.Tan(degreesToRadians(params.VFov) / 2)
	viewportHeight := 2 * h
	viewportWidth := params.AspectRatio * viewportHeight

	forward := params.LookFrom.Sub(params.LookAt).Unit()
	right := params.SceneUp.Cross(forward).Unit()
	up := forward.Cross(right)

	c := &Camera{writer: writer}
	c.data = SharedData{
		Origin: params.LookFrom, Forward: forward, Right: right, Up: up, SceneUp: params.SceneUp,
		ViewportWidth: viewportWidth, ViewportHeight: viewportHeight,
		VFov: params.VFov, LensRadius: params.Aperture / 2, FocusDistance: params.FocusDistance,
		TimeA: params.TimeA, TimeB: params.TimeB,
	}
	c.updateBasis()
	c.publish()
	return c
}

func (c *Camera) updateBasis() {
	c.data.Horizontal = c.data.Right.Scale(c.data.FocusDistance * c.data.ViewportWidth)
	c.data.Vertical = c.data.Up.Scale(c.data.FocusDistance * c.data.ViewportHeight)
	c.updateCorner()
}

func (c *Camera) updateCorner() {
	c.data.UpperLeftCorner = c.data.Origin.
		Add(c.data.Vertical.Scale(0.5)).
		Sub(c.data.Horizontal.Scale(0.5)).
		Sub(c.data.Forward.Scale(c.data.FocusDistance))
}

func (c *Camera) updateDirections() {
	c.data.Right = c.data.SceneUp.Cross(c.data.Forward).Unit()
	c.data.Up = c.data.Forward.Cross(c.data.Right)
	c.updateBasis()
}

func (c *Camera) publish() { c.writer.Write(c.data) }

// Data returns the camera's current snapshot.
func (c *Camera) Data() SharedData { return c.data }

// GoForward moves the camera along its forward axis by dist and publishes
// the change.
func (c *Camera) GoForward(dist float64) {
	c.data.Origin = c.data.Origin.Add(c.data.Forward.Scale(dist))
	c.updateCorner()
	c.publish()
}

// GoRight moves the camera along its right axis by dist and publishes the
// change.
func (c *Camera) GoRight(dist float64) {
	c.data.Origin = c.data.Origin.Add(c.data.Right.Scale(dist))
	c.updateCorner()
	c.publish()
}

// Rotate applies a mouse-drag rotation: the forward axis is rotated by up
// radians around the scene-up axis, then by right radians around the
// right axis, and the change is published.
func (c *Camera) Rotate(up, right float64) {
	c.data.Forward = c.data.Forward.
		RotateAxisAngle(c.data.SceneUp, up).
		RotateAxisAngle(c.data.Right, right).
		Unit()
	c.updateDirections()
	c.publish()
}

// RotateUp rotates the forward axis around the right axis by angle radians.
func (c *Camera) RotateUp(angle float64) {
	c.data.Forward = c.data.Forward.RotateAxisAngle(c.data.Right, angle).Unit()
	c.updateDirections()
	c.publish()
}

// RotateRight rotates the forward axis around the scene-up axis by angle
// radians.
func (c *Camera) RotateRight(angle float64) {
	c.data.Forward = c.data.Forward.RotateAxisAngle(c.data.SceneUp, -angle).Unit()
	c.updateDirections()
	c.publish()
}

// Shared is a render-side mirror of a Camera: it holds its own cloned copy
// of SharedData and refreshes it by draining its bus reader, so a render
// thread never touches the interactive-owned Camera directly.
type Shared struct {
	reader databus.DataReader[SharedData]
	data   SharedData
}

// NewShared returns a mirror seeded with initial, reading subsequent
// updates from reader.
func NewShared(initial SharedData, reader databus.DataReader[SharedData]) *Shared {
	return &Shared{reader: reader, data: initial}
}

// Refresh drains any queued updates, keeping only the most recent (a
// camera mirror only needs the latest state, not every intermediate one).
func (s *Shared) Refresh() error {
	messages, err := s.reader.GetMessages()
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		s.data = messages[len(messages)-1]
	}
	return nil
}

// Data returns the mirror's current snapshot.
func (s *Shared) Data() SharedData { return s.data }
