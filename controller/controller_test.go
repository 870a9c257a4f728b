package controller

import (
	"testing"

	"github.com/sakarias88/racer-tracer/camera"
	"github.com/sakarias88/racer-tracer/config"
	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/material"
	"github.com/sakarias88/racer-tracer/scene"
	"github.com/sakarias88/racer-tracer/vec3"
	"github.com/sakarias88/racer-tracer/window"
)

func newTestCamera(t *testing.T) *camera.Camera {
	t.Helper()
	bus := databus.New[camera.SharedData]("camera")
	return camera.New(camera.Params{
		LookFrom:      vec3.New(0, 0, 0),
		LookAt:        vec3.New(0, 0, -1),
		SceneUp:       vec3.New(0, 1, 0),
		VFov:          90,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 1,
	}, bus.GetWriter())
}

// TestPickSelectsObjectUnderCursor is scenario Q1 (object-pick, spec
// §5 step 1): a pick at the screen's dead center must not select an
// object sitting off to one side, and a pick aimed at that object's
// actual screen position must select it — proving the pick ray is
// actually derived from (PickX,PickY) rather than always firing down
// the camera's forward axis.
func TestPickSelectsObjectUnderCursor(t *testing.T) {
	bus := databus.New[scene.ObjectEvent]("scene")
	s := scene.New(bus.GetWriter(), 0, 0)

	center := s.Add(vec3.New(0, 0, -1), material.NewLambertianColor(vec3.New(1, 0, 0)), geometry.NewSphere(0.3))
	offCenter := s.Add(vec3.New(0.8, 0, -1), material.NewLambertianColor(vec3.New(0, 1, 0)), geometry.NewSphere(0.3))

	cam := newTestCamera(t)
	c := New(config.Config{})

	// Dead center (u,v)=(0.5,0.5) looks straight down -Z: it must hit
	// the centered sphere, not the one at x=0.8.
	c.Update(0, Input{
		Released: map[window.Key]bool{window.KeyQ: true},
		PickX:    0.5,
		PickY:    0.5,
	}, cam, s)
	if sel, ok := s.Selected(); !ok || sel != center {
		t.Fatalf("pick at screen center: selected = (%d,%v), want (%d,true)", sel, ok, center)
	}

	// (u,v)=(0.9,0.5) looks toward +x: it must hit the off-center
	// sphere instead.
	c.Update(0, Input{
		Released: map[window.Key]bool{window.KeyQ: true},
		PickX:    0.9,
		PickY:    0.5,
	}, cam, s)
	if sel, ok := s.Selected(); !ok || sel != offCenter {
		t.Fatalf("pick at screen right: selected = (%d,%v), want (%d,true)", sel, ok, offCenter)
	}
}

// TestPickWithoutKeyQLeavesSelectionUnchanged confirms the pick only
// fires on a KeyQ release, not unconditionally every frame.
func TestPickWithoutKeyQLeavesSelectionUnchanged(t *testing.T) {
	bus := databus.New[scene.ObjectEvent]("scene")
	s := scene.New(bus.GetWriter(), 0, 0)
	s.Add(vec3.New(0, 0, -1), material.NewLambertianColor(vec3.New(1, 0, 0)), geometry.NewSphere(0.3))

	cam := newTestCamera(t)
	c := New(config.Config{})

	c.Update(0, Input{PickX: 0.5, PickY: 0.5}, cam, s)
	if _, ok := s.Selected(); ok {
		t.Fatal("Selected() = ok, want no selection when KeyQ was not released")
	}
}

// TestKeyERemovesSelected confirms KeyE removes whatever object a prior
// pick selected.
func TestKeyERemovesSelected(t *testing.T) {
	bus := databus.New[scene.ObjectEvent]("scene")
	s := scene.New(bus.GetWriter(), 0, 0)
	s.Add(vec3.New(0, 0, -1), material.NewLambertianColor(vec3.New(1, 0, 0)), geometry.NewSphere(0.3))

	cam := newTestCamera(t)
	c := New(config.Config{})

	c.Update(0, Input{Released: map[window.Key]bool{window.KeyQ: true}, PickX: 0.5, PickY: 0.5}, cam, s)
	if _, ok := s.Selected(); !ok {
		t.Fatal("setup: expected a selection before KeyE")
	}

	c.Update(0, Input{Released: map[window.Key]bool{window.KeyE: true}}, cam, s)
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after KeyE, want 0", s.Len())
	}
}
