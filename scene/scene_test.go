package scene

import (
	"math"
	"testing"

	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/material"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

func newTestScene(t *testing.T) (*Scene, *databus.DataBus[ObjectEvent], databus.DataReader[ObjectEvent]) {
	t.Helper()
	bus := databus.New[ObjectEvent]("test")
	return New(bus.GetWriter(), 0, 0), bus, bus.GetReader()
}

func TestAddAndHit(t *testing.T) {
	s, _, _ := newTestScene(t)
	mat := material.NewLambertianColor(vec3.New(1, 0, 0))
	s.Add(vec3.New(0, 0, -1), mat, geometry.NewSphere(0.5))

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	r := ray.New(vec3.New(0, 0, 0), vec3.New(0, 0, -1), 0)
	rec, ok := s.Hit(r, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Hit: expected a hit")
	}
	if rec.ObjID != 0 {
		t.Fatalf("Hit: ObjID = %d, want 0", rec.ObjID)
	}
}

func TestSetPosBroadcasts(t *testing.T) {
	s, bus, reader := newTestScene(t)
	id := s.Add(vec3.New(0, 0, 0), material.NewLambertianColor(vec3.New(1, 1, 1)), geometry.NewSphere(1))

	if err := s.SetPos(id, vec3.New(1, 2, 3)); err != nil {
		t.Fatalf("SetPos: %v", err)
	}
	if err := bus.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	msgs, err := reader.GetMessages()
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Kind != EventPos || msgs[0].ID != id {
		t.Fatalf("GetMessages = %+v, want one Pos event for id %d", msgs, id)
	}
}

func TestRemoveUnknownObject(t *testing.T) {
	s, _, _ := newTestScene(t)
	if err := s.Remove(42); err == nil {
		t.Fatal("Remove: expected error for unknown id")
	}
}

func TestPickAtSelectsClosest(t *testing.T) {
	s, _, _ := newTestScene(t)
	near := s.Add(vec3.New(0, 0, -1), material.NewLambertianColor(vec3.New(1, 1, 1)), geometry.NewSphere(0.5))
	s.Add(vec3.New(0, 0, -5), material.NewLambertianColor(vec3.New(1, 1, 1)), geometry.NewSphere(0.5))

	id, ok := s.PickAt(vec3.New(0, 0, 0), vec3.New(0, 0, -1))
	if !ok {
		t.Fatal("PickAt: expected a hit")
	}
	if id != near {
		t.Fatalf("PickAt: id = %d, want %d", id, near)
	}
	if sel, ok := s.Selected(); !ok || sel != near {
		t.Fatalf("Selected() = (%d,%v), want (%d,true)", sel, ok, near)
	}
}
