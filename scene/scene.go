// Package scene owns the interactive-side list of scene objects: their
// positions, materials and primitives, object selection for picking, and
// the event stream that downstream readers (the BVH, render snapshots)
// consume to stay in sync without locking the interactive thread.
package scene

import (
	"math"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/tracerr"
	"github.com/sakarias88/racer-tracer/vec3"
)

// ObjectID stably identifies one SceneObject for the lifetime of a render.
type ObjectID int

// EventKind distinguishes the two mutations a SceneObject can emit.
type EventKind int

const (
	// EventPos reports that the object at ID moved to Pos.
	EventPos EventKind = iota
	// EventRemove reports that the object at ID was removed.
	EventRemove
)

// ObjectEvent is the message type carried on the scene's DataBus: a
// position update or a removal, keyed by stable object id.
type ObjectEvent struct {
	Kind EventKind
	ID   ObjectID
	Pos  vec3.Vec3
}

// SceneObject owns a position, a shared (read-only) material and a
// geometry primitive, plus a cached AABB kept in sync with every position
// change.
type SceneObject struct {
	id           ObjectID
	pos          vec3.Vec3
	material     geometry.Material
	primitive    geometry.Primitive
	bounds       aabb.AABB
	timeA, timeB float64
}

// NewSceneObject returns a SceneObject at pos, owning primitive and
// material, with its AABB computed over the motion-blur window
// [timeA,timeB].
func NewSceneObject(id ObjectID, pos vec3.Vec3, material geometry.Material, primitive geometry.Primitive, timeA, timeB float64) *SceneObject {
	o := &SceneObject{id: id, pos: pos, material: material, primitive: primitive, timeA: timeA, timeB: timeB}
	o.bounds = primitive.CreateBoundingBox(pos, timeA, timeB)
	return o
}

// ID returns the object's stable id.
func (o *SceneObject) ID() ObjectID { return o.id }

// Pos implements geometry.Owner.
func (o *SceneObject) Pos() vec3.Vec3 { return o.pos }

// Material implements geometry.Owner.
func (o *SceneObject) Material() geometry.Material { return o.material }

// Bounds returns the object's cached AABB.
func (o *SceneObject) Bounds() aabb.AABB { return o.bounds }

// SetPos moves the object to pos, shifting the primitive's interior state
// and recomputing its AABB atomically with the position change.
func (o *SceneObject) SetPos(pos vec3.Vec3) {
	delta := pos.Sub(o.pos)
	o.pos = pos
	o.primitive.UpdatePos(delta)
	o.bounds = o.primitive.CreateBoundingBox(o.pos, o.timeA, o.timeB)
}

// Hit tests r against the object's cached AABB before delegating to the
// primitive, and stamps the resulting HitRecord with the object's stable
// id for object-pick.
func (o *SceneObject) Hit(r ray.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	if !o.bounds.Hit(r, tMin, tMax) {
		return geometry.HitRecord{}, false
	}
	rec, ok := o.primitive.ObjHit(o, r, tMin, tMax)
	if ok {
		rec.ObjID = int(o.id)
	}
	return rec, ok
}

// Clone returns a deep copy of the object, independent of further
// mutation on the original — the BVH clones every object it indexes so
// an in-flight render's snapshot is immune to interactive-side moves.
func (o *SceneObject) Clone() *SceneObject {
	clone := *o
	clone.primitive = o.primitive.Clone()
	return &clone
}

// Scene is the interactive-side owner of the ordered list of
// SceneObjects. Mutation happens only on the interactive thread; every
// mutation is also broadcast as an ObjectEvent for render-side readers.
type Scene struct {
	objects      []*SceneObject
	selected     *ObjectID
	writer       databus.DataWriter[ObjectEvent]
	nextID       ObjectID
	timeA, timeB float64
}

// New returns an empty scene publishing object mutations through writer,
// over the motion-blur window [timeA,timeB].
func New(writer databus.DataWriter[ObjectEvent], timeA, timeB float64) *Scene {
	return &Scene{writer: writer, timeA: timeA, timeB: timeB}
}

// Add appends a new object at pos with the given material and primitive,
// returning its stable id.
func (s *Scene) Add(pos vec3.Vec3, material geometry.Material, primitive geometry.Primitive) ObjectID {
	id := s.nextID
	s.nextID++
	s.objects = append(s.objects, NewSceneObject(id, pos, material, primitive, s.timeA, s.timeB))
	return id
}

// Objects returns the scene's current objects. The returned slice must
// not be mutated by the caller.
func (s *Scene) Objects() []*SceneObject { return s.objects }

// Len returns the number of objects in the scene.
func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) indexOf(id ObjectID) int {
	for i, o := range s.objects {
		if o.id == id {
			return i
		}
	}
	return -1
}

// SetPos moves the object with the given id to pos, updating the
// interactive-side copy and broadcasting the change. It fails with
// tracerr.KindNoObjectWithID if no such object exists.
func (s *Scene) SetPos(id ObjectID, pos vec3.Vec3) error {
	i := s.indexOf(id)
	if i < 0 {
		return tracerr.New(tracerr.KindNoObjectWithID, "scene: no object with id %d", id)
	}
	s.objects[i].SetPos(pos)
	return s.writer.Write(ObjectEvent{Kind: EventPos, ID: id, Pos: pos})
}

// TranslateSelected moves the currently selected object (if any) by delta.
// It is a no-op when no object is selected.
func (s *Scene) TranslateSelected(delta vec3.Vec3) error {
	if s.selected == nil {
		return nil
	}
	i := s.indexOf(*s.selected)
	if i < 0 {
		return nil
	}
	return s.SetPos(*s.selected, s.objects[i].Pos().Add(delta))
}

// Remove deletes the object with the given id and broadcasts the removal.
// It fails with tracerr.KindNoObjectWithID if no such object exists.
func (s *Scene) Remove(id ObjectID) error {
	i := s.indexOf(id)
	if i < 0 {
		return tracerr.New(tracerr.KindNoObjectWithID, "scene: no object with id %d", id)
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	if s.selected != nil && *s.selected == id {
		s.selected = nil
	}
	return s.writer.Write(ObjectEvent{Kind: EventRemove, ID: id})
}

// Selected returns the currently selected object's id, if any.
func (s *Scene) Selected() (ObjectID, bool) {
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// ClearSelection deselects any currently selected object.
func (s *Scene) ClearSelection() { s.selected = nil }

// Hit implements a brute-force linear scan over every object, used both
// as the ground truth for Testable Property 3 and as the pick ray's hit
// test below.
func (s *Scene) Hit(r ray.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	var rec geometry.HitRecord
	hitAny := false
	closest := tMax
	for _, o := range s.objects {
		if hr, ok := o.Hit(r, tMin, closest); ok {
			closest = hr.T
			rec = hr
			hitAny = true
		}
	}
	return rec, hitAny
}

// PickAt casts a ray from origin in direction and selects the closest hit
// object as the current selection, returning its id. It returns ok=false
// when the ray hits nothing.
func (s *Scene) PickAt(origin, direction vec3.Vec3) (ObjectID, bool) {
	r := ray.New(origin, direction, 0)
	rec, ok := s.Hit(r, 0.001, math.Inf(1))
	if !ok {
		return 0, false
	}
	id := ObjectID(rec.ObjID)
	s.selected = &id
	return id, true
}
