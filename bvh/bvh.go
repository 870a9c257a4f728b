// Package bvh implements the bounding-volume hierarchy that spatially
// indexes a scene's primitives for sub-linear ray queries, and keeps
// itself in sync with interactive-side scene mutation via a bus reader,
// rebuilding fully on every update so the render thread's own snapshot
// is never touched mid-render.
package bvh

import (
	"math/rand"

	"github.com/sakarias88/racer-tracer/aabb"
	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/scene"
)

// node is a tagged variant: either a leaf wrapping one SceneObject, or an
// inner node whose AABB is the union of its two children's.
type node struct {
	obj         *scene.SceneObject
	left, right *node
	bounds      aabb.AABB
}

func (n *node) isLeaf() bool { return n.obj != nil }

func boundsOf(n *node) aabb.AABB {
	if n.isLeaf() {
		return n.obj.Bounds()
	}
	return n.bounds
}

// build recursively splits objects on a randomly chosen axis, per §4.2:
// one object becomes a leaf, two become sibling leaves sorted by AABB
// minimum on the axis, and more are sorted then split at the midpoint.
func build(rng *rand.Rand, objects []*scene.SceneObject, timeA, timeB float64) *node {
	axis := rng.Intn(3)

	switch len(objects) {
	case 1:
		return &node{obj: objects[0]}
	case 2:
		left, right := objects[0], objects[1]
		if left.Bounds().Min()[axis] > right.Bounds().Min()[axis] {
			left, right = right, left
		}
		leftNode := &node{obj: left}
		rightNode := &node{obj: right}
		return &node{
			left:   leftNode,
			right:  rightNode,
			bounds: aabb.Union(left.Bounds(), right.Bounds()),
		}
	default:
		sorted := append([]*scene.SceneObject(nil), objects...)
		sortByAxisMin(sorted, axis)
		mid := len(sorted) / 2
		left := build(rng, sorted[:mid], timeA, timeB)
		right := build(rng, sorted[mid:], timeA, timeB)
		return &node{
			left:   left,
			right:  right,
			bounds: aabb.Union(boundsOf(left), boundsOf(right)),
		}
	}
}

// sortByAxisMin sorts objects by their AABB's minimum coordinate on the
// given axis, in place, using a plain insertion sort: scene sizes here
// are small enough that the simplicity outweighs an import for sort.Slice
// tie-break stability (which insertion sort gives for free).
func sortByAxisMin(objects []*scene.SceneObject, axis int) {
	for i := 1; i < len(objects); i++ {
		for j := i; j > 0 && objects[j].Bounds().Min()[axis] < objects[j-1].Bounds().Min()[axis]; j-- {
			objects[j], objects[j-1] = objects[j-1], objects[j]
		}
	}
}

// hit traverses the tree: a miss on the node's own AABB prunes the whole
// subtree; an inner node probes left first, then probes right with the
// interval shrunk to the left hit's t, returning the closer of the two
// without needing to sort children by distance up front.
func (n *node) hit(r ray.Ray, tMin, tMax float64, timeA, timeB float64) (geometry.HitRecord, bool) {
	bounds := boundsOf(n)
	if !bounds.Hit(r, tMin, tMax) {
		return geometry.HitRecord{}, false
	}
	if n.isLeaf() {
		return n.obj.Hit(r, tMin, tMax)
	}
	if leftRec, ok := n.left.hit(r, tMin, tMax, timeA, timeB); ok {
		if rightRec, ok := n.right.hit(r, tMin, leftRec.T, timeA, timeB); ok {
			return rightRec, true
		}
		return leftRec, true
	}
	return n.right.hit(r, tMin, tMax, timeA, timeB)
}

// BVH owns a snapshot of SceneObjects (cloned from the interactive scene
// so mutation in between renders never mutates the render's own copy),
// the tree built over them, and the reader that tells it when to rebuild.
type BVH struct {
	reader       databus.DataReader[scene.ObjectEvent]
	objects      []*scene.SceneObject
	root         *node
	rng          *rand.Rand
	timeA, timeB float64
	changed      bool
}

// New builds a BVH over a cloned copy of objects, reading subsequent
// mutation from reader. seed controls the random split-axis choice so
// repeated builds are independently reproducible in tests (Testable
// Property 3 / scenario E3).
func New(objects []*scene.SceneObject, reader databus.DataReader[scene.ObjectEvent], timeA, timeB float64, seed int64) *BVH {
	cloned := make([]*scene.SceneObject, len(objects))
	for i, o := range objects {
		cloned[i] = o.Clone()
	}
	b := &BVH{reader: reader, objects: cloned, rng: rand.New(rand.NewSource(seed)), timeA: timeA, timeB: timeB, changed: true}
	b.rebuild()
	return b
}

func (b *BVH) rebuild() {
	if len(b.objects) == 0 {
		b.root = nil
		return
	}
	b.root = build(b.rng, b.objects, b.timeA, b.timeB)
}

// Changed reports whether the most recent Update observed any mutation.
func (b *BVH) Changed() bool { return b.changed }

func (b *BVH) indexOf(id scene.ObjectID) int {
	for i, o := range b.objects {
		if o.ID() == id {
			return i
		}
	}
	return -1
}

// Update drains any queued scene mutation events and, if any arrived,
// applies them to the snapshot and rebuilds the tree from scratch. It
// must only be called in between renders — the render thread holds its
// own snapshot and is never affected mid-render.
func (b *BVH) Update() error {
	b.changed = false
	messages, err := b.reader.GetMessages()
	if err != nil {
		return err
	}
	for _, msg := range messages {
		b.changed = true
		switch msg.Kind {
		case scene.EventRemove:
			if i := b.indexOf(msg.ID); i >= 0 {
				b.objects = append(b.objects[:i], b.objects[i+1:]...)
			}
		case scene.EventPos:
			if i := b.indexOf(msg.ID); i >= 0 {
				b.objects[i].SetPos(msg.Pos)
			}
		}
	}
	if b.changed {
		b.rebuild()
	}
	return nil
}

// Hit implements the ray-scene intersection contract over the current
// snapshot.
func (b *BVH) Hit(r ray.Ray, tMin, tMax float64) (geometry.HitRecord, bool) {
	if b.root == nil {
		return geometry.HitRecord{}, false
	}
	return b.root.hit(r, tMin, tMax, b.timeA, b.timeB)
}
