package aabb

import (
	"math"
	"testing"

	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/vec3"
)

// TestNewIsOrderIndependent is Testable Property 1: New(a,b) == New(b,a).
func TestNewIsOrderIndependent(t *testing.T) {
	a := vec3.New(1, -2, 3)
	b := vec3.New(-4, 5, -6)
	if New(a, b) != New(b, a) {
		t.Fatalf("New(a,b) = %v, New(b,a) = %v, want equal", New(a, b), New(b, a))
	}
}

// TestHitThroughBoxHits and TestHitMissedBoxMisses are Testable Property 2.
func TestHitThroughBoxHits(t *testing.T) {
	box := New(vec3.New(-1, -1, -1), vec3.New(1, 1, 1))
	r := ray.New(vec3.New(0, 0, -5), vec3.New(0, 0, 1), 0)
	if !box.Hit(r, 0, math.Inf(1)) {
		t.Fatal("Hit: expected a ray through the box to hit")
	}
}

func TestHitMissedBoxMisses(t *testing.T) {
	box := New(vec3.New(-1, -1, -1), vec3.New(1, 1, 1))
	r := ray.New(vec3.New(10, 10, -5), vec3.New(0, 0, 1), 0)
	if box.Hit(r, 0, math.Inf(1)) {
		t.Fatal("Hit: expected a ray missing the box not to hit")
	}
}

func TestHitWithZeroDirectionComponent(t *testing.T) {
	box := New(vec3.New(-1, -1, -1), vec3.New(1, 1, 1))
	r := ray.New(vec3.New(0, 0, -5), vec3.New(0, 0, 1), 0)
	r = ray.New(r.Origin(), vec3.New(0, 0.1, 1), 0)
	if !box.Hit(r, 0, math.Inf(1)) {
		t.Fatal("Hit: expected a ray with a zero x-direction through the box to hit")
	}
}

// TestUnionContainsBoth is Testable Property 5.
func TestUnionContainsBoth(t *testing.T) {
	a := New(vec3.New(-1, -1, -1), vec3.New(0, 0, 0))
	b := New(vec3.New(0, 0, 0), vec3.New(2, 2, 2))
	u := Union(a, b)

	for axis := 0; axis < 3; axis++ {
		if u.Min()[axis] > a.Min()[axis] || u.Min()[axis] > b.Min()[axis] {
			t.Fatalf("Union min does not contain both boxes on axis %d", axis)
		}
		if u.Max()[axis] < a.Max()[axis] || u.Max()[axis] < b.Max()[axis] {
			t.Fatalf("Union max does not contain both boxes on axis %d", axis)
		}
	}
}
