package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sakarias88/racer-tracer/databus"
	"github.com/sakarias88/racer-tracer/geometry"
	"github.com/sakarias88/racer-tracer/material"
	"github.com/sakarias88/racer-tracer/ray"
	"github.com/sakarias88/racer-tracer/scene"
	"github.com/sakarias88/racer-tracer/vec3"
)

// TestHitMatchesBruteForce builds 100 random unit spheres (scenario E3)
// and checks that the BVH's closest hit matches a brute-force linear scan
// for 1,000 random rays, within 1e-9 — Testable Property 3.
func TestHitMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	s := scene.New(noopWriter(t), 0, 0)
	for i := 0; i < 100; i++ {
		pos := vec3.New(rng.Float64()*10-5, rng.Float64()*10-5, rng.Float64()*10-5)
		mat := material.NewLambertianColor(vec3.New(1, 1, 1))
		s.Add(pos, mat, geometry.NewSphere(1))
	}

	bus := databus.New[scene.ObjectEvent]("test")
	b := New(s.Objects(), bus.GetReader(), 0, 0, 7)

	for i := 0; i < 1000; i++ {
		origin := vec3.New(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
		direction := vec3.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)

		bvhRec, bvhOK := b.Hit(ray.New(origin, direction, 0), 0.001, math.Inf(1))
		bruteRec, bruteOK := s.Hit(ray.New(origin, direction, 0), 0.001, math.Inf(1))

		if bvhOK != bruteOK {
			t.Fatalf("ray %d: bvh hit=%v, brute force hit=%v", i, bvhOK, bruteOK)
		}
		if bvhOK && math.Abs(bvhRec.T-bruteRec.T) > 1e-9 {
			t.Fatalf("ray %d: bvh t=%v, brute force t=%v", i, bvhRec.T, bruteRec.T)
		}
	}
}

func noopWriter(t *testing.T) databus.DataWriter[scene.ObjectEvent] {
	t.Helper()
	return databus.New[scene.ObjectEvent]("unused").GetWriter()
}
