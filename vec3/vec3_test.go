package vec3

import (
	"math"
	"testing"
)

// TestRotateAxisAngleRoundTrip is Testable Property 4: rotate(theta,axis)
// followed by rotate(-theta,axis) returns the original vector within 1e-9.
func TestRotateAxisAngleRoundTrip(t *testing.T) {
	axis := New(0, 1, 0)
	v := New(1, 2, 3)

	rotated := v.RotateAxisAngle(axis, math.Pi/3).RotateAxisAngle(axis, -math.Pi/3)

	for i := 0; i < 3; i++ {
		if math.Abs(rotated[i]-v[i]) > 1e-9 {
			t.Fatalf("RotateAxisAngle round trip = %v, want %v", rotated, v)
		}
	}
}

func TestUnit(t *testing.T) {
	v := New(3, 0, 4)
	u := v.Unit()
	if math.Abs(u.Length()-1) > 1e-12 {
		t.Fatalf("Unit().Length() = %v, want 1", u.Length())
	}
}

func TestNearZero(t *testing.T) {
	if !New(1e-10, -1e-10, 0).NearZero() {
		t.Fatal("NearZero: expected a near-zero vector to report true")
	}
	if New(1, 0, 0).NearZero() {
		t.Fatal("NearZero: expected a unit vector to report false")
	}
}

func TestReflect(t *testing.T) {
	v := New(1, -1, 0)
	n := New(0, 1, 0)
	r := Reflect(v, n)
	want := New(1, 1, 0)
	if r != want {
		t.Fatalf("Reflect(%v, %v) = %v, want %v", v, n, r, want)
	}
}
