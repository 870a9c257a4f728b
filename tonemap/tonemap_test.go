package tonemap

import (
	"testing"

	"github.com/sakarias88/racer-tracer/vec3"
)

// TestNoneIsIdentity is Testable Property 8.
func TestNoneIsIdentity(t *testing.T) {
	c := vec3.New(0.3, 0.6, 0.9)
	if got := NewNone().ToneMap(c); got != c {
		t.Fatalf("None.ToneMap(%v) = %v, want identity", c, got)
	}
}

// TestReinhardZeroIsZero is Testable Property 8.
func TestReinhardZeroIsZero(t *testing.T) {
	r := NewReinhard(25)
	got := r.ToneMap(vec3.Vec3{})
	if got != (vec3.Vec3{}) {
		t.Fatalf("Reinhard.ToneMap(0) = %v, want 0", got)
	}
}

// TestReinhardMaxWhiteOne is scenario E5: with max_white=1,
// tone_map(Color(1,1,1)) returns (1,1,1).
func TestReinhardMaxWhiteOne(t *testing.T) {
	r := NewReinhard(1)
	c := vec3.New(1, 1, 1)
	got := r.ToneMap(c)
	for i := 0; i < 3; i++ {
		if abs(got[i]-1) > 1e-9 {
			t.Fatalf("Reinhard(maxWhite=1).ToneMap(1,1,1) = %v, want (1,1,1)", got)
		}
	}
}

// TestReinhardMaxWhite25CompressesLuminance is scenario E5: with
// max_white=25, tone_map(Color(2,2,2)) has luminance < 2.
func TestReinhardMaxWhite25CompressesLuminance(t *testing.T) {
	r := NewReinhard(25)
	got := r.ToneMap(vec3.New(2, 2, 2))
	if luminance(got) >= 2 {
		t.Fatalf("luminance(tone_map(2,2,2)) = %v, want < 2", luminance(got))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
