package rotation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestExpMapUnitNorm(t *testing.T) {
	vectors := []mgl64.Vec3{
		{0, 0, 0},
		{1e-12, 0, 0},
		{0.1, -0.2, 0.3},
		{3.0, 0, 0},
		{0, math.Pi, 0},
	}

	for _, v := range vectors {
		q := ExpMap(v)
		if math.Abs(q.Len()-1.0) > 1e-12 {
			t.Errorf("ExpMap(%v) norm = %v, want 1", v, q.Len())
		}
	}
}

func TestExpMapIdentityForZero(t *testing.T) {
	q := ExpMap(mgl64.Vec3{})

	if math.Abs(q.W-1.0) > 1e-12 {
		t.Errorf("expected identity rotation, got W=%v", q.W)
	}
}

func TestExpMapQuarterTurn(t *testing.T) {
	q := ExpMap(mgl64.Vec3{0, 0, math.Pi / 2})
	got := q.Rotate(mgl64.Vec3{1, 0, 0})

	want := mgl64.Vec3{0, 1, 0}
	if got.Sub(want).Len() > 1e-12 {
		t.Errorf("quarter turn about z: got %v, want %v", got, want)
	}
}

func TestExpMapSmallAngleContinuity(t *testing.T) {
	// Just above and just below the small-angle threshold must agree.
	above := ExpMap(mgl64.Vec3{2e-10, 0, 0})
	below := ExpMap(mgl64.Vec3{0.5e-10, 0, 0})

	if math.Abs(above.W-below.W) > 1e-15 {
		t.Errorf("discontinuity at threshold: W %v vs %v", above.W, below.W)
	}
	if math.Abs(above.V.X()-2*below.V.X()) > 1e-15 {
		t.Errorf("vector parts not proportional: %v vs %v", above.V, below.V)
	}
}

func TestToBodyToWorldRoundTrip(t *testing.T) {
	q := ExpMap(mgl64.Vec3{0.3, -0.7, 1.1})
	v := mgl64.Vec3{4, -5, 6}

	back := ToBody(q, ToWorld(q, v))
	if back.Sub(v).Len() > 1e-12 {
		t.Errorf("round trip changed vector: %v -> %v", v, back)
	}
}

func TestOrthonormal(t *testing.T) {
	normals := []mgl64.Vec3{
		{0, 0, 1},      // parallel to the preferred reference
		{0, 0, -2},     // anti-parallel, non-unit
		{1, 1, 0.2},    // generic
		{1e-3, 0, 1.0}, // near-pole
	}

	for _, n := range normals {
		t1, t2 := Orthonormal(n)
		nHat := n.Normalize()

		if math.Abs(t1.Len()-1) > 1e-12 || math.Abs(t2.Len()-1) > 1e-12 {
			t.Errorf("Orthonormal(%v): non-unit outputs", n)
		}
		if math.Abs(t1.Dot(nHat)) > 1e-12 || math.Abs(t2.Dot(nHat)) > 1e-12 {
			t.Errorf("Orthonormal(%v): outputs not perpendicular to input", n)
		}
		if t1.Cross(t2).Sub(nHat).Len() > 1e-12 {
			t.Errorf("Orthonormal(%v): basis not right-handed", n)
		}
	}
}
