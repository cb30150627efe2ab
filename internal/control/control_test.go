package control

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNoneCommandsZero(t *testing.T) {
	var n None
	if tau := n.Torque(mgl64.QuatIdent(), mgl64.Vec3{1, 2, 3}, 0); tau.Len() != 0 {
		t.Errorf("expected zero torque, got %v", tau)
	}
}

func TestConstant(t *testing.T) {
	c := Constant{TauB: mgl64.Vec3{0.1, -0.2, 0}}
	if tau := c.Torque(mgl64.QuatIdent(), mgl64.Vec3{}, 5); tau != c.TauB {
		t.Errorf("got %v, want %v", tau, c.TauB)
	}
}

func TestDamperOpposesAndClamps(t *testing.T) {
	inertia := mgl64.Vec3{10, 12, 8}
	d := NewRateDamper(inertia, mgl64.Vec3{0.25, 0.25, 0.25})

	tau := d.Torque(mgl64.QuatIdent(), mgl64.Vec3{0.5, -0.3, 0}, 0)

	// Both rates are large enough to saturate the clamp.
	want := mgl64.Vec3{-0.25 * 10, 0.25 * 12, 0}
	if tau.Sub(want).Len() > 1e-12 {
		t.Errorf("saturated torque: got %v, want %v", tau, want)
	}

	// A tiny rate stays below the clamp: alpha = -gain*w.
	tau = d.Torque(mgl64.QuatIdent(), mgl64.Vec3{0, 0, 1e-4}, 0)
	wantZ := -DefaultDamperGain * 1e-4 * 8
	if math.Abs(tau[2]-wantZ) > 1e-15 {
		t.Errorf("proportional torque: got %v, want %v", tau[2], wantZ)
	}
}

func TestDamperSettled(t *testing.T) {
	d := NewRateDamper(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.25, 0.25, 0.25})

	if d.Settled(mgl64.Vec3{0.1, 0, 0}) {
		t.Error("settled while still rotating")
	}
	if !d.Settled(mgl64.Vec3{1e-9, -1e-9, 0}) {
		t.Error("not settled at negligible rate")
	}
}

func TestRatePIDConverges(t *testing.T) {
	inertia := mgl64.Vec3{5, 5, 5}
	pid := NewRatePID(20, 0.5, 0.05, mgl64.Vec3{0.2, 0, 0}, inertia)

	// Integrate ω̇ = τ/I directly; spherical inertia has no gyroscopic term.
	omega := mgl64.Vec3{}
	dt := 1e-3
	for i := 0; i < 5000; i++ {
		tau := pid.Torque(mgl64.QuatIdent(), omega, float64(i)*dt)
		alpha := mgl64.Vec3{tau[0] / inertia[0], tau[1] / inertia[1], tau[2] / inertia[2]}
		omega = omega.Add(alpha.Mul(dt))
	}

	if math.Abs(omega[0]-0.2) > 1e-3 {
		t.Errorf("rate did not converge: %v", omega)
	}
	if math.Abs(omega[1]) > 1e-6 || math.Abs(omega[2]) > 1e-6 {
		t.Errorf("cross-axis rates nonzero: %v", omega)
	}
}

func TestRatePIDReset(t *testing.T) {
	pid := NewRatePID(1, 1, 0, mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})

	pid.Torque(mgl64.QuatIdent(), mgl64.Vec3{1, 0, 0}, 0)
	pid.Torque(mgl64.QuatIdent(), mgl64.Vec3{1, 0, 0}, 0.1)
	if pid.integral.Len() == 0 {
		t.Fatal("integral did not accumulate")
	}

	pid.Reset()
	if pid.integral.Len() != 0 || !pid.first {
		t.Error("reset did not clear state")
	}
}
