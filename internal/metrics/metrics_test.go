package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/attitude"
	"github.com/tycho-sim/tycho/internal/orbit"
)

func circularSim(t *testing.T) (*orbit.Simulation, *orbit.Craft) {
	t.Helper()
	body, err := orbit.NewMassiveBody("earth", mgl64.Vec3{}, mgl64.Vec3{}, 3.986004418e14, 6.371e6, mgl64.Vec3{0, 0, 1}, 0)
	if err != nil {
		t.Fatalf("body: %v", err)
	}
	craft := &orbit.Craft{Name: "c", Mass: 100, Radius: 1}
	spec := orbit.OrbitSpec{
		PlaneNormal:  mgl64.Vec3{0, 0, 1},
		PeriapsisDir: mgl64.Vec3{1, 0, 0},
		Periapsis:    7.0e6,
		Apoapsis:     7.0e6,
	}
	if err := spec.Place(body, craft); err != nil {
		t.Fatalf("place: %v", err)
	}
	sim, err := orbit.New(orbit.Config{Dt: 0.5}, []*orbit.MassiveBody{body}, []*orbit.Craft{craft}, nil)
	if err != nil {
		t.Fatalf("sim: %v", err)
	}
	sim.Logf = func(string, ...any) {}
	return sim, craft
}

func TestOrbitalEnergyDriftObserved(t *testing.T) {
	sim, craft := circularSim(t)
	m := NewOrbitalEnergyDrift(sim, craft)
	sim.AddObserver(m)

	for i := 0; i < 1000; i++ {
		sim.Step()
	}

	// Euler drifts, but only a little over 500 s of a 5800 s orbit.
	if m.Value() <= 0 {
		t.Error("expected nonzero drift from Euler integration")
	}
	if m.Value() > 0.01 {
		t.Errorf("drift implausibly large: %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear drift")
	}
}

func TestMomentumDriftZeroTorque(t *testing.T) {
	s, err := attitude.New(mgl64.QuatIdent(), mgl64.Vec3{0, 5, 0}, mgl64.Vec3{373, 415, 78}, mgl64.Vec3{}, attitude.RateAtHalfStep, 1e-3)
	if err != nil {
		t.Fatalf("attitude: %v", err)
	}

	m := NewMomentumDrift(s)
	e := NewRotationalEnergyDrift(s)
	for i := 0; i < 5000; i++ {
		s.Step(1e-3, mgl64.Vec3{})
		m.Observe(float64(i) * 1e-3)
		e.Observe(float64(i) * 1e-3)
	}

	if m.Value() > 1e-9 {
		t.Errorf("momentum drift %v for principal-axis spin", m.Value())
	}
	if e.Value() > 1e-9 {
		t.Errorf("energy drift %v for principal-axis spin", e.Value())
	}
}

func TestFlipCounterSeesTumble(t *testing.T) {
	s, err := attitude.New(mgl64.QuatIdent(), mgl64.Vec3{8, 0, 0.01}, mgl64.Vec3{373, 415, 78}, mgl64.Vec3{}, attitude.RateAtHalfStep, 1e-4)
	if err != nil {
		t.Fatalf("attitude: %v", err)
	}

	fc := NewFlipCounter(s, 0, 1.0)
	for i := 0; i < 100000; i++ {
		s.Step(1e-4, mgl64.Vec3{})
		fc.Observe(float64(i) * 1e-4)
	}

	if fc.Value() == 0 {
		t.Error("no flips counted on an intermediate-axis tumble")
	}

	fc.Reset()
	if fc.Value() != 0 {
		t.Error("reset did not clear count")
	}
}

func TestStableSpinHasNoFlips(t *testing.T) {
	s, err := attitude.New(mgl64.QuatIdent(), mgl64.Vec3{0, 8, 0}, mgl64.Vec3{373, 415, 78}, mgl64.Vec3{}, attitude.RateAtHalfStep, 1e-3)
	if err != nil {
		t.Fatalf("attitude: %v", err)
	}

	fc := NewFlipCounter(s, 1, 1.0)
	for i := 0; i < 20000; i++ {
		s.Step(1e-3, mgl64.Vec3{})
		fc.Observe(float64(i) * 1e-3)
	}

	if fc.Value() != 0 {
		t.Errorf("max-axis spin flipped %v times", fc.Value())
	}
	if math.Abs(s.OmegaB[1]-8) > 1e-9 {
		t.Errorf("max-axis rate changed: %v", s.OmegaB)
	}
}
