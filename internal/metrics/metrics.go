// Package metrics tracks conservation quantities across a run: specific
// orbital energy, angular momentum, and rotational kinetic energy. Metrics
// are observational only; they never influence the integration.
package metrics

import (
	"math"

	"github.com/tycho-sim/tycho/internal/attitude"
	"github.com/tycho-sim/tycho/internal/orbit"
)

// Metric accumulates one scalar over repeated observations.
type Metric interface {
	Name() string
	Observe(t float64)
	Value() float64
	Reset()
}

// drift tracks the maximum relative deviation of a sampled quantity from
// its first observed value.
type drift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func (d *drift) observe(v float64) {
	if d.samples == 0 {
		d.initial = v
	}
	d.samples++
	if d.initial != 0 {
		rel := math.Abs(v-d.initial) / math.Abs(d.initial)
		d.maxDrift = math.Max(d.maxDrift, rel)
	}
}

func (d *drift) reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}

// OrbitalEnergyDrift tracks the specific orbital energy of a craft relative
// to the simulation's primary body.
type OrbitalEnergyDrift struct {
	sim   *orbit.Simulation
	craft *orbit.Craft
	drift
}

func NewOrbitalEnergyDrift(sim *orbit.Simulation, craft *orbit.Craft) *OrbitalEnergyDrift {
	return &OrbitalEnergyDrift{sim: sim, craft: craft}
}

func (m *OrbitalEnergyDrift) Name() string      { return "orbital_energy_drift" }
func (m *OrbitalEnergyDrift) Observe(_ float64) { m.observe(m.sim.SpecificEnergy(m.craft)) }
func (m *OrbitalEnergyDrift) Value() float64    { return m.maxDrift }
func (m *OrbitalEnergyDrift) Reset()            { m.reset() }

// OnStep lets the metric hang off the simulation's observer hook.
func (m *OrbitalEnergyDrift) OnStep(s *orbit.Simulation) { m.Observe(s.Time) }

// MomentumDrift tracks the magnitude of a rigid body's angular momentum.
type MomentumDrift struct {
	state *attitude.State
	drift
}

func NewMomentumDrift(state *attitude.State) *MomentumDrift {
	return &MomentumDrift{state: state}
}

func (m *MomentumDrift) Name() string      { return "angular_momentum_drift" }
func (m *MomentumDrift) Observe(_ float64) { m.observe(m.state.MomentumWorld().Len()) }
func (m *MomentumDrift) Value() float64    { return m.maxDrift }
func (m *MomentumDrift) Reset()            { m.reset() }

// RotationalEnergyDrift tracks a rigid body's rotational kinetic energy.
type RotationalEnergyDrift struct {
	state *attitude.State
	drift
}

func NewRotationalEnergyDrift(state *attitude.State) *RotationalEnergyDrift {
	return &RotationalEnergyDrift{state: state}
}

func (m *RotationalEnergyDrift) Name() string      { return "rotational_energy_drift" }
func (m *RotationalEnergyDrift) Observe(_ float64) { m.observe(m.state.KineticEnergy()) }
func (m *RotationalEnergyDrift) Value() float64    { return m.maxDrift }
func (m *RotationalEnergyDrift) Reset()            { m.reset() }

// FlipCounter counts sign reversals of one body-rate component, the visible
// signature of the intermediate-axis tumble.
type FlipCounter struct {
	state     *attitude.State
	axis      int
	threshold float64
	sign      float64
	flips     int
}

// NewFlipCounter watches the given body axis; a flip is recorded when the
// rate crosses past -threshold on the opposite side.
func NewFlipCounter(state *attitude.State, axis int, threshold float64) *FlipCounter {
	return &FlipCounter{state: state, axis: axis, threshold: threshold, sign: 1}
}

func (m *FlipCounter) Name() string { return "axis_flips" }

func (m *FlipCounter) Observe(_ float64) {
	if m.state.OmegaB[m.axis]*m.sign < -m.threshold {
		m.flips++
		m.sign = -m.sign
	}
}

func (m *FlipCounter) Value() float64 { return float64(m.flips) }

func (m *FlipCounter) Reset() {
	m.flips = 0
	m.sign = 1
}
