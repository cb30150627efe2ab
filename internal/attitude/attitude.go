// Package attitude integrates the rotational state of a rigid body under the
// Euler equation I·ω̇ = τ − ω × (I·ω) in the body's principal-axis frame.
//
// Two integrators are provided. State implements the predictor-corrector
// half-step scheme (PCDM) and is the one to use; Leapfrog is the simpler
// kick-drift-kick scheme on angular momentum, kept for cross-checking.
//
// Both schemes stagger their state in time: the rate (or momentum) is offset
// from the orientation by half a timestep. Callers must not read the rate as
// if it were synchronized with the orientation.
package attitude

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/rotation"
)

// RatePhase states how a caller-supplied initial angular rate is aligned
// relative to the half-step staggering of the integrator state.
type RatePhase int

const (
	// RateAtHalfStep means the supplied rate is already ω_b(n+1/2) and is
	// used directly.
	RateAtHalfStep RatePhase = iota
	// RateAtWholeStep means the supplied rate is ω_b(n); it is advanced by
	// half a step using the angular acceleration from the initial torque.
	RateAtWholeStep
)

// State is the rotational state of one rigid body under the PCDM scheme.
// The orientation (body→world) and the body-frame rate both live at
// half-integer steps n+1/2, while the cached angular acceleration lives at
// the previous whole step n.
type State struct {
	// QBW is the body→world orientation at the current half step.
	QBW mgl64.Quat
	// OmegaB is the body-frame angular rate at the current half step.
	OmegaB mgl64.Vec3

	inertia      mgl64.Vec3
	omegaDotPrev mgl64.Vec3
}

func validateInertia(inertia mgl64.Vec3) error {
	for i := 0; i < 3; i++ {
		if inertia[i] <= 0 {
			return fmt.Errorf("attitude: inertia component %d must be positive, got %g", i, inertia[i])
		}
	}
	return nil
}

// New constructs a PCDM state from an orientation, an initial body-frame
// rate, the principal moments of inertia and the body-frame torque at the
// initial instant. phase selects whether omegaB is already the half-step
// value or a whole-step value to be shifted forward by dt/2.
func New(q mgl64.Quat, omegaB, inertia, tauB mgl64.Vec3, phase RatePhase, dt float64) (*State, error) {
	if err := validateInertia(inertia); err != nil {
		return nil, err
	}

	s := &State{
		QBW:     q.Normalize(),
		inertia: inertia,
	}
	s.omegaDotPrev = s.omegaDot(omegaB, tauB)

	switch phase {
	case RateAtHalfStep:
		s.OmegaB = omegaB
	case RateAtWholeStep:
		s.OmegaB = omegaB.Add(s.omegaDotPrev.Mul(0.5 * dt))
	default:
		return nil, fmt.Errorf("attitude: unknown rate phase %d", phase)
	}

	return s, nil
}

// omegaDot evaluates the Euler equation: ω̇ = I⁻¹·(τ − ω × (I·ω)).
// Componentwise since I is diagonal in the body frame.
func (s *State) omegaDot(omegaB, tauB mgl64.Vec3) mgl64.Vec3 {
	iOmega := compMul(s.inertia, omegaB)
	coriolis := omegaB.Cross(iOmega)
	return compDiv(tauB.Sub(coriolis), s.inertia)
}

// Step advances the state one timestep under the body-frame torque at the
// next whole step, τ_b(n+1). Torque that depends on attitude must be
// computed from the previously committed orientation; the one-step lag is
// part of the contract.
func (s *State) Step(dt float64, tauB mgl64.Vec3) {
	// Predict the 3/4-step rate and the whole-step orientation.
	omegaB34 := s.OmegaB.Add(s.omegaDotPrev.Mul(0.25 * dt))
	omegaW34 := s.QBW.Rotate(omegaB34)
	qPred := rotation.ExpMap(omegaW34.Mul(0.5 * dt)).Mul(s.QBW)

	// Predict the whole-step rate and express it in the world frame.
	omegaBPred := s.OmegaB.Add(s.omegaDotPrev.Mul(0.5 * dt))
	omegaWPred := qPred.Rotate(omegaBPred)

	// New angular acceleration from the supplied torque and predicted rate.
	omegaDotNext := s.omegaDot(omegaBPred, tauB)

	// Correct both to the next half step and commit.
	s.OmegaB = s.OmegaB.Add(omegaDotNext.Mul(dt))
	s.QBW = rotation.ExpMap(omegaWPred.Mul(dt)).Mul(s.QBW).Normalize()
	s.omegaDotPrev = omegaDotNext
}

// Inertia returns the principal moments of inertia.
func (s *State) Inertia() mgl64.Vec3 { return s.inertia }

// MomentumBody returns the angular momentum I·ω in the body frame.
func (s *State) MomentumBody() mgl64.Vec3 {
	return compMul(s.inertia, s.OmegaB)
}

// MomentumWorld returns the angular momentum in the world frame.
func (s *State) MomentumWorld() mgl64.Vec3 {
	return s.QBW.Rotate(s.MomentumBody())
}

// OmegaWorld returns the half-step rate in the world frame.
func (s *State) OmegaWorld() mgl64.Vec3 {
	return s.QBW.Rotate(s.OmegaB)
}

// KineticEnergy returns the rotational kinetic energy ½·ω·(I·ω).
func (s *State) KineticEnergy() float64 {
	return 0.5 * s.OmegaB.Dot(s.MomentumBody())
}

func compMul(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func compDiv(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}
