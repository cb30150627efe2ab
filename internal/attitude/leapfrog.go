package attitude

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/rotation"
)

// Leapfrog is the basic kick-drift-kick integrator on angular momentum.
// The orientation lives at whole steps, the body-frame momentum at half
// steps. Torque is supplied in the world frame and re-resolved into the
// body frame after the drift, so slowly varying world torques stay
// consistent with the rotated body.
type Leapfrog struct {
	// QBW is the body→world orientation at the current whole step.
	QBW mgl64.Quat
	// LB is the body-frame angular momentum at the current half step.
	LB mgl64.Vec3

	inertia mgl64.Vec3
}

// NewLeapfrog constructs a leapfrog state from an orientation, the initial
// angular momentum in the world frame, and the principal moments of inertia.
func NewLeapfrog(q mgl64.Quat, lWorld, inertia mgl64.Vec3) (*Leapfrog, error) {
	if err := validateInertia(inertia); err != nil {
		return nil, err
	}
	qn := q.Normalize()
	return &Leapfrog{
		QBW:     qn,
		LB:      rotation.ToBody(qn, lWorld),
		inertia: inertia,
	}, nil
}

// Step advances the state by dt under a world-frame torque.
func (l *Leapfrog) Step(dt float64, tauW mgl64.Vec3) {
	// Half kick.
	omega := compDiv(l.LB, l.inertia)
	tauB := rotation.ToBody(l.QBW, tauW)
	l.LB = l.LB.Add(l.LB.Cross(omega).Add(tauB).Mul(0.5 * dt))

	// Drift: the increment is a body-frame rotation, so it right-multiplies.
	omega = compDiv(l.LB, l.inertia)
	l.QBW = l.QBW.Mul(rotation.ExpMap(omega.Mul(dt))).Normalize()

	// Half kick with the torque resolved in the new orientation.
	tauB = rotation.ToBody(l.QBW, tauW)
	omega = compDiv(l.LB, l.inertia)
	l.LB = l.LB.Add(l.LB.Cross(omega).Add(tauB).Mul(0.5 * dt))
}

// Inertia returns the principal moments of inertia.
func (l *Leapfrog) Inertia() mgl64.Vec3 { return l.inertia }

// MomentumWorld returns the angular momentum in the world frame.
func (l *Leapfrog) MomentumWorld() mgl64.Vec3 {
	return l.QBW.Rotate(l.LB)
}

// KineticEnergy returns the rotational kinetic energy ½·ω·(I·ω).
func (l *Leapfrog) KineticEnergy() float64 {
	omega := compDiv(l.LB, l.inertia)
	return 0.5 * omega.Dot(l.LB)
}
