package control

import "github.com/go-gl/mathgl/mgl64"

// RatePID drives the body rate toward a target rate with a per-axis PID on
// the rate error. The commanded angular acceleration is scaled by the
// principal inertia to form a body-frame torque.
type RatePID struct {
	Kp, Ki, Kd float64
	Target     mgl64.Vec3
	Inertia    mgl64.Vec3

	integral mgl64.Vec3
	prevErr  mgl64.Vec3
	prevT    float64
	first    bool
}

func NewRatePID(kp, ki, kd float64, target, inertia mgl64.Vec3) *RatePID {
	return &RatePID{
		Kp:      kp,
		Ki:      ki,
		Kd:      kd,
		Target:  target,
		Inertia: inertia,
		first:   true,
	}
}

func (p *RatePID) Torque(_ mgl64.Quat, omegaB mgl64.Vec3, t float64) mgl64.Vec3 {
	err := p.Target.Sub(omegaB)

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.torqueFromAlpha(err.Mul(p.Kp))
	}

	dt := t - p.prevT
	if dt <= 0 {
		return p.torqueFromAlpha(err.Mul(p.Kp))
	}

	p.integral = p.integral.Add(err.Mul(dt))
	derivative := err.Sub(p.prevErr).Mul(1 / dt)

	alpha := err.Mul(p.Kp).Add(p.integral.Mul(p.Ki)).Add(derivative.Mul(p.Kd))

	p.prevErr = err
	p.prevT = t

	return p.torqueFromAlpha(alpha)
}

// Reset clears integral and derivative state.
func (p *RatePID) Reset() {
	p.integral = mgl64.Vec3{}
	p.prevErr = mgl64.Vec3{}
	p.first = true
}

func (p *RatePID) torqueFromAlpha(alpha mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{alpha[0] * p.Inertia[0], alpha[1] * p.Inertia[1], alpha[2] * p.Inertia[2]}
}
