// Package control provides torque sources for the attitude integrator.
//
// A source is queried once per tick with the previously committed
// orientation and rate; the returned body-frame torque feeds the next
// integrator step. The one-step lag matches the integrator contract.
package control

import "github.com/go-gl/mathgl/mgl64"

// TorqueSource supplies the body-frame torque for the next attitude step.
type TorqueSource interface {
	Torque(q mgl64.Quat, omegaB mgl64.Vec3, t float64) mgl64.Vec3
}

// None commands zero torque.
type None struct{}

func (None) Torque(mgl64.Quat, mgl64.Vec3, float64) mgl64.Vec3 {
	return mgl64.Vec3{}
}

// Constant commands a fixed body-frame torque.
type Constant struct {
	TauB mgl64.Vec3
}

func (c Constant) Torque(mgl64.Quat, mgl64.Vec3, float64) mgl64.Vec3 {
	return c.TauB
}
