package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultDamperGain maps the rate magnitude to the commanded counter
// acceleration before clamping. High enough that the damper saturates until
// the rate is nearly killed, then eases off to settle without overshoot.
const DefaultDamperGain = 64.0

// RateDamper opposes the current body rate axis by axis, clamping the
// commanded angular acceleration per axis. It reproduces a reaction-control
// "kill rotation" hold mode.
type RateDamper struct {
	Inertia  mgl64.Vec3
	MaxAccel mgl64.Vec3
	Gain     float64
}

// NewRateDamper builds a damper for a body with the given principal inertia
// and per-axis angular-acceleration limits.
func NewRateDamper(inertia, maxAccel mgl64.Vec3) *RateDamper {
	return &RateDamper{Inertia: inertia, MaxAccel: maxAccel, Gain: DefaultDamperGain}
}

func (d *RateDamper) Torque(_ mgl64.Quat, omegaB mgl64.Vec3, _ float64) mgl64.Vec3 {
	var tau mgl64.Vec3
	for i := 0; i < 3; i++ {
		w := omegaB[i]
		if w == 0 {
			continue
		}
		alpha := -sign(w) * math.Min(math.Abs(w)*d.Gain, d.MaxAccel[i])
		tau[i] = alpha * d.Inertia[i]
	}
	return tau
}

// Settled reports whether the rate is low enough that the damper commands a
// negligible correction on every axis.
func (d *RateDamper) Settled(omegaB mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(omegaB[i])*d.Gain > 1e-6 {
			return false
		}
	}
	return true
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
