// Package orbit simulates the translational motion of gravitating bodies and
// lightweight craft: pairwise Newtonian gravity, explicit Euler integration
// at a fixed timestep, sphere-sphere collision detection, and a time-windowed
// thrust on a designated primary craft.
package orbit

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MassiveBody is a gravitating sphere. Units are SI throughout: meters,
// seconds, and μ = G·mass in m³/s².
type MassiveBody struct {
	Name     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mu       float64
	Radius   float64
	// Axis is the unit spin axis (direction of the north pole).
	Axis mgl64.Vec3
	// Omega is the spin rate in rad/s.
	Omega float64
}

// NewMassiveBody validates the body invariants: μ > 0, radius > 0, unit axis.
// Violations are construction-time failures, never silently corrected.
func NewMassiveBody(name string, pos, vel mgl64.Vec3, mu, radius float64, axis mgl64.Vec3, omega float64) (*MassiveBody, error) {
	if mu <= 0 {
		return nil, fmt.Errorf("orbit: body %q: gravitational parameter must be positive, got %g", name, mu)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("orbit: body %q: radius must be positive, got %g", name, radius)
	}
	if math.Abs(axis.Len()-1.0) > 1e-6 {
		return nil, fmt.Errorf("orbit: body %q: spin axis must be unit length, |axis| = %g", name, axis.Len())
	}
	return &MassiveBody{
		Name:     name,
		Position: pos,
		Velocity: vel,
		Mu:       mu,
		Radius:   radius,
		Axis:     axis,
		Omega:    omega,
	}, nil
}

// SurfaceVelocity returns the inertial velocity of a point co-rotating with
// the body's surface at the given world position: v_body + ω·axis × r_rel.
func (b *MassiveBody) SurfaceVelocity(at mgl64.Vec3) mgl64.Vec3 {
	rel := at.Sub(b.Position)
	return b.Velocity.Add(b.Axis.Mul(b.Omega).Cross(rel))
}

// AccelOn returns the gravitational acceleration the body exerts at a world
// position: μ·r̂/|r|².
func (b *MassiveBody) AccelOn(at mgl64.Vec3) mgl64.Vec3 {
	rel := b.Position.Sub(at)
	d := rel.Len()
	return rel.Mul(b.Mu / (d * d * d))
}
