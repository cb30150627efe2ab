package orbit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/attitude"
	"github.com/tycho-sim/tycho/internal/control"
)

// Craft is a non-gravitating point/sphere. Mass only matters when thrust is
// expressed as a force; gravity is mass-independent. A craft may carry a
// rotational state and a torque source, advanced alongside the orbital
// state each step.
type Craft struct {
	Name     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Mass     float64
	// Radius is the collision radius for the sphere-sphere test.
	Radius float64
	// Collided is sticky: set on first surface contact, never cleared.
	Collided bool

	Attitude *attitude.State
	Torque   control.TorqueSource
}

// NewCraft validates the craft invariants (mass > 0, radius > 0).
func NewCraft(name string, pos, vel mgl64.Vec3, mass, radius float64) (*Craft, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("orbit: craft %q: mass must be positive, got %g", name, mass)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("orbit: craft %q: radius must be positive, got %g", name, radius)
	}
	return &Craft{Name: name, Position: pos, Velocity: vel, Mass: mass, Radius: radius}, nil
}

// NewCraftAbove places a craft at the given altitude above a body's surface,
// along an arbitrary fixed direction, co-rotating with the surface as if
// sitting still on the ground.
func NewCraftAbove(name string, body *MassiveBody, altitude float64) *Craft {
	loc := mgl64.Vec3{1, 1, 0.2}.Normalize()
	pos := body.Position.Add(loc.Mul(body.Radius + altitude))
	return &Craft{
		Name:     name,
		Position: pos,
		Velocity: body.SurfaceVelocity(pos),
		Mass:     200,
		Radius:   1,
	}
}

// StepAttitude advances the craft's rotational state by dt, pulling the next
// body-frame torque from the attached source. No-op without an attitude.
func (c *Craft) StepAttitude(dt, t float64) {
	if c.Attitude == nil {
		return
	}
	var tau mgl64.Vec3
	if c.Torque != nil {
		tau = c.Torque.Torque(c.Attitude.QBW, c.Attitude.OmegaB, t)
	}
	c.Attitude.Step(dt, tau)
}
