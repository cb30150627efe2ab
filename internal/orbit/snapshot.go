package orbit

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Snapshot is a human-readable view of one craft relative to the primary
// body: a pure function of state, for observability and testing.
type Snapshot struct {
	Craft    string
	Time     float64
	Altitude float64
	// Speed is the radial (vertical) speed relative to the primary body.
	Speed float64
	// HSpeed is the horizontal speed relative to the rotating surface.
	HSpeed   float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Collided bool
}

// Snapshot reports the craft's altitude, vertical speed and ground-relative
// horizontal speed with respect to the primary body.
func (s *Simulation) Snapshot(c *Craft) Snapshot {
	b := s.PrimaryBody()
	rel := c.Position.Sub(b.Position)
	up := rel.Normalize()
	relVel := c.Velocity.Sub(b.Velocity)
	speed := relVel.Dot(up)
	ground := b.Axis.Mul(b.Omega).Cross(up.Mul(b.Radius))
	hspeed := relVel.Sub(up.Mul(speed)).Sub(ground).Len()

	return Snapshot{
		Craft:    c.Name,
		Time:     s.Time,
		Altitude: rel.Len() - b.Radius,
		Speed:    speed,
		HSpeed:   hspeed,
		Position: c.Position,
		Velocity: c.Velocity,
		Collided: c.Collided,
	}
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("Time: %6.3f s Altitude: %.3f m, Speed: %.3f m/s, hSpeed: %.3f m/s",
		sn.Time, sn.Altitude, sn.Speed, sn.HSpeed)
}

// SpecificEnergy returns the craft's specific orbital energy v²/2 − μ/r
// relative to the primary body.
func (s *Simulation) SpecificEnergy(c *Craft) float64 {
	b := s.PrimaryBody()
	rel := c.Position.Sub(b.Position)
	relVel := c.Velocity.Sub(b.Velocity)
	v := relVel.Len()
	return v*v/2 - b.Mu/rel.Len()
}
