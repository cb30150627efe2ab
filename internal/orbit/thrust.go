package orbit

import "github.com/go-gl/mathgl/mgl64"

// ThrustUnits states what the thrust magnitude means. The source scenarios
// disagreed on this, so it is an explicit configuration choice.
type ThrustUnits int

const (
	// Force means Magnitude is in newtons and is divided by the craft mass.
	Force ThrustUnits = iota
	// Acceleration means Magnitude is already in m/s².
	Acceleration
)

// Thrust is a time-gated constant-direction force or acceleration.
// Immutable after construction; active on the closed interval [From, Until]
// in simulation seconds.
type Thrust struct {
	Direction mgl64.Vec3
	Magnitude float64
	Units     ThrustUnits
	From      float64
	Until     float64
}

// Active reports whether the thrust applies at the given simulation time.
func (t Thrust) Active(time float64) bool {
	return time >= t.From && time <= t.Until
}

// AccelOn returns the acceleration the thrust imparts on the craft at the
// given time, zero outside the window. The direction is renormalized on
// every evaluation, so a non-unit input direction is tolerated.
func (t Thrust) AccelOn(c *Craft, time float64) mgl64.Vec3 {
	if !t.Active(time) {
		return mgl64.Vec3{}
	}
	mag := t.Magnitude
	if t.Units == Force {
		mag /= c.Mass
	}
	return t.Direction.Normalize().Mul(mag)
}
