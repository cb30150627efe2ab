package orbit

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitSpec describes an initial two-body orbit: the orbital plane, the
// periapsis direction within it, the apsis distances from the body center
// in meters, and the starting true anomaly in radians (0 = periapsis).
type OrbitSpec struct {
	PlaneNormal  mgl64.Vec3
	PeriapsisDir mgl64.Vec3
	Periapsis    float64
	Apoapsis     float64
	TrueAnomaly  float64
}

// LEO is a circular-ish low orbit around an Earth-sized body, 200 km up.
func LEO() OrbitSpec {
	return OrbitSpec{
		PlaneNormal:  mgl64.Vec3{0, 0, 1},
		PeriapsisDir: mgl64.Vec3{1, 0, 0},
		Periapsis:    6.578e6,
		Apoapsis:     6.678e6,
	}
}

// Place sets the craft's position and velocity on the specified orbit around
// the body, using the perifocal frame. The periapsis direction must be
// perpendicular to the plane normal; a violation rejects the scenario.
func (o OrbitSpec) Place(body *MassiveBody, craft *Craft) error {
	if o.Periapsis <= 0 {
		return fmt.Errorf("orbit: periapsis must be positive, got %g", o.Periapsis)
	}
	if o.Apoapsis < o.Periapsis {
		return fmt.Errorf("orbit: apoapsis %g below periapsis %g", o.Apoapsis, o.Periapsis)
	}

	nHat := o.PlaneNormal.Normalize()
	pHat := o.PeriapsisDir.Normalize()
	if math.Abs(nHat.Dot(pHat)) > 1e-6 {
		return fmt.Errorf("orbit: periapsis direction must be perpendicular to plane normal (dot = %g)", nHat.Dot(pHat))
	}

	a := (o.Periapsis + o.Apoapsis) / 2
	e := (o.Apoapsis - o.Periapsis) / (o.Apoapsis + o.Periapsis)
	p := a * (1 - e*e)

	qHat := nHat.Cross(pHat)
	nu := o.TrueAnomaly
	r := p / (1 + e*math.Cos(nu))

	rel := pHat.Mul(math.Cos(nu)).Add(qHat.Mul(math.Sin(nu))).Mul(r)
	vrel := pHat.Mul(-math.Sin(nu)).Add(qHat.Mul(e + math.Cos(nu))).Mul(math.Sqrt(body.Mu / p))

	craft.Position = body.Position.Add(rel)
	craft.Velocity = body.Velocity.Add(vrel)
	return nil
}
