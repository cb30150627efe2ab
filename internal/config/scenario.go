package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/attitude"
	"github.com/tycho-sim/tycho/internal/control"
	"github.com/tycho-sim/tycho/internal/ephemeris"
	"github.com/tycho-sim/tycho/internal/orbit"
)

// Build assembles a simulation from the scenario. Bodies are resolved
// through the ephemeris handle; unknown, barycenter, and negligible-mass
// entries are skipped rather than failing the whole setup, except that the
// first (primary) body must resolve.
func (c *Config) Build(h *ephemeris.Handle) (*orbit.Simulation, error) {
	if len(c.Bodies) == 0 {
		return nil, fmt.Errorf("config: scenario needs at least one body")
	}

	var bodies []*orbit.MassiveBody
	for i, name := range c.Bodies {
		rec, err := h.Lookup(name)
		if err == nil {
			err = ephemeris.Suitable(rec)
		}
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("config: primary body %s: %w", name, err)
			}
			continue
		}
		b, err := orbit.NewMassiveBody(rec.Name, rec.Position, rec.Velocity, rec.Mu, rec.Radius, rec.Axis, rec.Omega)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, b)
	}
	primary := bodies[0]

	dt := c.Dt
	if dt == 0 {
		dt = DefaultDt
	}

	craft, err := c.buildCraft(primary)
	if err != nil {
		return nil, err
	}

	thrust, err := c.buildThrust(primary, craft)
	if err != nil {
		return nil, err
	}

	if err := c.attachAttitude(craft, dt); err != nil {
		return nil, err
	}

	policy, err := orbit.ParsePolicy(c.Policy)
	if err != nil {
		return nil, err
	}

	return orbit.New(orbit.Config{
		Dt:          dt,
		ReportEvery: c.ReportEvery,
		Policy:      policy,
	}, bodies, []*orbit.Craft{craft}, thrust)
}

func (c *Config) buildCraft(primary *orbit.MassiveBody) (*orbit.Craft, error) {
	cc := c.Craft
	name := cc.Name
	if name == "" {
		name = "ship"
	}
	mass := cc.Mass
	if mass == 0 {
		mass = DefaultCraftMass
	}
	radius := cc.Radius
	if radius == 0 {
		radius = DefaultCraftRadius
	}

	if cc.Orbit == nil {
		craft := orbit.NewCraftAbove(name, primary, cc.Altitude)
		craft.Mass = mass
		craft.Radius = radius
		return craft, nil
	}

	craft, err := orbit.NewCraft(name, mgl64.Vec3{}, mgl64.Vec3{}, mass, radius)
	if err != nil {
		return nil, err
	}
	oc := cc.Orbit
	spec := orbit.OrbitSpec{
		PlaneNormal:  mgl64.Vec3(oc.PlaneNormal),
		PeriapsisDir: mgl64.Vec3(oc.PeriapsisDir),
		Periapsis:    oc.Periapsis,
		Apoapsis:     oc.Apoapsis,
		TrueAnomaly:  oc.TrueAnomaly,
	}
	if err := spec.Place(primary, craft); err != nil {
		return nil, err
	}
	return craft, nil
}

func (c *Config) buildThrust(primary *orbit.MassiveBody, craft *orbit.Craft) (*orbit.Thrust, error) {
	if c.Thrust == nil {
		return nil, nil
	}
	tc := c.Thrust

	dir := mgl64.Vec3(tc.Direction)
	if dir.Len() == 0 {
		// Default to straight up from the primary body.
		dir = craft.Position.Sub(primary.Position).Normalize()
	}

	var units orbit.ThrustUnits
	switch tc.Units {
	case "", "force":
		units = orbit.Force
	case "accel":
		units = orbit.Acceleration
	default:
		return nil, fmt.Errorf("config: unknown thrust units %q", tc.Units)
	}

	return &orbit.Thrust{
		Direction: dir,
		Magnitude: tc.Magnitude,
		Units:     units,
		From:      tc.From,
		Until:     tc.Until,
	}, nil
}

func (c *Config) attachAttitude(craft *orbit.Craft, dt float64) error {
	if c.Attitude == nil {
		return nil
	}
	ac := c.Attitude

	var phase attitude.RatePhase
	switch ac.RatePhase {
	case "", "half":
		phase = attitude.RateAtHalfStep
	case "whole":
		phase = attitude.RateAtWholeStep
	default:
		return fmt.Errorf("config: unknown rate phase %q", ac.RatePhase)
	}

	inertia := mgl64.Vec3(ac.Inertia)
	state, err := attitude.New(mgl64.QuatIdent(), mgl64.Vec3(ac.OmegaB), inertia, mgl64.Vec3{}, phase, dt)
	if err != nil {
		return err
	}
	craft.Attitude = state

	switch ac.Controller {
	case "", "none":
		craft.Torque = control.None{}
	case "damper":
		maxAccel := ac.MaxAccel
		if maxAccel == 0 {
			maxAccel = 0.25
		}
		craft.Torque = control.NewRateDamper(inertia, mgl64.Vec3{maxAccel, maxAccel, maxAccel})
	case "pid":
		craft.Torque = control.NewRatePID(ac.Kp, ac.Ki, ac.Kd, mgl64.Vec3{}, inertia)
	default:
		return fmt.Errorf("config: unknown controller %q", ac.Controller)
	}
	return nil
}
