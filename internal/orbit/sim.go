package orbit

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// CollisionPolicy decides what happens to integration after a detected
// surface contact. The collided flag is sticky in every mode.
type CollisionPolicy int

const (
	// FlagOnly records the collision and keeps integrating everything.
	FlagOnly CollisionPolicy = iota
	// FreezeCraft stops integrating a collided craft on subsequent steps.
	FreezeCraft
	// HaltStep makes Step a no-op once any collision has been recorded.
	HaltStep
)

func (p CollisionPolicy) String() string {
	switch p {
	case FlagOnly:
		return "flag"
	case FreezeCraft:
		return "freeze"
	case HaltStep:
		return "halt"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy maps a config string to a CollisionPolicy.
func ParsePolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "flag":
		return FlagOnly, nil
	case "freeze":
		return FreezeCraft, nil
	case "halt":
		return HaltStep, nil
	}
	return 0, fmt.Errorf("orbit: unknown collision policy %q", s)
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s *Simulation)
}

// Config carries the fixed parameters of a Simulation.
type Config struct {
	// Dt is the fixed step size in seconds.
	Dt float64
	// ReportEvery is the cadence of the Run report callback; 0 disables it.
	ReportEvery float64
	// Policy decides post-collision integration behavior.
	Policy CollisionPolicy
	// PrimaryBody and PrimaryCraft designate the reference body for
	// snapshots and the craft that receives thrust. Explicit handles, not
	// a positional convention.
	PrimaryBody  int
	PrimaryCraft int
}

// Simulation owns a set of massive bodies and craft and advances them one
// fixed step at a time. Not safe for concurrent use; all mutation happens
// inside Step.
type Simulation struct {
	Time     float64
	Collided bool
	Bodies   []*MassiveBody
	Crafts   []*Craft
	Thrust   *Thrust

	cfg       Config
	observers []Observer
	// Logf receives the collision notice; defaults to fmt.Printf.
	Logf func(format string, args ...any)
}

// New validates the configuration and assembles a simulation.
func New(cfg Config, bodies []*MassiveBody, crafts []*Craft, thrust *Thrust) (*Simulation, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("orbit: dt must be positive, got %g", cfg.Dt)
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("orbit: at least one massive body required")
	}
	if cfg.PrimaryBody < 0 || cfg.PrimaryBody >= len(bodies) {
		return nil, fmt.Errorf("orbit: primary body index %d out of range [0,%d)", cfg.PrimaryBody, len(bodies))
	}
	if len(crafts) > 0 && (cfg.PrimaryCraft < 0 || cfg.PrimaryCraft >= len(crafts)) {
		return nil, fmt.Errorf("orbit: primary craft index %d out of range [0,%d)", cfg.PrimaryCraft, len(crafts))
	}
	return &Simulation{
		Bodies: bodies,
		Crafts: crafts,
		Thrust: thrust,
		cfg:    cfg,
	}, nil
}

// Dt returns the fixed step size.
func (s *Simulation) Dt() float64 { return s.cfg.Dt }

// Policy returns the collision policy.
func (s *Simulation) Policy() CollisionPolicy { return s.cfg.Policy }

// PrimaryBody returns the designated reference body.
func (s *Simulation) PrimaryBody() *MassiveBody { return s.Bodies[s.cfg.PrimaryBody] }

// PrimaryCraft returns the designated thrust-receiving craft, or nil when
// the simulation has no craft.
func (s *Simulation) PrimaryCraft() *Craft {
	if len(s.Crafts) == 0 {
		return nil
	}
	return s.Crafts[s.cfg.PrimaryCraft]
}

// AddObserver registers a post-step hook.
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
		return
	}
	fmt.Printf(format, args...)
}

// Step advances the whole system by one fixed timestep. Craft accelerations
// come from every body (skipping, and flagging, any body whose surface the
// craft has penetrated), plus thrust on the primary craft while its window
// is open. Craft attitude, when present, advances by the same dt. Body-body
// gravity is evaluated from pre-step positions for all
// bodies before any body moves, so the update is explicit and order
// independent. Deterministic: identical state and inputs give identical
// trajectories.
func (s *Simulation) Step() {
	if s.Collided && s.cfg.Policy == HaltStep {
		return
	}
	dt := s.cfg.Dt
	primary := s.PrimaryCraft()

	for _, c := range s.Crafts {
		if c.Collided && s.cfg.Policy == FreezeCraft {
			continue
		}

		var acc mgl64.Vec3
		for _, b := range s.Bodies {
			rel := b.Position.Sub(c.Position)
			dist := rel.Len()
			if dist < b.Radius+c.Radius {
				if !s.Collided {
					s.logf("impact: %s into %s at t=%.3f s\n", c.Name, b.Name, s.Time)
				}
				s.Collided = true
				c.Collided = true
				// Skip this body's pull; the rest of the step still applies.
				continue
			}
			acc = acc.Add(rel.Mul(b.Mu / (dist * dist * dist)))
		}

		if c == primary && s.Thrust != nil {
			acc = acc.Add(s.Thrust.AccelOn(c, s.Time))
		}

		c.Velocity = c.Velocity.Add(acc.Mul(dt))
		c.Position = c.Position.Add(c.Velocity.Mul(dt))

		c.StepAttitude(dt, s.Time)
	}

	// Mutual body gravity, all evaluated from pre-step positions.
	accels := make([]mgl64.Vec3, len(s.Bodies))
	for i, b := range s.Bodies {
		for j, other := range s.Bodies {
			if i == j {
				continue
			}
			rel := other.Position.Sub(b.Position)
			dist := rel.Len()
			accels[i] = accels[i].Add(rel.Mul(other.Mu / (dist * dist * dist)))
		}
	}
	for i, b := range s.Bodies {
		b.Velocity = b.Velocity.Add(accels[i].Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	s.Time += dt

	for _, o := range s.observers {
		o.OnStep(s)
	}
}

// Run steps until a collision is recorded or the context is done, invoking
// report for every craft on the configured cadence. Embedders that drive
// stepping themselves do not need this.
func (s *Simulation) Run(ctx context.Context, report func(Snapshot)) error {
	next := s.Time + s.cfg.ReportEvery
	for !s.Collided {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.Step()

		if report != nil && s.cfg.ReportEvery > 0 && s.Time >= next {
			for _, c := range s.Crafts {
				report(s.Snapshot(c))
			}
			next += s.cfg.ReportEvery
		}
	}
	return nil
}
