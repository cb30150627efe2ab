package ephemeris

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Catalog is a static in-memory provider with built-in constants at the
// epoch 2025-Sep-23 00:00:00 TDB (Earth state from the NASA Horizons
// ephemeris for that instant), heliocentric ecliptic frame, Z up.
type Catalog struct {
	bodies map[string]Record
}

// Builtin returns the built-in solar-system catalog. It deliberately
// includes a barycenter entry and a negligible-mass body so that setup-side
// filtering has something to filter.
func Builtin() *Catalog {
	tilt := 23.5 * math.Pi / 180
	earthAxis := mgl64.Vec3{0, math.Sin(tilt), math.Cos(tilt)}

	bodies := []Record{
		{
			Name:   "SUN",
			Mu:     1.32712440018e20,
			Radius: 6.9634e8,
			Axis:   mgl64.Vec3{0, 0, 1},
			// Rotation neglected for now.
			Omega: 0,
		},
		{
			Name:     "EARTH",
			Mu:       3.986004418e14,
			Radius:   6.371e6,
			Position: mgl64.Vec3{1.495620660480920e11, -1.147519768700426e9, 2.115514734450541e7},
			Velocity: mgl64.Vec3{-4.082628156136917e2, 2.968689110543276e4, -9.955089786526372e-1},
			Axis:     earthAxis,
			// One rotation per sidereal day.
			Omega: 2 * math.Pi / 86164.0,
		},
		{
			Name:   "MOON",
			Mu:     4.9048695e12,
			Radius: 1.7374e6,
			// Approximate circular orbit relative to the Earth entry above.
			Position: mgl64.Vec3{1.495620660480920e11 + 3.844e8, -1.147519768700426e9, 2.115514734450541e7},
			Velocity: mgl64.Vec3{-4.082628156136917e2, 2.968689110543276e4 + 1.022e3, -9.955089786526372e-1},
			Axis:     mgl64.Vec3{0, 0, 1},
			Omega:    2 * math.Pi / (27.322 * 86400),
		},
		{
			Name:   "SOLAR SYSTEM BARYCENTER",
			Mu:     1.32712440018e20,
			Radius: 1,
			Axis:   mgl64.Vec3{0, 0, 1},
		},
		{
			Name:     "PHOBOS",
			Mu:       7.0765e5,
			Radius:   1.1e4,
			Position: mgl64.Vec3{2.28e11, 0, 0},
			Axis:     mgl64.Vec3{0, 0, 1},
		},
	}

	m := make(map[string]Record, len(bodies))
	for _, b := range bodies {
		m[b.Name] = b
	}
	return &Catalog{bodies: m}
}

func (c *Catalog) Lookup(name string) (Record, error) {
	r, ok := c.bodies[name]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// Names returns the catalog entries sorted by decreasing gravitational
// parameter, the heaviest first.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.bodies))
	for n := range c.bodies {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.bodies[names[i]], c.bodies[names[j]]
		if a.Mu != b.Mu {
			return a.Mu > b.Mu
		}
		return a.Name < b.Name
	})
	return names
}
