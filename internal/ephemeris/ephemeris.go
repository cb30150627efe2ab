// Package ephemeris supplies one-shot body-data snapshots for simulation
// setup. Providers are queried once per body at startup; the kernel never
// consults them while stepping.
package ephemeris

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNotFound is returned when a provider has no data for a body.
var ErrNotFound = errors.New("ephemeris: body not found")

// ErrClosed is returned on lookups through a closed handle.
var ErrClosed = errors.New("ephemeris: handle closed")

// MinMu is the smallest gravitational parameter worth simulating, in m³/s²
// (1 km³/s²). Bodies below it are negligible-mass and get filtered out.
const MinMu = 1e9

// Record is a snapshot of a body's physical and state data at the provider's
// epoch. SI units: meters, seconds, m³/s².
type Record struct {
	Name     string
	Mu       float64
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
	Axis     mgl64.Vec3
	Omega    float64
}

// Provider returns body snapshots by name. Implementations need not be safe
// for concurrent use; wrap one in a Handle to serialize access.
type Provider interface {
	Lookup(name string) (Record, error)
	Names() []string
}

// Suitable reports whether a record describes a body worth constructing:
// barycenters and sub-threshold masses are excluded by the setup code, not
// treated as errors.
func Suitable(r Record) error {
	if strings.HasSuffix(r.Name, " BARYCENTER") {
		return fmt.Errorf("ephemeris: %s is a barycenter", r.Name)
	}
	if r.Mu < MinMu {
		return fmt.Errorf("ephemeris: %s gravitational parameter %g below threshold", r.Name, r.Mu)
	}
	return nil
}
