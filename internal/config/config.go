// Package config describes simulation scenarios: which bodies to load, how
// the craft starts, the thrust program, the attitude setup, and the stepper
// parameters. Scenarios are plain YAML records.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultReportEvery = 0.05
	DefaultCraftMass   = 200.0
	DefaultCraftRadius = 1.0
)

type Config struct {
	Name        string  `yaml:"name"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"` // 0 = run until collision
	ReportEvery float64 `yaml:"report_every"`
	Policy      string  `yaml:"collision_policy"` // flag|freeze|halt

	Bodies   []string        `yaml:"bodies"` // catalog names, primary first
	Craft    CraftConfig     `yaml:"craft"`
	Thrust   *ThrustConfig   `yaml:"thrust"`
	Attitude *AttitudeConfig `yaml:"attitude"`
}

type CraftConfig struct {
	Name     string       `yaml:"name"`
	Mass     float64      `yaml:"mass"`
	Radius   float64      `yaml:"radius"`
	Altitude float64      `yaml:"altitude"` // used when no orbit is given
	Orbit    *OrbitConfig `yaml:"orbit"`
}

type OrbitConfig struct {
	PlaneNormal  [3]float64 `yaml:"plane_normal"`
	PeriapsisDir [3]float64 `yaml:"periapsis_dir"`
	Periapsis    float64    `yaml:"periapsis"`
	Apoapsis     float64    `yaml:"apoapsis"`
	TrueAnomaly  float64    `yaml:"true_anomaly"`
}

type ThrustConfig struct {
	Direction [3]float64 `yaml:"direction"` // zero = radially outward
	Magnitude float64    `yaml:"magnitude"`
	Units     string     `yaml:"units"` // force|accel
	From      float64    `yaml:"from"`
	Until     float64    `yaml:"until"`
}

type AttitudeConfig struct {
	Inertia    [3]float64 `yaml:"inertia"`
	OmegaB     [3]float64 `yaml:"omega_b"`
	RatePhase  string     `yaml:"rate_phase"` // half|whole
	Controller string     `yaml:"controller"` // none|damper|pid
	MaxAccel   float64    `yaml:"max_accel"`  // damper per-axis clamp
	Kp         float64    `yaml:"kp"`
	Ki         float64    `yaml:"ki"`
	Kd         float64    `yaml:"kd"`
}

// DefaultConfig is the surface-hop scenario: a craft 10 m over the ground,
// co-rotating with the planet, with a short outward burn.
func DefaultConfig() *Config {
	return &Config{
		Name:        "surface-hop",
		Dt:          DefaultDt,
		ReportEvery: DefaultReportEvery,
		Bodies:      []string{"EARTH", "SUN"},
		Craft: CraftConfig{
			Name:     "ship",
			Mass:     DefaultCraftMass,
			Radius:   DefaultCraftRadius,
			Altitude: 10,
		},
		Thrust: &ThrustConfig{
			Magnitude: 15,
			Units:     "force",
			From:      0.5,
			Until:     2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
