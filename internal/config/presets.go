package config

var Presets = map[string]*Config{
	"surface-hop": DefaultConfig(),
	"leo": {
		Name: "leo", Dt: 0.25, Duration: 6000, ReportEvery: 60,
		Bodies: []string{"EARTH", "SUN"},
		Craft: CraftConfig{
			Name: "ship", Mass: DefaultCraftMass, Radius: DefaultCraftRadius,
			Orbit: &OrbitConfig{
				PlaneNormal:  [3]float64{0, 0, 1},
				PeriapsisDir: [3]float64{1, 0, 0},
				Periapsis:    6.578e6,
				Apoapsis:     6.678e6,
			},
		},
	},
	"deorbit": {
		Name: "deorbit", Dt: 0.25, Duration: 12000, ReportEvery: 60,
		Policy: "halt",
		Bodies: []string{"EARTH", "SUN"},
		Craft: CraftConfig{
			Name: "ship", Mass: DefaultCraftMass, Radius: DefaultCraftRadius,
			Orbit: &OrbitConfig{
				PlaneNormal:  [3]float64{0, 0, 1},
				PeriapsisDir: [3]float64{1, 0, 0},
				Periapsis:    6.578e6,
				Apoapsis:     6.678e6,
			},
		},
		Thrust: &ThrustConfig{
			Direction: [3]float64{0, -1, 0},
			Magnitude: 1.2, Units: "accel",
			From: 0, Until: 120,
		},
	},
	"tennis": {
		Name: "tennis", Dt: 1e-4, Duration: 60, ReportEvery: 1,
		Bodies: []string{"EARTH", "SUN"},
		Craft: CraftConfig{
			Name: "racket", Mass: DefaultCraftMass, Radius: DefaultCraftRadius,
			Altitude: 400e3,
		},
		Attitude: &AttitudeConfig{
			Inertia: [3]float64{373, 415, 78},
			OmegaB:  [3]float64{8, 0, 0.01},
		},
	},
	"detumble": {
		Name: "detumble", Dt: 0.01, Duration: 30, ReportEvery: 1,
		Bodies: []string{"EARTH", "SUN"},
		Craft: CraftConfig{
			Name: "ship", Mass: DefaultCraftMass, Radius: DefaultCraftRadius,
			Altitude: 400e3,
		},
		Attitude: &AttitudeConfig{
			Inertia:    [3]float64{373, 415, 78},
			OmegaB:     [3]float64{0.4, -0.7, 0.2},
			Controller: "damper",
			MaxAccel:   0.25,
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
