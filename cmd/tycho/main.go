package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/tycho-sim/tycho/internal/attitude"
	"github.com/tycho-sim/tycho/internal/config"
	"github.com/tycho-sim/tycho/internal/ephemeris"
	"github.com/tycho-sim/tycho/internal/metrics"
	"github.com/tycho-sim/tycho/internal/orbit"
	"github.com/tycho-sim/tycho/internal/store"
	"github.com/tycho-sim/tycho/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	report     float64
	policy     string
	altitude   float64
	noSave     bool
	outFile    string
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tycho",
		Short: "orbital and rigid-body spaceflight sandbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live flight display of the stock scenario.
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tycho", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and record the trajectory",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip writing the run to the data directory")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-sample report lines")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with the live flight display",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	tennisCmd := &cobra.Command{
		Use:   "tennis",
		Short: "intermediate-axis instability demo",
		RunE:  runTennis,
	}
	tennisCmd.Flags().Float64Var(&dt, "dt", 1e-4, "timestep")
	tennisCmd.Flags().Float64Var(&duration, "time", 20.0, "duration")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the body catalog",
		RunE:  listBodies,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a recorded run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output path (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, tennisCmd, bodiesCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration override (0 = run until collision)")
	cmd.Flags().Float64Var(&report, "report", 0, "report cadence override")
	cmd.Flags().StringVar(&policy, "policy", "", "collision policy: flag|freeze|halt")
	cmd.Flags().Float64Var(&altitude, "altitude", 0, "initial altitude override")
}

// loadScenario resolves preset, scenario file, and flag overrides in that
// order of increasing precedence.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("report") {
		cfg.ReportEvery = report
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = policy
	}
	if cmd.Flags().Changed("altitude") {
		cfg.Craft.Altitude = altitude
		cfg.Craft.Orbit = nil
	}

	return cfg, nil
}

func buildScenario(cmd *cobra.Command) (*config.Config, *orbit.Simulation, error) {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return nil, nil, err
	}

	h := ephemeris.NewHandle(ephemeris.Builtin())
	defer h.Close()

	sim, err := cfg.Build(h)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sim, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, sim, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	craft := sim.PrimaryCraft()
	energyDrift := metrics.NewOrbitalEnergyDrift(sim, craft)
	sim.AddObserver(energyDrift)

	runMetrics := []metrics.Metric{energyDrift}
	if craft.Attitude != nil {
		runMetrics = append(runMetrics,
			metrics.NewMomentumDrift(craft.Attitude),
			metrics.NewRotationalEnergyDrift(craft.Attitude))
	}

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()

	cadence := cfg.ReportEvery
	if cadence <= 0 {
		cadence = config.DefaultReportEvery
	}
	samples := stepScenario(sim, cfg.Duration, cadence, func(snap orbit.Snapshot) {
		for _, m := range runMetrics[1:] {
			m.Observe(snap.Time)
		}
		if !quiet {
			fmt.Println(snap)
		}
	})

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("sim time: %.3f s, samples: %d\n", sim.Time, len(samples))

	values := make(map[string]float64, len(runMetrics))
	fmt.Println("\nmetrics:")
	for _, m := range runMetrics {
		values[m.Name()] = m.Value()
		fmt.Printf("  %s: %.3g\n", m.Name(), m.Value())
	}

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Name, sim.Dt(), sim.Time, sim.Policy().String(), samples, values)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	if len(samples) >= 2 {
		alt := make([]float64, len(samples))
		for i, s := range samples {
			alt[i] = s.Altitude
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(alt,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("altitude (m)")))
	}

	return nil
}

// stepScenario advances the simulation until the duration elapses or, with a
// zero duration, until a collision is recorded. Samples the primary craft on
// the report cadence.
func stepScenario(sim *orbit.Simulation, duration, cadence float64, report func(orbit.Snapshot)) []orbit.Snapshot {
	craft := sim.PrimaryCraft()
	samples := make([]orbit.Snapshot, 0, 256)
	sample := func() {
		snap := sim.Snapshot(craft)
		samples = append(samples, snap)
		if report != nil {
			report(snap)
		}
	}

	next := sim.Time
	sample()
	next += cadence

	for {
		if duration > 0 && sim.Time >= duration {
			break
		}
		if sim.Collided && (duration == 0 || sim.Policy() == orbit.HaltStep) {
			break
		}
		sim.Step()
		if sim.Time >= next {
			sample()
			next += cadence
		}
	}
	return samples
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sim, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	sim.Logf = func(string, ...any) {}
	return viz.Run(sim, cfg.Name)
}

func runTennis(cmd *cobra.Command, args []string) error {
	inertia := mgl64.Vec3{373, 415, 78}
	state, err := attitude.New(mgl64.QuatIdent(), mgl64.Vec3{8, 0, 0.01}, inertia, mgl64.Vec3{}, attitude.RateAtHalfStep, dt)
	if err != nil {
		return err
	}

	flips := metrics.NewFlipCounter(state, 0, 1.0)
	momentum := metrics.NewMomentumDrift(state)

	steps := int(duration / dt)
	history := make([]float64, 0, 400)
	sampleEvery := steps / 400
	if sampleEvery == 0 {
		sampleEvery = 1
	}

	for i := 0; i < steps; i++ {
		state.Step(dt, mgl64.Vec3{})
		flips.Observe(0)
		momentum.Observe(0)
		if i%sampleEvery == 0 {
			history = append(history, state.OmegaB[0])
		}
	}

	fmt.Println(asciigraph.Plot(history,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("spin rate about the major spin axis (rad/s)")))
	fmt.Printf("\nflips: %.0f over %.1f s\n", flips.Value(), duration)
	fmt.Printf("angular momentum drift: %.3g\n", momentum.Value())
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	h := ephemeris.NewHandle(ephemeris.Builtin())
	defer h.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMU (m3/s2)\tRADIUS (m)\tSTATUS")
	for _, name := range h.Names() {
		rec, err := h.Lookup(name)
		if err != nil {
			return err
		}
		status := "ok"
		if err := ephemeris.Suitable(rec); err != nil {
			status = "skipped"
		}
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%s\n", rec.Name, rec.Mu, rec.Radius, status)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tPOLICY\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Policy,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		pick    func(orbit.Snapshot) float64
	}{
		{"altitude (m)", func(s orbit.Snapshot) float64 { return s.Altitude }},
		{"vertical speed (m/s)", func(s orbit.Snapshot) float64 { return s.Speed }},
		{"horizontal speed (m/s)", func(s orbit.Snapshot) float64 { return s.HSpeed }},
	}
	for _, ser := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = ser.pick(s)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ser.caption)))
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	return st.ExportJSON(args[0], outFile)
}
