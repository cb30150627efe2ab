package store

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/orbit"
)

func sampleRun() []orbit.Snapshot {
	samples := make([]orbit.Snapshot, 0, 10)
	for i := 0; i < 10; i++ {
		t := float64(i) * 0.05
		samples = append(samples, orbit.Snapshot{
			Craft:    "ship",
			Time:     t,
			Altitude: 10 + 3*t,
			Speed:    3,
			HSpeed:   0.1,
			Position: mgl64.Vec3{6.371e6 + 10 + 3*t, 0, 0},
			Velocity: mgl64.Vec3{3, 465, 0},
		})
	}
	return samples
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	samples := sampleRun()
	metrics := map[string]float64{"energy_drift": 1.2e-5}

	runID, err := s.Save("surface-hop", 0.01, 2.5, "flag", samples, metrics)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Scenario != "surface-hop" || meta.Dt != 0.01 || meta.Steps != len(samples) {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["energy_drift"] != 1.2e-5 {
		t.Errorf("metrics not round-tripped: %v", meta.Metrics)
	}

	got, err := s.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(got))
	}
	for i := range got {
		if math.Abs(got[i].Time-samples[i].Time) > 1e-12 {
			t.Errorf("sample %d: time %v want %v", i, got[i].Time, samples[i].Time)
		}
		if got[i].Position != samples[i].Position {
			t.Errorf("sample %d: position %v want %v", i, got[i].Position, samples[i].Position)
		}
		if got[i].Altitude != samples[i].Altitude {
			t.Errorf("sample %d: altitude %v want %v", i, got[i].Altitude, samples[i].Altitude)
		}
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := s.Save("leo", 0.25, 6000, "flag", sampleRun(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Scenario != "leo" {
		t.Errorf("expected scenario leo, got %s", runs[0].Scenario)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("missing_123"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := s.LoadSamples("missing_123"); err == nil {
		t.Error("expected error for missing samples")
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := s.Save("surface-hop", 0.01, 2.5, "flag", sampleRun(), map[string]float64{"peak_altitude": 12.4})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	out := filepath.Join(dir, "run.json")
	if err := s.ExportJSON(runID, out); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if exported.Scenario != "surface-hop" || exported.Steps != 10 {
		t.Errorf("unexpected export: scenario %s steps %d", exported.Scenario, exported.Steps)
	}
	if exported.Metrics["peak_altitude"] != 12.4 {
		t.Errorf("metrics missing from export: %v", exported.Metrics)
	}
}
