// Package store persists simulation runs on disk: one directory per run
// holding a metadata.json and a states.csv with the primary craft's sampled
// trajectory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tycho-sim/tycho/internal/orbit"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Policy    string             `json:"collision_policy"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"time", "x", "y", "z", "vx", "vy", "vz", "altitude", "speed", "hspeed"}

func (s *Store) Save(scenario string, dt, duration float64, policy string, samples []orbit.Snapshot, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Dt:        dt,
		Duration:  duration,
		Policy:    policy,
		Steps:     len(samples),
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}

	for _, snap := range samples {
		row := []string{
			fmtF(snap.Time),
			fmtF(snap.Position[0]), fmtF(snap.Position[1]), fmtF(snap.Position[2]),
			fmtF(snap.Velocity[0]), fmtF(snap.Velocity[1]), fmtF(snap.Velocity[2]),
			fmtF(snap.Altitude), fmtF(snap.Speed), fmtF(snap.HSpeed),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]orbit.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(csvHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []orbit.Snapshot{}, nil
	}

	samples := make([]orbit.Snapshot, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, len(record))
		ok := true
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		samples = append(samples, orbit.Snapshot{
			Time:     vals[0],
			Position: mgl64.Vec3{vals[1], vals[2], vals[3]},
			Velocity: mgl64.Vec3{vals[4], vals[5], vals[6]},
			Altitude: vals[7],
			Speed:    vals[8],
			HSpeed:   vals[9],
		})
	}

	return samples, nil
}
