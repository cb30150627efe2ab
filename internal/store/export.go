package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/tycho-sim/tycho/internal/orbit"
)

type ExportData struct {
	Scenario string             `json:"scenario"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Policy   string             `json:"collision_policy"`
	Steps    int                `json:"steps"`
	Samples  []orbit.Snapshot   `json:"samples"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a saved run as a single indented JSON document. An
// empty path writes to stdout.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Scenario: meta.Scenario,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Policy:   meta.Policy,
		Steps:    len(samples),
		Samples:  samples,
		Metrics:  meta.Metrics,
	}

	var out io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
