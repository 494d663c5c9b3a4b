package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/pulleylab/internal/sim"
)

// ExportData is the JSON export schema for a run.
type ExportData struct {
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	SetPoint   float64            `json:"set_point"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Positions  []float64          `json:"positions"`
	Velocities []float64          `json:"velocities"`
	Volumes    []float64          `json:"volumes"`
	Controls   []float64          `json:"controls"`
	Metrics    map[string]float64 `json:"metrics"`
}

// ExportJSON writes a stored run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		SetPoint:   meta.SetPoint,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		Positions:  result.Positions,
		Velocities: result.Velocities,
		Volumes:    result.Volumes,
		Controls:   result.Controls,
		Metrics:    result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the JSON export to a file.
func ExportJSONFile(path string, meta *RunMetadata, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, meta, result)
}
