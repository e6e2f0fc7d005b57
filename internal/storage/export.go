package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/motorlab/internal/engine"
)

// ExportData is the JSON export shape for one run.
type ExportData struct {
	ID               string             `json:"id"`
	CurrentBandwidth float64            `json:"current_bandwidth"`
	SpeedBandwidth   float64            `json:"speed_bandwidth"`
	ReferenceRPM     float64            `json:"reference_rpm"`
	Dt               float64            `json:"dt"`
	Horizon          float64            `json:"horizon"`
	Steps            int                `json:"steps"`
	Times            []float64          `json:"times"`
	SpeedRPM         []float64          `json:"speed_rpm"`
	RefRPM           []float64          `json:"ref_rpm"`
	Voltage          []float64          `json:"voltage"`
	Torque           []float64          `json:"torque"`
	Metrics          map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run with its full trace to w.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *engine.Trace) error {
	data := ExportData{
		ID:               meta.ID,
		CurrentBandwidth: meta.CurrentBandwidth,
		SpeedBandwidth:   meta.SpeedBandwidth,
		ReferenceRPM:     meta.ReferenceRPM,
		Dt:               meta.Dt,
		Horizon:          meta.Horizon,
		Steps:            tr.Len(),
		Times:            tr.Times,
		SpeedRPM:         tr.SpeedRPM,
		RefRPM:           tr.RefRPM,
		Voltage:          tr.Voltage,
		Torque:           tr.Torque,
		Metrics:          meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout writes a run to standard output.
func ExportJSONStdout(meta *RunMetadata, tr *engine.Trace) error {
	return ExportJSON(os.Stdout, meta, tr)
}
