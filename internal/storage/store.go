package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/motorlab/internal/engine"
)

// Store persists simulation runs under a base directory, one
// subdirectory per run holding metadata.json and trace.csv.
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
	ID               string             `json:"id"`
	Timestamp        time.Time          `json:"timestamp"`
	CurrentBandwidth float64            `json:"current_bandwidth"`
	SpeedBandwidth   float64            `json:"speed_bandwidth"`
	ReferenceRPM     float64            `json:"reference_rpm"`
	Dt               float64            `json:"dt"`
	Horizon          float64            `json:"horizon"`
	Metrics          map[string]float64 `json:"metrics"`
}

var traceHeader = []string{"time", "speed_rpm", "ref_rpm", "voltage", "torque"}

// Save writes one run to disk and returns its id.
func (s *Store) Save(in engine.Inputs, cfg engine.Config, res *engine.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:               runID,
		Timestamp:        time.Now(),
		CurrentBandwidth: in.CurrentBandwidth,
		SpeedBandwidth:   in.SpeedBandwidth,
		ReferenceRPM:     in.ReferenceRPM,
		Dt:               cfg.Dt,
		Horizon:          cfg.Horizon,
		Metrics:          res.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	if err := w.Write(traceHeader); err != nil {
		return "", err
	}

	tr := res.Trace
	for i := 0; i < tr.Len(); i++ {
		row := []string{
			strconv.FormatFloat(tr.Times[i], 'g', -1, 64),
			strconv.FormatFloat(tr.SpeedRPM[i], 'g', -1, 64),
			strconv.FormatFloat(tr.RefRPM[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Voltage[i], 'g', -1, 64),
			strconv.FormatFloat(tr.Torque[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return runID, w.Error()
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
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

// LoadTrace reads a saved trace back into memory.
func (s *Store) LoadTrace(runID string) (*engine.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &engine.Trace{}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(traceHeader) {
			return nil, fmt.Errorf("storage: malformed trace row %d in %s", i, runID)
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad value %q in %s: %w", field, runID, err)
			}
			vals[j] = v
		}

		tr.Times = append(tr.Times, vals[0])
		tr.SpeedRPM = append(tr.SpeedRPM, vals[1])
		tr.RefRPM = append(tr.RefRPM, vals[2])
		tr.Voltage = append(tr.Voltage, vals[3])
		tr.Torque = append(tr.Torque, vals[4])
	}

	return tr, nil
}
