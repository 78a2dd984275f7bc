// Package storage persists completed runs to a local directory: one
// subdirectory per run holding JSON metadata and a CSV trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/partsim/internal/dynamo"
)

// RunMetadata describes a single completed run, independent of its
// trajectory data.
type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Store writes runs under baseDir, one subdirectory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes a run's metadata and trajectory and returns the generated
// run ID. particleNames must be in the same order as the positions stored
// in each dynamo.Frame of result.
func (s *Store) Save(scenario, integrator string, dt, duration float64, seed int64, particleNames []string, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metrics := make(map[string]float64, len(result.Metrics))
	for k, v := range result.Metrics {
		metrics[k] = float64(v)
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   scenario,
		Timestamp:  time.Now(),
		Seed:       seed,
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		StepsTaken: result.StepsTaken,
		Metrics:    metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return "", err
	}
	if err := metaFile.Close(); err != nil {
		return "", err
	}

	if err := s.writeTrajectory(runDir, particleNames, result); err != nil {
		return "", err
	}

	return runID, nil
}

func (s *Store) writeTrajectory(runDir string, particleNames []string, result *dynamo.Result) error {
	statesFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return err
	}
	defer statesFile.Close()

	w := csv.NewWriter(statesFile)
	defer w.Flush()

	header := []string{"time"}
	for _, name := range particleNames {
		header = append(header, name+"_x", name+"_y", name+"_z", name+"_vx", name+"_vy", name+"_vz")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, frame := range result.Frames {
		row := make([]string, 0, 1+6*len(particleNames))
		row = append(row, strconv.FormatFloat(float64(frame.Time), 'g', -1, 64))
		for i := range particleNames {
			if i >= len(frame.Positions) {
				break
			}
			pos, vel := frame.Positions[i], frame.Velocities[i]
			row = append(row,
				strconv.FormatFloat(float64(pos.X), 'g', -1, 64),
				strconv.FormatFloat(float64(pos.Y), 'g', -1, 64),
				strconv.FormatFloat(float64(pos.Z), 'g', -1, 64),
				strconv.FormatFloat(float64(vel.X), 'g', -1, 64),
				strconv.FormatFloat(float64(vel.Y), 'g', -1, 64),
				strconv.FormatFloat(float64(vel.Z), 'g', -1, 64),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns the run IDs currently stored under baseDir, sorted by
// directory name as os.ReadDir returns them.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}
	runs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			runs = append(runs, e.Name())
		}
	}
	return runs, nil
}

// Load reads back a run's metadata.
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
