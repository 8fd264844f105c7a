package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) BaseDir() string { return s.baseDir }

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	Speed      float64            `json:"speed"`
	AngleDeg   float64            `json:"angle_deg"`
	Dt         float64            `json:"dt"`
	Integrator string             `json:"integrator"`
	Drag       string             `json:"drag"`
	Density    string             `json:"density"`
	Magnus     bool               `json:"magnus"`
	Outcome    string             `json:"outcome"`
	Samples    int                `json:"samples"`
	Range      float64            `json:"range"`
	Apex       float64            `json:"apex"`
	FlightTime float64            `json:"flight_time"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata describes a trajectory without assigning an ID.
func NewMetadata(name, integrator string, tr *ballistics.Trajectory) RunMetadata {
	return RunMetadata{
		Name:       name,
		Timestamp:  time.Now().UTC(),
		Speed:      tr.Launch.Speed,
		AngleDeg:   tr.Launch.Degrees(),
		Dt:         tr.Dt,
		Integrator: integrator,
		Drag:       tr.Model.Drag.String(),
		Density:    tr.Model.Density.String(),
		Magnus:     tr.Model.Magnus,
		Outcome:    tr.Outcome.String(),
		Samples:    tr.Len(),
		Range:      tr.Range(),
		Apex:       tr.Apex().Y,
		FlightTime: tr.FlightTime(),
		Metrics:    tr.Metrics,
	}
}

var pathSeparators = strings.NewReplacer("/", "-", "\\", "-")

// runName maps a run name onto a single directory component.
func runName(name string) string {
	name = pathSeparators.Replace(strings.TrimSpace(name))
	if name == "" {
		return "run"
	}
	return name
}

// Save writes a run directory named <name>_<8 hex chars> holding the
// metadata and the full sample table. Path separators in name become '-'.
func (s *Store) Save(name, integrator string, tr *ballistics.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%s", runName(name), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := NewMetadata(name, integrator, tr)
	meta.ID = runID

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamples(csvFile, tr.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory rebuilds a stored run.
func (s *Store) LoadTrajectory(runID string) (*RunMetadata, *ballistics.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	samples, err := ReadSamples(file)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s samples: %w", runID, err)
	}

	drag, err := ballistics.ParseDragLaw(meta.Drag)
	if err != nil {
		return nil, nil, err
	}
	density, err := ballistics.ParseDensityModel(meta.Density)
	if err != nil {
		return nil, nil, err
	}

	tr := &ballistics.Trajectory{
		Launch:  ballistics.LaunchDegrees(meta.Speed, meta.AngleDeg),
		Model:   ballistics.ForceModel{Drag: drag, Density: density, Magnus: meta.Magnus},
		Dt:      meta.Dt,
		Samples: samples,
		Outcome: parseOutcome(meta.Outcome),
		Metrics: meta.Metrics,
	}
	return meta, tr, nil
}

func parseOutcome(s string) dynamo.Outcome {
	for _, o := range []dynamo.Outcome{
		dynamo.OutcomeCompleted, dynamo.OutcomeStopped,
		dynamo.OutcomeExhausted, dynamo.OutcomeFailed,
	} {
		if o.String() == s {
			return o
		}
	}
	return dynamo.OutcomeFailed
}
