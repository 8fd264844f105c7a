package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/experiment"
	"github.com/san-kum/golfsim/internal/storage"
)

var ErrEmptyScenario = errors.New("automation: scenario has no shots")

// Scenario is a scripted sequence of shots.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Shots       []ScenarioShot `yaml:"shots"`
}

// ScenarioShot names a preset or config file and optionally overrides the
// launch and step settings. Zero values keep the resolved configuration.
type ScenarioShot struct {
	Config     string  `yaml:"config"`
	Speed      float64 `yaml:"speed"`
	AngleDeg   float64 `yaml:"angle_deg"`
	Dt         float64 `yaml:"dt"`
	Integrator string  `yaml:"integrator"`
	SaveAs     string  `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Shots) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyScenario, path)
	}
	return &scenario, nil
}

type ShotResult struct {
	Name       string
	RunID      string
	Trajectory *ballistics.Trajectory
}

// RunScenario flies every shot in order. Shots with SaveAs set are written
// to st when st is non-nil. The results gathered before a failing shot are
// returned with its error.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store, logger *zap.Logger) ([]ShotResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]ShotResult, 0, len(scenario.Shots))

	for i, shot := range scenario.Shots {
		cfg, err := registry.Resolve(shot.Config)
		if err != nil {
			return results, fmt.Errorf("shot %d: %w", i+1, err)
		}
		if shot.Speed != 0 {
			cfg.Launch.Speed = shot.Speed
		}
		if shot.AngleDeg != 0 {
			cfg.Launch.AngleDeg = shot.AngleDeg
		}
		if shot.Dt != 0 {
			cfg.Dt = shot.Dt
		}
		if shot.Integrator != "" {
			cfg.Integrator = shot.Integrator
		}
		if shot.SaveAs != "" {
			cfg.Name = shot.SaveAs
		}

		logger.Info("scenario shot",
			zap.String("scenario", scenario.Name),
			zap.Int("shot", i+1),
			zap.Int("of", len(scenario.Shots)),
			zap.String("config", shot.Config),
		)

		tr, err := experiment.New(cfg, logger).Run(ctx)
		if err != nil {
			return results, fmt.Errorf("shot %d run: %w", i+1, err)
		}

		res := ShotResult{Name: cfg.Name, Trajectory: tr}
		if shot.SaveAs != "" && st != nil {
			runID, err := st.Save(shot.SaveAs, cfg.Integrator, tr)
			if err != nil {
				return results, fmt.Errorf("shot %d save: %w", i+1, err)
			}
			res.RunID = runID
		}
		results = append(results, res)
	}

	return results, nil
}

// DispersionConfig perturbs the launch of a base shot uniformly within
// ±SpeedSpread m/s and ±AngleSpread degrees. Draws that leave the valid
// launch range are clamped to it.
type DispersionConfig struct {
	SpeedSpread float64
	AngleSpread float64
	Trials      int
	Seed        int64
	Workers     int
}

// Bounds applied to perturbed launches.
const (
	minTrialSpeed = 0.1
	minTrialAngle = 0.1
	maxTrialAngle = 89.9
)

type DispersionTrial struct {
	Trial    int
	Speed    float64
	AngleDeg float64
	Range    float64
	Apex     float64
	Landed   bool
}

// RunDispersion flies cfg.Trials perturbed copies of base in parallel. The
// perturbations are drawn up front, so a fixed Seed reproduces the study
// regardless of Workers. A zero Seed uses the clock. A trial that runs out
// of steps is kept with Landed false.
func RunDispersion(ctx context.Context, base *experiment.Experiment, cfg DispersionConfig) ([]DispersionTrial, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("automation: dispersion needs at least one trial, got %d", cfg.Trials)
	}
	template, err := base.Shot()
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	launches := make([]ballistics.Launch, cfg.Trials)
	for i := range launches {
		speed := template.Launch.Speed + (rng.Float64()-0.5)*2*cfg.SpeedSpread
		angle := template.Launch.Degrees() + (rng.Float64()-0.5)*2*cfg.AngleSpread
		speed = math.Max(speed, minTrialSpeed)
		angle = math.Min(math.Max(angle, minTrialAngle), maxTrialAngle)
		launches[i] = ballistics.LaunchDegrees(speed, angle)
	}

	return dynamo.RunAll(ctx, cfg.Trials, cfg.Workers, func(ctx context.Context, idx int) (DispersionTrial, error) {
		shot, err := base.Shot()
		if err != nil {
			return DispersionTrial{}, err
		}
		shot.Options.Observers = nil
		launch := launches[idx]

		tr, err := ballistics.Integrate(ctx, launch, shot.Constants, shot.Model, shot.Options)
		if err != nil && !errors.Is(err, ballistics.ErrNoLanding) {
			return DispersionTrial{}, fmt.Errorf("trial %d: %w", idx, err)
		}

		return DispersionTrial{
			Trial:    idx,
			Speed:    launch.Speed,
			AngleDeg: launch.Degrees(),
			Range:    tr.GroundCrossing().X,
			Apex:     tr.Apex().Y,
			Landed:   tr.Landed(),
		}, nil
	})
}

type DispersionStats struct {
	MeanRange float64
	StdRange  float64
	MinRange  float64
	MaxRange  float64
	Landed    int
}

// Stats summarises the landed trials.
func Stats(trials []DispersionTrial) DispersionStats {
	ranges := make([]float64, 0, len(trials))
	for _, t := range trials {
		if t.Landed {
			ranges = append(ranges, t.Range)
		}
	}

	s := DispersionStats{Landed: len(ranges)}
	if len(ranges) == 0 {
		return s
	}
	s.MeanRange = stat.Mean(ranges, nil)
	s.MinRange = floats.Min(ranges)
	s.MaxRange = floats.Max(ranges)
	if len(ranges) > 1 {
		s.StdRange = stat.StdDev(ranges, nil)
	}
	return s
}
