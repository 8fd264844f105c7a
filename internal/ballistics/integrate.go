package ballistics

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/integrators"
)

const (
	DefaultDt       = 0.01
	DefaultMaxSteps = 1_000_000
)

// Options controls the integration loop. A nil Integrator selects
// semi-implicit Euler.
type Options struct {
	Dt         float64
	MaxSteps   int
	Integrator dynamo.Integrator
	Metrics    []dynamo.Metric
	Observers  []dynamo.Observer
}

func DefaultOptions() Options {
	return Options{
		Dt:       DefaultDt,
		MaxSteps: DefaultMaxSteps,
	}
}

// Integrate flies one ball from the origin until it first drops below
// ground. If the step budget runs out first, the partial trajectory is
// returned together with an error matching ErrNoLanding.
func Integrate(ctx context.Context, launch Launch, c Constants, fm ForceModel, opts Options) (*Trajectory, error) {
	if err := launch.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := fm.Validate(); err != nil {
		return nil, err
	}

	integ := opts.Integrator
	if integ == nil {
		integ = integrators.NewSemiImplicitEuler()
	}

	sim := dynamo.New(NewFlight(c, fm), integ)
	for _, m := range opts.Metrics {
		sim.AddMetric(m)
	}
	for _, o := range opts.Observers {
		sim.AddObserver(o)
	}

	cfg := dynamo.Config{
		Dt:            opts.Dt,
		MaxSteps:      opts.MaxSteps,
		Stop:          belowGround,
		ValidateState: true,
	}
	if fm.Density == DensityBarometric && fm.Drag != DragConstant && fm.Drag != DragNone {
		ceiling := c.Ceiling()
		cfg.Guard = func(x dynamo.State, t float64) error {
			if x[IdxY] >= ceiling {
				return fmt.Errorf("%w: y=%.1f m, ceiling %.1f m", ErrAboveCeiling, x[IdxY], ceiling)
			}
			return nil
		}
	}

	res, err := sim.Run(ctx, launch.State(), cfg)
	if res == nil {
		return nil, err
	}

	tr := newTrajectory(launch, fm, opts.Dt, res)
	if errors.Is(err, dynamo.ErrStepBudget) {
		return tr, fmt.Errorf("%w: %w", ErrNoLanding, err)
	}
	return tr, err
}

func belowGround(x dynamo.State, t float64) bool {
	return x[IdxY] < 0
}

// Shot is one independent flight for IntegrateAll.
type Shot struct {
	Name      string
	Launch    Launch
	Constants Constants
	Model     ForceModel
	Options   Options
}

// IntegrateAll flies every shot with at most limit in flight and returns
// trajectories in input order. Options.Integrator must be nil or safe for
// concurrent use; a nil value gets a fresh stepper per shot.
func IntegrateAll(ctx context.Context, shots []Shot, limit int) ([]*Trajectory, error) {
	return dynamo.RunAll(ctx, len(shots), limit, func(ctx context.Context, idx int) (*Trajectory, error) {
		s := shots[idx]
		tr, err := Integrate(ctx, s.Launch, s.Constants, s.Model, s.Options)
		if err != nil {
			return nil, fmt.Errorf("shot %q: %w", s.Name, err)
		}
		return tr, nil
	})
}
