package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/golfsim/internal/analysis"
	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/config"
	"github.com/san-kum/golfsim/internal/dynamo"
	"github.com/san-kum/golfsim/internal/metrics"
)

// Experiment is one configured flight with the standard flight metrics
// attached.
type Experiment struct {
	cfg       *config.Config
	logger    *zap.Logger
	observers []dynamo.Observer
}

func New(cfg *config.Config, logger *zap.Logger) *Experiment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Experiment{cfg: cfg, logger: logger.With(zap.String("experiment", cfg.Name))}
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// AddObserver registers o for every sample of the next runs.
func (e *Experiment) AddObserver(o dynamo.Observer) {
	e.observers = append(e.observers, o)
}

// Shot builds the integration request for the configuration. Every call
// gets its own integrator and metrics.
func (e *Experiment) Shot() (ballistics.Shot, error) {
	if err := e.cfg.Validate(); err != nil {
		return ballistics.Shot{}, err
	}
	fm, err := e.cfg.ForceModel()
	if err != nil {
		return ballistics.Shot{}, err
	}
	opts, err := e.cfg.Options()
	if err != nil {
		return ballistics.Shot{}, err
	}
	c := e.cfg.Constants()
	opts.Metrics = metrics.Default(c.Gravity)
	opts.Observers = append([]dynamo.Observer(nil), e.observers...)

	return ballistics.Shot{
		Name:      e.cfg.Name,
		Launch:    e.cfg.LaunchParams(),
		Constants: c,
		Model:     fm,
		Options:   opts,
	}, nil
}

// Setup converts the configuration for the analysis and optimisation
// studies.
func (e *Experiment) Setup() (analysis.Setup, error) {
	if err := e.cfg.Validate(); err != nil {
		return analysis.Setup{}, err
	}
	fm, err := e.cfg.ForceModel()
	if err != nil {
		return analysis.Setup{}, err
	}
	s := analysis.NewSetup(e.cfg.LaunchParams(), e.cfg.Constants(), fm)
	s.Dt = e.cfg.Dt
	s.MaxSteps = e.cfg.MaxSteps
	s.Integrator = e.cfg.Integrator
	return s, nil
}

// Run flies the configured shot. A flight that exhausts the step budget
// returns its partial trajectory with the error.
func (e *Experiment) Run(ctx context.Context) (*ballistics.Trajectory, error) {
	shot, err := e.Shot()
	if err != nil {
		return nil, err
	}

	e.logger.Debug("starting flight",
		zap.Float64("speed", shot.Launch.Speed),
		zap.Float64("angle_deg", shot.Launch.Degrees()),
		zap.Stringer("forces", shot.Model),
		zap.Float64("dt", shot.Options.Dt),
		zap.String("integrator", e.cfg.Integrator),
	)

	start := time.Now()
	tr, err := ballistics.Integrate(ctx, shot.Launch, shot.Constants, shot.Model, shot.Options)
	if err != nil {
		if tr != nil && errors.Is(err, ballistics.ErrNoLanding) {
			e.logger.Warn("ball did not land", zap.Int("samples", tr.Len()), zap.Error(err))
			return tr, err
		}
		e.logger.Error("flight failed", zap.Error(err))
		return tr, err
	}

	crossing := tr.GroundCrossing()
	e.logger.Info("flight finished",
		zap.Int("samples", tr.Len()),
		zap.Float64("range", tr.Range()),
		zap.Float64("ground_crossing", crossing.X),
		zap.Float64("apex", tr.Apex().Y),
		zap.Float64("flight_time", tr.FlightTime()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return tr, nil
}

// RunAll flies every experiment concurrently and returns trajectories in
// input order.
func RunAll(ctx context.Context, exps []*Experiment, limit int, logger *zap.Logger) ([]*ballistics.Trajectory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	shots := make([]ballistics.Shot, len(exps))
	for i, e := range exps {
		shot, err := e.Shot()
		if err != nil {
			return nil, fmt.Errorf("experiment %q: %w", e.cfg.Name, err)
		}
		shots[i] = shot
	}

	trs, err := ballistics.IntegrateAll(ctx, shots, limit)
	if err != nil {
		logger.Error("batch failed", zap.Int("shots", len(shots)), zap.Error(err))
		return nil, err
	}
	for i, tr := range trs {
		logger.Debug("flight finished",
			zap.String("experiment", shots[i].Name),
			zap.Float64("range", tr.Range()),
			zap.Float64("ground_crossing", tr.GroundCrossing().X),
		)
	}
	return trs, nil
}
