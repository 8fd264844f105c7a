package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 with a fixed step until cfg.Stop holds for a freshly
// recorded state or cfg.MaxSteps steps have been taken. The initial state is
// always the first recorded sample. On failure the partial result is
// returned together with the error.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(x0, cfg); err != nil {
		return nil, err
	}

	capacity := cfg.MaxSteps + 1
	if capacity > 4096 {
		capacity = 4096
	}
	result := &Result{
		States:  make([]State, 0, capacity),
		Times:   make([]float64, 0, capacity),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	s.record(result, x, t)

	if cfg.Stop != nil && cfg.Stop(x, t) {
		result.Outcome = OutcomeStopped
		s.collect(result)
		return result, nil
	}

	for i := 0; i < cfg.MaxSteps; i++ {
		select {
		case <-ctx.Done():
			result.Outcome = OutcomeFailed
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		if cfg.Guard != nil {
			if err := cfg.Guard(x, t); err != nil {
				result.Outcome = OutcomeFailed
				s.collect(result)
				return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: err}
			}
		}

		newX := s.integrator.Step(s.dyn, x, t, cfg.Dt)
		if cfg.ValidateState && !newX.IsValid() {
			result.Outcome = OutcomeFailed
			s.collect(result)
			return result, &SimulationError{Step: i, Time: t, State: x.Clone(), Wrapped: ErrInvalidState}
		}

		x = newX
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++
		s.record(result, x, t)

		if cfg.Stop != nil && cfg.Stop(x, t) {
			result.Outcome = OutcomeStopped
			s.collect(result)
			return result, nil
		}
	}

	s.collect(result)
	if cfg.Stop == nil {
		result.Outcome = OutcomeCompleted
		return result, nil
	}

	result.Outcome = OutcomeExhausted
	return result, &SimulationError{Step: result.StepsTaken, Time: t, State: x.Clone(), Wrapped: ErrStepBudget}
}

func (s *Simulator) record(result *Result, x State, t float64) {
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(x0 State, cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrParameterBounds, cfg.Dt)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrParameterBounds, cfg.MaxSteps)
	}
	if dim := s.dyn.StateDim(); dim > 0 && len(x0) != dim {
		return fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x0), dim)
	}
	if !x0.IsValid() {
		return ErrInvalidState
	}
	return nil
}
