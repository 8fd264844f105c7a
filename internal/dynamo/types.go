package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous-or-not ODE right-hand side dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// StopCondition reports whether the run should end after recording x.
type StopCondition func(x State, t float64) bool

// Guard rejects a state before it is integrated further.
type Guard func(x State, t float64) error

type Config struct {
	Dt            float64
	MaxSteps      int
	Stop          StopCondition
	Guard         Guard
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		MaxSteps:      1_000_000,
		ValidateState: true,
	}
}

// Outcome describes how a run ended.
type Outcome int

const (
	// OutcomeCompleted means no stop condition was set and MaxSteps ran.
	OutcomeCompleted Outcome = iota
	// OutcomeStopped means the stop condition held.
	OutcomeStopped
	// OutcomeExhausted means the stop condition never held within MaxSteps.
	OutcomeExhausted
	// OutcomeFailed means a guard, validation or cancellation ended the run.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStopped:
		return "stopped"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Result struct {
	States     []State
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Outcome    Outcome
}
