package optim

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/san-kum/golfsim/internal/analysis"
)

// RangeObjective scores a parameter assignment by the interpolated range
// of the resulting flight.
func RangeObjective(base analysis.Setup) Objective {
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		setup, err := base.Apply(params)
		if err != nil {
			return 0, err
		}
		tr, err := setup.Fly(ctx)
		if err != nil {
			return 0, err
		}
		return tr.GroundCrossing().X, nil
	}
}

type AngleResult struct {
	AngleDeg    float64
	Range       float64
	Evaluations int
	Status      string
}

// BestAngle searches launch angles in (0°, 90°) for the longest
// interpolated range with Nelder-Mead. The angle is optimised through a
// logistic map so every trial stays inside the open interval.
func BestAngle(ctx context.Context, base analysis.Setup, maxEvals int) (*AngleResult, error) {
	if maxEvals <= 0 {
		maxEvals = 200
	}
	objective := RangeObjective(base)

	var evalErr error
	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			if ctx.Err() != nil {
				return math.Inf(1)
			}
			r, err := objective(ctx, map[string]float64{"angle": squash(z[0])})
			if err != nil {
				evalErr = err
				return math.Inf(1)
			}
			return -r
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-6,
			Iterations: 20,
		},
	}

	start := base.Launch.Degrees()
	if !(start > 0 && start < 90) {
		start = 45
	}
	result, err := optimize.Minimize(problem, []float64{unsquash(start)}, settings, &optimize.NelderMead{})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if result == nil || math.IsInf(result.F, 1) {
		if evalErr != nil {
			return nil, fmt.Errorf("optimize angle: %w", evalErr)
		}
		return nil, fmt.Errorf("optimize angle: %w", err)
	}

	return &AngleResult{
		AngleDeg:    squash(result.X[0]),
		Range:       -result.F,
		Evaluations: result.FuncEvaluations,
		Status:      result.Status.String(),
	}, nil
}

// squash maps the real line onto (0°, 90°).
func squash(z float64) float64 {
	return 90 / (1 + math.Exp(-z))
}

func unsquash(deg float64) float64 {
	p := deg / 90
	return math.Log(p / (1 - p))
}
