package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/golfsim/internal/ballistics"
)

// ConvergencePoint is one refinement level. Diff is the change in range
// from the previous, coarser level and is zero for the first level.
type ConvergencePoint struct {
	Dt    float64
	Range float64
	Steps int
	Diff  float64
}

type ConvergenceReport struct {
	Points []ConvergencePoint
	// Order is log2 of the ratio of the last two differences; about 1 for
	// the Euler family.
	Order float64
	// Converging holds when every difference is smaller than the one before.
	Converging bool
}

// Convergence flies setup at levels step sizes, halving dt each time, and
// compares the interpolated ground crossings.
func Convergence(ctx context.Context, setup Setup, levels int) (*ConvergenceReport, error) {
	if levels < 3 {
		return nil, fmt.Errorf("%w: convergence needs at least 3, got %d", ErrTooFewLevels, levels)
	}

	shots := make([]ballistics.Shot, levels)
	dt := setup.Dt
	for i := range shots {
		shot, err := setup.shot(fmt.Sprintf("dt=%g", dt), setup.Launch, dt)
		if err != nil {
			return nil, err
		}
		shots[i] = shot
		dt /= 2
	}

	trs, err := ballistics.IntegrateAll(ctx, shots, 0)
	if err != nil {
		return nil, err
	}

	report := &ConvergenceReport{
		Points:     make([]ConvergencePoint, levels),
		Converging: true,
	}
	for i, tr := range trs {
		p := ConvergencePoint{
			Dt:    shots[i].Options.Dt,
			Range: tr.GroundCrossing().X,
			Steps: tr.Len() - 1,
		}
		if i > 0 {
			p.Diff = math.Abs(p.Range - report.Points[i-1].Range)
			if i > 1 && p.Diff >= report.Points[i-1].Diff {
				report.Converging = false
			}
		}
		report.Points[i] = p
	}

	last, prev := report.Points[levels-1].Diff, report.Points[levels-2].Diff
	if last > 0 && prev > 0 {
		report.Order = math.Log2(prev / last)
	}
	return report, nil
}
