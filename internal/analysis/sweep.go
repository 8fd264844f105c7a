package analysis

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// SweepPoint is the outcome of one launch angle. Range is the interpolated
// ground crossing.
type SweepPoint struct {
	AngleDeg   float64
	Range      float64
	Apex       float64
	FlightTime float64
	Landed     bool
}

// Angles returns steps evenly spaced angles from min to max inclusive.
func Angles(min, max float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{min}
	}
	out := make([]float64, steps)
	floats.Span(out, min, max)
	return out
}

// AngleSweep flies setup once per launch angle (degrees) at setup.Launch's
// speed, with at most limit flights in parallel. A flight that exhausts its
// step budget is reported with Landed false rather than failing the sweep.
func AngleSweep(ctx context.Context, setup Setup, anglesDeg []float64, limit int) ([]SweepPoint, error) {
	return dynamo.RunAll(ctx, len(anglesDeg), limit, func(ctx context.Context, idx int) (SweepPoint, error) {
		deg := anglesDeg[idx]
		s := setup
		s.Launch = ballistics.LaunchDegrees(setup.Launch.Speed, deg)

		tr, err := s.Fly(ctx)
		if err != nil && !errors.Is(err, ballistics.ErrNoLanding) {
			return SweepPoint{}, fmt.Errorf("angle %g°: %w", deg, err)
		}

		return SweepPoint{
			AngleDeg:   deg,
			Range:      tr.GroundCrossing().X,
			Apex:       tr.Apex().Y,
			FlightTime: tr.GroundCrossingTime(),
			Landed:     tr.Landed(),
		}, nil
	})
}

type Summary struct {
	BestAngle float64
	BestRange float64
	MinRange  float64
	MeanRange float64
	StdRange  float64
	Landed    int
}

// Summarize reduces the landed points of a sweep.
func Summarize(points []SweepPoint) Summary {
	var angles, ranges []float64
	for _, p := range points {
		if p.Landed {
			angles = append(angles, p.AngleDeg)
			ranges = append(ranges, p.Range)
		}
	}

	s := Summary{Landed: len(ranges)}
	if len(ranges) == 0 {
		return s
	}

	best := floats.MaxIdx(ranges)
	s.BestAngle = angles[best]
	s.BestRange = ranges[best]
	s.MinRange = floats.Min(ranges)
	s.MeanRange = stat.Mean(ranges, nil)
	if len(ranges) > 1 {
		s.StdRange = stat.StdDev(ranges, nil)
	}
	return s
}
