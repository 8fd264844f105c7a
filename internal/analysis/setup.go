package analysis

import (
	"context"
	"errors"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/integrators"
)

// ErrTooFewLevels is returned when a study needs more runs than it was given.
var ErrTooFewLevels = errors.New("analysis: too few levels")

// Setup describes one flight configuration.
type Setup struct {
	Launch     ballistics.Launch
	Constants  ballistics.Constants
	Model      ballistics.ForceModel
	Dt         float64
	MaxSteps   int
	Integrator string
}

func NewSetup(launch ballistics.Launch, c ballistics.Constants, fm ballistics.ForceModel) Setup {
	return Setup{
		Launch:     launch,
		Constants:  c,
		Model:      fm,
		Dt:         ballistics.DefaultDt,
		MaxSteps:   ballistics.DefaultMaxSteps,
		Integrator: integrators.Default,
	}
}

func (s Setup) shot(name string, launch ballistics.Launch, dt float64) (ballistics.Shot, error) {
	integ, err := integrators.Get(s.Integrator)
	if err != nil {
		return ballistics.Shot{}, err
	}
	return ballistics.Shot{
		Name:      name,
		Launch:    launch,
		Constants: s.Constants,
		Model:     s.Model,
		Options: ballistics.Options{
			Dt:         dt,
			MaxSteps:   s.MaxSteps,
			Integrator: integ,
		},
	}, nil
}

// Fly runs the configured flight once with a fresh integrator.
func (s Setup) Fly(ctx context.Context) (*ballistics.Trajectory, error) {
	shot, err := s.shot("", s.Launch, s.Dt)
	if err != nil {
		return nil, err
	}
	return ballistics.Integrate(ctx, shot.Launch, shot.Constants, shot.Model, shot.Options)
}

// Apply returns a copy of s with named parameters replaced. Besides the
// physical constants it understands angle (degrees), speed and dt.
func (s Setup) Apply(params map[string]float64) (Setup, error) {
	out := s
	for name, v := range params {
		switch name {
		case "angle":
			out.Launch = ballistics.LaunchDegrees(out.Launch.Speed, v)
		case "speed":
			out.Launch.Speed = v
		case "dt":
			out.Dt = v
		default:
			if err := out.Constants.SetParam(name, v); err != nil {
				return s, err
			}
		}
	}
	return out, nil
}
