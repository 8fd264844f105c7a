package ballistics

import (
	"fmt"
	"math"

	"github.com/san-kum/golfsim/internal/dynamo"
)

// Launch is the initial speed (m/s) and angle above horizontal (radians).
type Launch struct {
	Speed float64
	Angle float64
}

// LaunchDegrees builds a Launch from an angle in degrees.
func LaunchDegrees(speed, degrees float64) Launch {
	return Launch{Speed: speed, Angle: degrees * math.Pi / 180}
}

func (l Launch) Degrees() float64 {
	return l.Angle * 180 / math.Pi
}

func (l Launch) Validate() error {
	if !(l.Speed > 0) || math.IsInf(l.Speed, 0) {
		return fmt.Errorf("%w: speed must be positive, got %g", ErrInvalidLaunch, l.Speed)
	}
	if !(l.Angle > 0 && l.Angle < math.Pi/2) {
		return fmt.Errorf("%w: angle must be in (0, π/2), got %g rad", ErrInvalidLaunch, l.Angle)
	}
	return nil
}

// State is the initial state at the origin.
func (l Launch) State() dynamo.State {
	return dynamo.State{0, 0, l.Speed * math.Cos(l.Angle), l.Speed * math.Sin(l.Angle)}
}
