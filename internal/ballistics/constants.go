package ballistics

import (
	"fmt"
	"math"
)

const (
	DefaultGravity           = 9.81    // m/s^2
	DefaultAirDensity        = 1.225   // kg/m^3 at sea level
	DefaultArea              = 0.00143 // m^2, golf ball cross-section
	DefaultMass              = 0.04593 // kg
	DefaultDragCoefficient   = 7.0 / 2.0
	DefaultSeaLevelTemp      = 288.15 // K
	DefaultLapseRate         = 6.5e-3 // K/m
	DefaultDensityExponent   = 2.5
	DefaultMagnusCoefficient = 0.25 // S0*omega/m, 1/s
)

// Constants is the physical parameter set shared by every force model.
type Constants struct {
	Gravity           float64
	AirDensity        float64
	Area              float64
	Mass              float64
	DragCoefficient   float64
	SeaLevelTemp      float64
	LapseRate         float64
	DensityExponent   float64
	MagnusCoefficient float64
}

// GolfBall returns the standard golf ball parameter set.
func GolfBall() Constants {
	return Constants{
		Gravity:           DefaultGravity,
		AirDensity:        DefaultAirDensity,
		Area:              DefaultArea,
		Mass:              DefaultMass,
		DragCoefficient:   DefaultDragCoefficient,
		SeaLevelTemp:      DefaultSeaLevelTemp,
		LapseRate:         DefaultLapseRate,
		DensityExponent:   DefaultDensityExponent,
		MagnusCoefficient: DefaultMagnusCoefficient,
	}
}

// Validate rejects parameter sets the force terms cannot evaluate. Gravity is
// not constrained; a flight that never lands ends on the step budget.
func (c Constants) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"mass must be positive", c.Mass > 0},
		{"area must be non-negative", c.Area >= 0},
		{"air density must be non-negative", c.AirDensity >= 0},
		{"drag coefficient must be non-negative", c.DragCoefficient >= 0},
		{"sea level temperature must be positive", c.SeaLevelTemp > 0},
		{"lapse rate must be non-negative", c.LapseRate >= 0},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConstants, chk.name)
		}
	}
	for name, v := range c.fields() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConstants, name)
		}
	}
	return nil
}

// Ceiling is the altitude at which 1 - a*y/T0 reaches zero.
func (c Constants) Ceiling() float64 {
	if c.LapseRate == 0 {
		return math.Inf(1)
	}
	return c.SeaLevelTemp / c.LapseRate
}

func (c Constants) fields() map[string]float64 {
	return map[string]float64{
		"gravity":            c.Gravity,
		"air_density":        c.AirDensity,
		"area":               c.Area,
		"mass":               c.Mass,
		"drag_coefficient":   c.DragCoefficient,
		"sea_level_temp":     c.SeaLevelTemp,
		"lapse_rate":         c.LapseRate,
		"density_exponent":   c.DensityExponent,
		"magnus_coefficient": c.MagnusCoefficient,
	}
}

// GetParams exposes the parameter set by name.
func (c Constants) GetParams() map[string]float64 {
	return c.fields()
}

// SetParam updates one named parameter.
func (c *Constants) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		c.Gravity = value
	case "air_density":
		c.AirDensity = value
	case "area":
		c.Area = value
	case "mass":
		c.Mass = value
	case "drag_coefficient":
		c.DragCoefficient = value
	case "sea_level_temp":
		c.SeaLevelTemp = value
	case "lapse_rate":
		c.LapseRate = value
	case "density_exponent":
		c.DensityExponent = value
	case "magnus_coefficient":
		c.MagnusCoefficient = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
