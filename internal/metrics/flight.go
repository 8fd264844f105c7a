package metrics

import (
	"math"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// Apex tracks the greatest height reached.
type Apex struct {
	maxY    float64
	samples int
}

func NewApex() *Apex { return &Apex{} }

func (a *Apex) Name() string { return "apex" }

func (a *Apex) Observe(x dynamo.State, t float64) {
	y := x[ballistics.IdxY]
	if a.samples == 0 || y > a.maxY {
		a.maxY = y
	}
	a.samples++
}

func (a *Apex) Value() float64 { return a.maxY }

func (a *Apex) Reset() {
	a.maxY = 0
	a.samples = 0
}

// ImpactSpeed is the speed at the most recent state, which for a landed
// flight is the first sample below ground.
type ImpactSpeed struct {
	speed float64
}

func NewImpactSpeed() *ImpactSpeed { return &ImpactSpeed{} }

func (s *ImpactSpeed) Name() string { return "impact_speed" }

func (s *ImpactSpeed) Observe(x dynamo.State, t float64) {
	s.speed = math.Hypot(x[ballistics.IdxVX], x[ballistics.IdxVY])
}

func (s *ImpactSpeed) Value() float64 { return s.speed }
func (s *ImpactSpeed) Reset()         { s.speed = 0 }

type FlightTime struct {
	last float64
}

func NewFlightTime() *FlightTime { return &FlightTime{} }

func (f *FlightTime) Name() string { return "flight_time" }

func (f *FlightTime) Observe(x dynamo.State, t float64) { f.last = t }
func (f *FlightTime) Value() float64                    { return f.last }
func (f *FlightTime) Reset()                            { f.last = 0 }

// Default returns a fresh set of the flight metrics for one run.
func Default(gravity float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewApex(),
		NewFlightTime(),
		NewImpactSpeed(),
		NewEnergyLoss(gravity),
	}
}
