package metrics

import (
	"math"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/dynamo"
)

// EnergyLoss is the fraction of specific mechanical energy (v²/2 + g·y)
// lost between the first and the latest observed state. Drag makes it
// positive; a drag-free flight stays near zero.
type EnergyLoss struct {
	name          string
	flight        *ballistics.Flight
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyLoss(gravity float64) *EnergyLoss {
	return &EnergyLoss{
		name:   "energy_loss",
		flight: ballistics.NewFlight(ballistics.Constants{Gravity: gravity}, ballistics.ForceModel{}),
	}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(x dynamo.State, t float64) {
	if len(x) < ballistics.StateDim {
		return
	}
	energy := e.flight.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.currentEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}
