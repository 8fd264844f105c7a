package integrators

import "github.com/san-kum/golfsim/internal/dynamo"

// Euler is the explicit forward Euler method: every component advances
// along the derivative evaluated at the start of the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// SemiImplicitEuler treats the first half of the state as positions and the
// second half as their velocities. Velocities advance first, then positions
// advance with the updated velocities.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	dx := dyn.Derive(x, t)
	result := make(dynamo.State, n)

	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dx[half+i]*dt
	}
	for i := 0; i < half; i++ {
		result[i] = x[i] + result[half+i]*dt
	}

	return result
}
