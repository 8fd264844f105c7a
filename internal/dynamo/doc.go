// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepper interface
//   - [Simulator]: orchestrates a fixed-step run until a stop condition
//     holds or the step budget is spent
//
// # Example
//
//	sim := dynamo.New(flight, integrators.NewSemiImplicitEuler())
//	result, err := sim.Run(ctx, x0, dynamo.Config{
//	    Dt:       0.01,
//	    MaxSteps: 100000,
//	    Stop:     func(x dynamo.State, t float64) bool { return x[1] < 0 },
//	})
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Independent runs can be fanned
// out with [RunAll], one simulator per run.
package dynamo
