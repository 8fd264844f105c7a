// Package analysis runs families of flights and reduces them to numbers.
//
//   - [Convergence]: the same flight at dt, dt/2, dt/4, ... with the
//     interpolated range and the observed order of accuracy
//   - [AngleSweep]: one flight per launch angle, run in parallel
//   - [Summarize]: best angle and range statistics of a sweep
//
// Every flight is described by a [Setup], which names its integrator so
// each run gets its own stepper:
//
//	setup := analysis.NewSetup(ballistics.LaunchDegrees(70, 9), ballistics.GolfBall(), fm)
//	report, err := analysis.Convergence(ctx, setup, 4)
//	if err == nil && report.Converging {
//	    fmt.Printf("order %.2f\n", report.Order)
//	}
package analysis
