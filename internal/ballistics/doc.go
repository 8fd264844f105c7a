// Package ballistics integrates the planar flight of a golf ball.
//
// A flight is described by three inputs:
//
//   - [Launch]: initial speed and launch angle
//   - [Constants]: the physical parameter set (see [GolfBall])
//   - [ForceModel]: which drag law, density model and Magnus term apply
//
// [Integrate] advances the state (x, y, vx, vy) with a fixed timestep until
// the ball first drops below ground level, returning the sampled
// [Trajectory]. The final sample is the first one with y < 0; the ground
// crossing is not interpolated into the samples themselves, but
// [Trajectory.GroundCrossing] estimates it.
//
// # Force models
//
//	ideal      := ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityVacuum}
//	dimpled    := ballistics.ForceModel{Drag: ballistics.DragLinear, Density: ballistics.DensityBarometric, Magnus: true}
//	smooth     := ballistics.ForceModel{Drag: ballistics.DragQuadratic, Density: ballistics.DensityBarometric, Magnus: true}
//
// Every call is independent; there is no package-level mutable state, so
// identical inputs always produce identical samples.
package ballistics
