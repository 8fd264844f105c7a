package ballistics

import (
	"github.com/san-kum/golfsim/internal/dynamo"
)

type Point struct {
	X, Y float64
}

// Sample is one recorded instant of a flight.
type Sample struct {
	T  float64
	X  float64
	Y  float64
	VX float64
	VY float64
}

// Speed is the magnitude of the velocity.
func (s Sample) Speed() float64 {
	return dynamo.State{s.VX, s.VY}.Norm()
}

// Trajectory is the time-ordered sample sequence of one flight. The first
// sample is the origin; when Outcome is dynamo.OutcomeStopped the last sample
// is the first one below ground.
type Trajectory struct {
	Launch  Launch
	Model   ForceModel
	Dt      float64
	Samples []Sample
	Outcome dynamo.Outcome
	Metrics map[string]float64
}

func newTrajectory(launch Launch, fm ForceModel, dt float64, res *dynamo.Result) *Trajectory {
	tr := &Trajectory{
		Launch:  launch,
		Model:   fm,
		Dt:      dt,
		Samples: make([]Sample, len(res.States)),
		Outcome: res.Outcome,
		Metrics: res.Metrics,
	}
	for i, x := range res.States {
		tr.Samples[i] = Sample{
			T:  res.Times[i],
			X:  x[IdxX],
			Y:  x[IdxY],
			VX: x[IdxVX],
			VY: x[IdxVY],
		}
	}
	return tr
}

func (tr *Trajectory) Len() int { return len(tr.Samples) }

// Landed reports whether the flight ended by crossing the ground.
func (tr *Trajectory) Landed() bool { return tr.Outcome == dynamo.OutcomeStopped }

// Points returns the (x, y) sequence.
func (tr *Trajectory) Points() []Point {
	pts := make([]Point, len(tr.Samples))
	for i, s := range tr.Samples {
		pts[i] = Point{X: s.X, Y: s.Y}
	}
	return pts
}

// Landing is the terminal sample.
func (tr *Trajectory) Landing() Sample {
	if len(tr.Samples) == 0 {
		return Sample{}
	}
	return tr.Samples[len(tr.Samples)-1]
}

// Range is the horizontal position of the terminal sample.
func (tr *Trajectory) Range() float64 {
	return tr.Landing().X
}

func (tr *Trajectory) FlightTime() float64 {
	return tr.Landing().T
}

// Apex is the highest sample.
func (tr *Trajectory) Apex() Sample {
	var best Sample
	for i, s := range tr.Samples {
		if i == 0 || s.Y > best.Y {
			best = s
		}
	}
	return best
}

// GroundCrossing linearly interpolates between the last two samples to
// estimate where the path meets y = 0. Without a crossing it returns the
// terminal point.
func (tr *Trajectory) GroundCrossing() Point {
	n := len(tr.Samples)
	if n == 0 {
		return Point{}
	}
	last := tr.Samples[n-1]
	if n < 2 || last.Y >= 0 {
		return Point{X: last.X, Y: last.Y}
	}
	prev := tr.Samples[n-2]
	if prev.Y == last.Y {
		return Point{X: last.X, Y: 0}
	}
	f := prev.Y / (prev.Y - last.Y)
	return Point{X: prev.X + f*(last.X-prev.X), Y: 0}
}

// GroundCrossingTime is the interpolated time of the ground crossing.
func (tr *Trajectory) GroundCrossingTime() float64 {
	n := len(tr.Samples)
	if n < 2 || tr.Samples[n-1].Y >= 0 {
		return tr.FlightTime()
	}
	prev, last := tr.Samples[n-2], tr.Samples[n-1]
	if prev.Y == last.Y {
		return last.T
	}
	f := prev.Y / (prev.Y - last.Y)
	return prev.T + f*(last.T-prev.T)
}
