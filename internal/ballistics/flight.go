package ballistics

import "github.com/san-kum/golfsim/internal/dynamo"

// State layout: [x, y, vx, vy].
const (
	IdxX = iota
	IdxY
	IdxVX
	IdxVY
	StateDim
)

// Flight is the projectile ODE for one parameter set and force model.
type Flight struct {
	Constants Constants
	Model     ForceModel
}

func NewFlight(c Constants, fm ForceModel) *Flight {
	return &Flight{Constants: c, Model: fm}
}

func (f *Flight) StateDim() int { return StateDim }

func (f *Flight) Derive(x dynamo.State, t float64) dynamo.State {
	ax, ay := f.Model.Acceleration(f.Constants, x[IdxY], x[IdxVX], x[IdxVY])
	return dynamo.State{x[IdxVX], x[IdxVY], ax, ay}
}

// Energy is the specific mechanical energy, v²/2 + g·y.
func (f *Flight) Energy(x dynamo.State) float64 {
	vx, vy := x[IdxVX], x[IdxVY]
	return 0.5*(vx*vx+vy*vy) + f.Constants.Gravity*x[IdxY]
}
