package ballistics

import (
	"fmt"
	"math"
	"strings"
)

// DragLaw selects how air resistance depends on velocity.
type DragLaw int

const (
	// DragNone disables drag entirely.
	DragNone DragLaw = iota
	// DragLinear is -Cd·ρ(y)·A·v per component (dimpled ball).
	DragLinear
	// DragQuadratic is -(1/4)·ρ(y)·A·v·|v| per component (smooth ball).
	DragQuadratic
	// DragQuadraticUnsigned is -(1/4)·ρ(y)·A·v² per component. It always
	// pushes toward negative x and y, even when the ball moves that way.
	DragQuadraticUnsigned
	// DragConstant applies -Cd·ρ0·A/m·v per component and ignores the
	// density model.
	DragConstant
)

var dragLawNames = map[DragLaw]string{
	DragNone:              "none",
	DragLinear:            "linear",
	DragQuadratic:         "quadratic",
	DragQuadraticUnsigned: "quadratic-unsigned",
	DragConstant:          "constant",
}

func (d DragLaw) String() string {
	if name, ok := dragLawNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DragLaw(%d)", int(d))
}

// ParseDragLaw accepts the names produced by DragLaw.String.
func ParseDragLaw(s string) (DragLaw, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for law, name := range dragLawNames {
		if name == key {
			return law, nil
		}
	}
	return DragNone, fmt.Errorf("%w: unknown drag law %q", ErrInvalidForceModel, s)
}

// DensityModel selects how air density varies with height.
type DensityModel int

const (
	// DensityConstant uses the sea-level density everywhere.
	DensityConstant DensityModel = iota
	// DensityBarometric uses ρ0·(1 - a·y/T0)^α.
	DensityBarometric
	// DensityVacuum has zero density, so density-scaled drag vanishes.
	DensityVacuum
)

var densityModelNames = map[DensityModel]string{
	DensityConstant:   "constant",
	DensityBarometric: "barometric",
	DensityVacuum:     "vacuum",
}

func (d DensityModel) String() string {
	if name, ok := densityModelNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DensityModel(%d)", int(d))
}

// ParseDensityModel accepts the names produced by DensityModel.String.
func ParseDensityModel(s string) (DensityModel, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for model, name := range densityModelNames {
		if name == key {
			return model, nil
		}
	}
	return DensityConstant, fmt.Errorf("%w: unknown density model %q", ErrInvalidForceModel, s)
}

// ForceModel is the set of force terms active during a flight. Gravity is
// always on.
type ForceModel struct {
	Drag    DragLaw
	Density DensityModel
	Magnus  bool
}

func (fm ForceModel) Validate() error {
	if _, ok := dragLawNames[fm.Drag]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidForceModel, fm.Drag)
	}
	if _, ok := densityModelNames[fm.Density]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidForceModel, fm.Density)
	}
	return nil
}

func (fm ForceModel) String() string {
	magnus := "off"
	if fm.Magnus {
		magnus = "on"
	}
	return fmt.Sprintf("drag=%s density=%s magnus=%s", fm.Drag, fm.Density, magnus)
}

// Density returns the air density at height y under model.
func Density(c Constants, model DensityModel, y float64) float64 {
	switch model {
	case DensityVacuum:
		return 0
	case DensityBarometric:
		base := 1 - (c.LapseRate*y)/c.SeaLevelTemp
		if base <= 0 {
			return 0
		}
		return c.AirDensity * math.Pow(base, c.DensityExponent)
	default:
		return c.AirDensity
	}
}

// DragForce returns the drag force components at height y and velocity
// (vx, vy). DragConstant is not a force law and yields zero here; see
// Acceleration.
func (fm ForceModel) DragForce(c Constants, y, vx, vy float64) (fx, fy float64) {
	rho := Density(c, fm.Density, y)
	switch fm.Drag {
	case DragLinear:
		fx = -c.DragCoefficient * rho * c.Area * vx
		fy = -c.DragCoefficient * rho * c.Area * vy
	case DragQuadratic:
		fx = -0.25 * rho * c.Area * vx * math.Abs(vx)
		fy = -0.25 * rho * c.Area * vy * math.Abs(vy)
	case DragQuadraticUnsigned:
		fx = -0.25 * rho * c.Area * vx * vx
		fy = -0.25 * rho * c.Area * vy * vy
	}
	return fx, fy
}

// MagnusAcceleration is the spin lift term, the velocity rotated by 90°
// and scaled by the Magnus coefficient.
func (fm ForceModel) MagnusAcceleration(c Constants, vx, vy float64) (ax, ay float64) {
	if !fm.Magnus {
		return 0, 0
	}
	return -c.MagnusCoefficient * vy, c.MagnusCoefficient * vx
}

// Acceleration is the total acceleration at height y and velocity (vx, vy).
func (fm ForceModel) Acceleration(c Constants, y, vx, vy float64) (ax, ay float64) {
	mx, my := fm.MagnusAcceleration(c, vx, vy)

	if fm.Drag == DragConstant {
		k := -c.DragCoefficient * c.AirDensity * c.Area / c.Mass
		return k*vx + mx, k*vy + my - c.Gravity
	}

	fx, fy := fm.DragForce(c, y, vx, vy)
	ax = fx/c.Mass + mx
	ay = fy/c.Mass + my - c.Gravity
	return ax, ay
}
