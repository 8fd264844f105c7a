package ballistics

import "errors"

var (
	// ErrInvalidLaunch indicates a non-positive speed or an angle outside (0, π/2).
	ErrInvalidLaunch = errors.New("ballistics: invalid launch")

	// ErrInvalidConstants indicates a physically meaningless parameter set.
	ErrInvalidConstants = errors.New("ballistics: invalid constants")

	// ErrInvalidForceModel indicates an unknown drag law or density model.
	ErrInvalidForceModel = errors.New("ballistics: invalid force model")

	// ErrNoLanding indicates the ball did not return to ground within the step budget.
	ErrNoLanding = errors.New("ballistics: did not return to ground")

	// ErrAboveCeiling indicates an altitude where the barometric density formula breaks down.
	ErrAboveCeiling = errors.New("ballistics: altitude above barometric density ceiling")
)
