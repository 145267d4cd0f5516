package integrators

import "errors"

// ErrUnstable indicates the constraint projection could not reach the
// sphere, i.e. the timestep is too large for the current velocities.
var ErrUnstable = errors.New("integrators: timestep unstable (negative radicand in constraint solve)")
