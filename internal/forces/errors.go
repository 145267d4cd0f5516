package forces

import "errors"

// ErrBadRange indicates a half-open enumeration range outside the grid
// or particle array bounds.
var ErrBadRange = errors.New("forces: range out of bounds")
