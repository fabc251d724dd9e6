package polygon

import "fmt"

// Orientation is the winding direction of a ring in (lon, lat) planar terms.
type Orientation int

const (
	CounterClockwise Orientation = iota
	Clockwise
)

func (o Orientation) String() string {
	if o == Clockwise {
		return "clockwise"
	}
	return "counter-clockwise"
}

// RingOrientationError reports a ring wound opposite to its required
// direction. Ring 0 is the exterior; holes follow in input order.
type RingOrientationError struct {
	Ring int
	Want Orientation
}

func (e *RingOrientationError) Error() string {
	return fmt.Sprintf("polygon: ring %d must be %s", e.Ring, e.Want)
}

// UnclosedRingError reports a ring whose first and last vertices differ by
// more than the closure tolerance on either axis.
type UnclosedRingError struct {
	Ring int
}

func (e *UnclosedRingError) Error() string {
	return fmt.Sprintf("polygon: ring %d is not closed", e.Ring)
}

// HoleOutsideError reports a hole whose witness vertex falls outside the
// exterior ring. Hole indices start at zero.
type HoleOutsideError struct {
	Hole int
}

func (e *HoleOutsideError) Error() string {
	return fmt.Sprintf("polygon: hole %d lies outside the exterior ring", e.Hole)
}
