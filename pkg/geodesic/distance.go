package geodesic

import (
	"fmt"
	"math"
)

// InvalidDistanceError reports an attempt to construct a Distance from a
// NaN, negative, or infinite meter value.
type InvalidDistanceError struct {
	Meters float64
}

func (e *InvalidDistanceError) Error() string {
	return fmt.Sprintf("geodesic: invalid distance %v m", e.Meters)
}

// Distance is a validated, finite, non-negative length in meters.
type Distance struct {
	meters float64
}

// NewDistance constructs a validated Distance.
func NewDistance(meters float64) (Distance, error) {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters < 0 {
		return Distance{}, &InvalidDistanceError{Meters: meters}
	}
	return Distance{meters: meters}, nil
}

// Meters returns the distance in meters.
func (d Distance) Meters() float64 {
	return d.meters
}
