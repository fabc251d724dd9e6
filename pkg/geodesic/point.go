package geodesic

import (
	"fmt"
	"math"
)

// Coordinate bounds in degrees.
const (
	MinLatDegrees = -90.0
	MaxLatDegrees = 90.0
	MinLonDegrees = -180.0
	MaxLonDegrees = 180.0
)

// Axis identifies which coordinate axis failed validation.
type Axis string

// Validation axes.
const (
	AxisLatitude  Axis = "latitude"
	AxisLongitude Axis = "longitude"
)

// CoordinateError reports a non-finite or out-of-range coordinate.
type CoordinateError struct {
	Axis  Axis
	Value float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("geodesic: invalid %s %v", e.Axis, e.Value)
}

// Point is a geographic coordinate in degrees. It is an immutable value;
// construct with NewPoint to validate, or use a literal and call Validate.
type Point struct {
	Lat float64
	Lon float64
}

// NewPoint constructs a validated point.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks that both coordinates are finite and in range. The
// latitude is checked before the longitude.
func (p Point) Validate() error {
	if !math.IsInf(p.Lat, 0) && !math.IsNaN(p.Lat) && p.Lat >= MinLatDegrees && p.Lat <= MaxLatDegrees {
		if !math.IsInf(p.Lon, 0) && !math.IsNaN(p.Lon) && p.Lon >= MinLonDegrees && p.Lon <= MaxLonDegrees {
			return nil
		}
		return &CoordinateError{Axis: AxisLongitude, Value: p.Lon}
	}
	return &CoordinateError{Axis: AxisLatitude, Value: p.Lat}
}

// haversineMeters computes the great-circle distance between two validated
// points.
func haversineMeters(p1, p2 Point) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	deltaLat := (p2.Lat - p1.Lat) * math.Pi / 180
	deltaLon := (p2.Lon - p1.Lon) * math.Pi / 180

	sinLat := math.Sin(deltaLat / 2)
	sinLon := math.Sin(deltaLon / 2)

	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Clamp guards against floating error pushing a outside [0, 1].
	a = math.Min(math.Max(a, 0), 1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
