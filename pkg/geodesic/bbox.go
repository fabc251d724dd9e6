package geodesic

import "fmt"

// BoundingBoxError reports an inverted or out-of-range bounding box.
type BoundingBoxError struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

func (e *BoundingBoxError) Error() string {
	return fmt.Sprintf("geodesic: invalid bounding box lat [%v, %v] lon [%v, %v]",
		e.MinLat, e.MaxLat, e.MinLon, e.MaxLon)
}

// BoundingBox is an inclusive latitude/longitude rectangle in degrees.
type BoundingBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

// NewBoundingBox constructs a validated bounding box. Bounds must be valid
// coordinates with min <= max on both axes.
func NewBoundingBox(minLat, maxLat, minLon, maxLon float64) (BoundingBox, error) {
	if err := (Point{Lat: minLat, Lon: minLon}).Validate(); err != nil {
		return BoundingBox{}, &BoundingBoxError{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	}
	if err := (Point{Lat: maxLat, Lon: maxLon}).Validate(); err != nil {
		return BoundingBox{}, &BoundingBoxError{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	}
	if minLat > maxLat || minLon > maxLon {
		return BoundingBox{}, &BoundingBoxError{MinLat: minLat, MaxLat: maxLat, MinLon: minLon, MaxLon: maxLon}
	}
	return BoundingBox{minLat: minLat, maxLat: maxLat, minLon: minLon, maxLon: maxLon}, nil
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.minLat && p.Lat <= b.maxLat &&
		p.Lon >= b.minLon && p.Lon <= b.maxLon
}
