// Package polygon validates boundary-only polygons (closed rings, CCW
// exterior, CW holes) and densifies their rings through the polyline
// sampler. Interior coverage grids are out of scope.
package polygon

import (
	"github.com/sells-group/geodist/pkg/densify"
	"github.com/sells-group/geodist/pkg/geodesic"
)

// ringClosureToleranceDeg bounds the per-axis gap between a ring's first and
// last vertices.
const ringClosureToleranceDeg = 1e-9

// Polygon is a validated exterior ring with zero or more interior holes.
// Rings are stored deduplicated, closing vertex included.
type Polygon struct {
	exterior []geodesic.Point
	holes    [][]geodesic.Point
}

// New validates and normalizes the rings: vertices in bounds, consecutive
// duplicates collapsed, at least four distinct vertices per ring, closed
// within tolerance, counter-clockwise exterior, clockwise holes, and every
// hole's witness vertex inside the exterior. Ring 0 is the exterior in all
// reported errors.
func New(exterior []geodesic.Point, holes ...[]geodesic.Point) (*Polygon, error) {
	ext, err := normalizeRing(exterior, CounterClockwise, 0)
	if err != nil {
		return nil, err
	}

	normalized := make([][]geodesic.Point, 0, len(holes))
	for i, hole := range holes {
		ring, err := normalizeRing(hole, Clockwise, i+1)
		if err != nil {
			return nil, err
		}
		if !pointInRing(ring[0], ext) {
			return nil, &HoleOutsideError{Hole: i}
		}
		normalized = append(normalized, ring)
	}

	return &Polygon{exterior: ext, holes: normalized}, nil
}

// Exterior returns the normalized exterior ring.
func (p *Polygon) Exterior() []geodesic.Point {
	return p.exterior
}

// Holes returns the normalized interior rings.
func (p *Polygon) Holes() [][]geodesic.Point {
	return p.holes
}

// Rings returns the exterior followed by each hole, in the part order used
// by DensifyBoundaries.
func (p *Polygon) Rings() [][]geodesic.Point {
	rings := make([][]geodesic.Point, 0, 1+len(p.holes))
	rings = append(rings, p.exterior)
	return append(rings, p.holes...)
}

// Contains reports whether the point lies inside the polygon by even-odd
// counting: inside the exterior and outside every hole. Boundary points are
// resolved by the crossing rule, not specially.
func (p *Polygon) Contains(pt geodesic.Point) bool {
	if !pointInRing(pt, p.exterior) {
		return false
	}
	for _, hole := range p.holes {
		if pointInRing(pt, hole) {
			return false
		}
	}
	return true
}

// DensifyBoundaries samples every ring as a part of one flattened polyline,
// exterior first, then each hole in order. The sample cap applies to the
// flattened total.
func (p *Polygon) DensifyBoundaries(opts densify.Options) (*densify.FlattenedPolyline, error) {
	return densify.DensifyMulti(p.Rings(), opts)
}

func normalizeRing(ring []geodesic.Point, want Orientation, index int) ([]geodesic.Point, error) {
	if err := densify.CheckVertices(ring, index); err != nil {
		return nil, err
	}
	deduped := densify.CollapseDuplicates(ring)
	if len(deduped) < 4 {
		return nil, &densify.DegeneratePolylineError{Part: index}
	}

	first, last := deduped[0], deduped[len(deduped)-1]
	if abs(first.Lat-last.Lat) > ringClosureToleranceDeg ||
		abs(first.Lon-last.Lon) > ringClosureToleranceDeg {
		return nil, &UnclosedRingError{Ring: index}
	}

	if ccw := signedArea(deduped) > 0; ccw != (want == CounterClockwise) {
		return nil, &RingOrientationError{Ring: index, Want: want}
	}
	return deduped, nil
}

// pointInRing is an even-odd ray cast in (lon, lat) coordinates. The epsilon
// keeps the crossing division finite on horizontal edges.
func pointInRing(pt geodesic.Point, ring []geodesic.Point) bool {
	const epsilon = 2.220446049250313e-16

	inside := false
	for i := 0; i+1 < len(ring); i++ {
		p1, p2 := ring[i], ring[i+1]
		if (p1.Lat > pt.Lat) != (p2.Lat > pt.Lat) &&
			pt.Lon < (p2.Lon-p1.Lon)*(pt.Lat-p1.Lat)/(p2.Lat-p1.Lat+epsilon)+p1.Lon {
			inside = !inside
		}
	}
	return inside
}

// signedArea is twice the shoelace area over (lon, lat); positive means
// counter-clockwise winding.
func signedArea(ring []geodesic.Point) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i].Lon*ring[i+1].Lat - ring[i+1].Lon*ring[i].Lat
	}
	return sum
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
