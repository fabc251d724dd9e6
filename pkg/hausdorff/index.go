package hausdorff

import (
	"github.com/tidwall/rtree"

	"github.com/sells-group/geodist/pkg/geodesic"
)

// proxyIndex wraps an R-tree over candidate samples keyed by (longitude,
// latitude) as a planar proxy for geodesic proximity. It yields candidates
// in non-decreasing squared planar degree distance; callers must recompute
// the true geodesic distance for every candidate they consume.
//
// The planar proxy can be locally inconsistent with geodesic ordering near
// the poles and the antimeridian, which permits early termination on a
// suboptimal candidate there. This matches the documented engine behavior
// and is intentionally not special-cased.
type proxyIndex struct {
	tree rtree.RTreeG[sample]
}

// newProxyIndex bulk-loads the candidate set. Built once per directed
// evaluation.
func newProxyIndex(candidates []sample) *proxyIndex {
	ix := &proxyIndex{}
	for _, c := range candidates {
		p := [2]float64{c.point.Lon, c.point.Lat}
		ix.tree.Insert(p, p, c)
	}
	return ix
}

// nearby enumerates candidates in non-decreasing proxy distance from the
// query point, lazily; visit returns false to stop early.
func (ix *proxyIndex) nearby(query geodesic.Point, visit func(sample) bool) {
	q := [2]float64{query.Lon, query.Lat}
	ix.tree.Nearby(
		func(min, max [2]float64, _ sample, _ bool) float64 {
			return boxDistSquared(q, min, max)
		},
		func(_, _ [2]float64, candidate sample, _ float64) bool {
			return visit(candidate)
		},
	)
}

// boxDistSquared is the squared planar degree distance from a query point
// to an axis-aligned rectangle (zero when inside). Point entries are
// degenerate rectangles, so the same function orders both tree nodes and
// leaves.
func boxDistSquared(q [2]float64, min, max [2]float64) float64 {
	var sum float64
	for axis := 0; axis < 2; axis++ {
		v := q[axis]
		if v < min[axis] {
			d := min[axis] - v
			sum += d * d
		} else if v > max[axis] {
			d := v - max[axis]
			sum += d * d
		}
	}
	return sum
}
