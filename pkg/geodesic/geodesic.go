// Package geodesic computes great-circle distances on a spherical Earth
// model. Inputs are latitude/longitude in degrees; outputs are meters.
package geodesic

// EarthRadiusMeters is the WGS84 mean Earth radius.
const EarthRadiusMeters = 6_371_008.8

// Algorithm computes geodesic distance between two points. The default
// implementation is Spherical; callers may inject their own (for testing or
// alternative Earth models) anywhere an Algorithm is accepted.
type Algorithm interface {
	Distance(p1, p2 Point) (Distance, error)
}

// Spherical is the baseline great-circle algorithm using the haversine
// formula and the WGS84 mean radius.
type Spherical struct{}

// Distance implements Algorithm.
func (Spherical) Distance(p1, p2 Point) (Distance, error) {
	if err := p1.Validate(); err != nil {
		return Distance{}, err
	}
	if err := p2.Validate(); err != nil {
		return Distance{}, err
	}
	return NewDistance(haversineMeters(p1, p2))
}

// Pair is an origin/destination pair for batch distance computation.
type Pair struct {
	From Point
	To   Point
}

// Between computes the great-circle distance between two points using the
// default spherical algorithm. Both points are validated first.
func Between(p1, p2 Point) (Distance, error) {
	return BetweenWith(Spherical{}, p1, p2)
}

// BetweenWith computes the distance between two points using a custom
// algorithm.
func BetweenWith(alg Algorithm, p1, p2 Point) (Distance, error) {
	return alg.Distance(p1, p2)
}

// Batch computes distances for many pairs in input order using the default
// spherical algorithm. The first invalid coordinate short-circuits with an
// error.
func Batch(pairs []Pair) ([]float64, error) {
	return BatchWith(Spherical{}, pairs)
}

// BatchWith computes batch distances with a custom algorithm.
func BatchWith(alg Algorithm, pairs []Pair) ([]float64, error) {
	meters := make([]float64, len(pairs))
	for i, pair := range pairs {
		d, err := alg.Distance(pair.From, pair.To)
		if err != nil {
			return nil, err
		}
		meters[i] = d.Meters()
	}
	return meters, nil
}
