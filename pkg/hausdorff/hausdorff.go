// Package hausdorff computes directed and symmetric Hausdorff distance
// between densified geodesic polylines, with deterministic witness
// selection that is identical across the brute-force and index-accelerated
// search paths.
package hausdorff

import (
	"github.com/sells-group/geodist/pkg/densify"
	"github.com/sells-group/geodist/pkg/geodesic"
)

// distanceTolerance is the meter tolerance within which two distances are
// considered tied for witness and direction selection.
const distanceTolerance = 1e-12

// Options controls a polyline Hausdorff evaluation. The densification
// knobs follow densify.Options semantics (<= 0 means unset).
type Options struct {
	// Symmetric evaluates both directions and returns the dominant one;
	// when false only A->B is evaluated.
	Symmetric bool
	// BoundingBox, when non-nil, clips both operands identically before any
	// distance computation.
	BoundingBox *geodesic.BoundingBox
	// ReturnWitness attaches the maximizing/minimizing sample pair to the
	// result.
	ReturnWitness bool

	MaxSegmentLengthMeters float64
	MaxSegmentAngleDegrees float64
	SampleCap              int
}

// DefaultOptions returns symmetric evaluation without witness reporting and
// the default densification knobs.
func DefaultOptions() Options {
	d := densify.DefaultOptions()
	return Options{
		Symmetric:              true,
		MaxSegmentLengthMeters: d.MaxSegmentLengthMeters,
		MaxSegmentAngleDegrees: d.MaxSegmentAngleDegrees,
		SampleCap:              d.SampleCap,
	}
}

func (o Options) densifyOptions() densify.Options {
	return densify.Options{
		MaxSegmentLengthMeters: o.MaxSegmentLengthMeters,
		MaxSegmentAngleDegrees: o.MaxSegmentAngleDegrees,
		SampleCap:              o.SampleCap,
	}
}

// Witness identifies the sample pair realizing a reported distance, with
// (part, vertex) attribution on both sides of the flattened geometries.
type Witness struct {
	Distance     geodesic.Distance
	SourcePart   int
	SourceVertex int
	TargetPart   int
	TargetVertex int
	SourceCoord  geodesic.Point
	TargetCoord  geodesic.Point
}

// Result is the outcome of a polyline Hausdorff evaluation. Witness is nil
// unless Options.ReturnWitness was set.
type Result struct {
	Distance geodesic.Distance
	Witness  *Witness
}

// Evaluator computes Hausdorff distances using an injected geodesic kernel.
// Every call is a pure function of its inputs; an Evaluator holds no state
// between invocations and is safe for concurrent use.
type Evaluator struct {
	kernel geodesic.Algorithm
	engine *densify.Engine
}

// NewEvaluator constructs an evaluator. A nil kernel selects the default
// spherical algorithm.
func NewEvaluator(kernel geodesic.Algorithm) *Evaluator {
	if kernel == nil {
		kernel = geodesic.Spherical{}
	}
	return &Evaluator{kernel: kernel, engine: densify.NewEngine(kernel)}
}

var defaultEvaluator = NewEvaluator(nil)

// Polyline evaluates the Hausdorff distance between two multi-part
// polylines with the default spherical kernel.
func Polyline(a, b [][]geodesic.Point, opts Options) (*Result, error) {
	return defaultEvaluator.Polyline(a, b, opts)
}

// Polyline densifies both operands, optionally clips them to the bounding
// box, and evaluates the directed or symmetric Hausdorff distance.
func (ev *Evaluator) Polyline(a, b [][]geodesic.Point, opts Options) (*Result, error) {
	dOpts := opts.densifyOptions()

	flatA, err := ev.engine.DensifyMulti(a, dOpts)
	if err != nil {
		return nil, err
	}
	flatB, err := ev.engine.DensifyMulti(b, dOpts)
	if err != nil {
		return nil, err
	}

	if opts.BoundingBox != nil {
		if flatA, err = flatA.Clip(*opts.BoundingBox); err != nil {
			return nil, err
		}
		if flatB, err = flatB.Clip(*opts.BoundingBox); err != nil {
			return nil, err
		}
	}

	samplesA := enumerateSamples(flatA)
	samplesB := enumerateSamples(flatB)

	dominant, err := ev.directed(samplesA, samplesB)
	if err != nil {
		return nil, err
	}
	if opts.Symmetric {
		reverse, err := ev.directed(samplesB, samplesA)
		if err != nil {
			return nil, err
		}
		dominant = pickSymmetric(dominant, reverse)
	}

	distance, err := geodesic.NewDistance(dominant.meters)
	if err != nil {
		return nil, err
	}

	result := &Result{Distance: distance}
	if opts.ReturnWitness {
		result.Witness = &Witness{
			Distance:     distance,
			SourcePart:   dominant.source.part,
			SourceVertex: dominant.source.vertex,
			TargetPart:   dominant.target.part,
			TargetVertex: dominant.target.vertex,
			SourceCoord:  dominant.source.point,
			TargetCoord:  dominant.target.point,
		}
	}
	return result, nil
}

// sample is one densified point with its (part, vertex) attribution.
type sample struct {
	point  geodesic.Point
	part   int
	vertex int
}

// directedWitness is the running result of one directed evaluation.
type directedWitness struct {
	meters float64
	source sample
	target sample
}

func enumerateSamples(f *densify.FlattenedPolyline) []sample {
	points := f.Samples()
	offsets := f.PartOffsets()
	samples := make([]sample, 0, len(points))
	for part := 0; part+1 < len(offsets); part++ {
		for vertex, point := range points[offsets[part]:offsets[part+1]] {
			samples = append(samples, sample{point: point, part: part, vertex: vertex})
		}
	}
	return samples
}

// directed computes H(origins -> candidates), dispatching on the sizing
// predicate. Both paths apply the same composite tie-break and must return
// identical witnesses for identical inputs.
func (ev *Evaluator) directed(origins, candidates []sample) (directedWitness, error) {
	if len(origins) == 0 || len(candidates) == 0 {
		return directedWitness{}, densify.ErrEmptyPointSet
	}
	if chooseStrategy(len(origins), len(candidates)) == strategyNaive {
		return ev.directedNaive(origins, candidates)
	}
	return ev.directedIndexed(origins, candidates)
}

// directedNaive scans every candidate for every origin.
func (ev *Evaluator) directedNaive(origins, candidates []sample) (directedWitness, error) {
	var best directedWitness
	haveBest := false

	for _, origin := range origins {
		var nearest directedWitness
		haveNearest := false
		for _, candidate := range candidates {
			w, err := ev.witnessFor(origin, candidate)
			if err != nil {
				return directedWitness{}, err
			}
			if !haveNearest || prefersTarget(nearest, w) {
				nearest = w
				haveNearest = true
			}
		}
		if haveNearest && (!haveBest || prefersWorse(best, nearest)) {
			best = nearest
			haveBest = true
		}
	}

	if !haveBest {
		return directedWitness{}, densify.ErrEmptyPointSet
	}
	return best, nil
}

// directedIndexed builds a spatial index over the candidates once, then for
// each origin enumerates candidates in non-decreasing planar-proxy order,
// recomputing the true geodesic distance for every one. Enumeration stops
// once a candidate's true distance exceeds the origin's best by more than
// the tolerance.
func (ev *Evaluator) directedIndexed(origins, candidates []sample) (directedWitness, error) {
	index := newProxyIndex(candidates)

	var best directedWitness
	haveBest := false

	for _, origin := range origins {
		var nearest directedWitness
		haveNearest := false
		var walkErr error

		index.nearby(origin.point, func(candidate sample) bool {
			w, err := ev.witnessFor(origin, candidate)
			if err != nil {
				walkErr = err
				return false
			}
			if !haveNearest {
				nearest = w
				haveNearest = true
				return true
			}
			switch {
			case w.meters+distanceTolerance < nearest.meters:
				nearest = w
			case abs(w.meters-nearest.meters) <= distanceTolerance:
				if prefersTarget(nearest, w) {
					nearest = w
				}
			case w.meters > nearest.meters+distanceTolerance:
				return false
			}
			return true
		})
		if walkErr != nil {
			return directedWitness{}, walkErr
		}
		if !haveNearest {
			return directedWitness{}, densify.ErrEmptyPointSet
		}
		if !haveBest || prefersWorse(best, nearest) {
			best = nearest
			haveBest = true
		}
	}

	if !haveBest {
		return directedWitness{}, densify.ErrEmptyPointSet
	}
	return best, nil
}

func (ev *Evaluator) witnessFor(origin, candidate sample) (directedWitness, error) {
	d, err := ev.kernel.Distance(origin.point, candidate.point)
	if err != nil {
		return directedWitness{}, err
	}
	return directedWitness{meters: d.Meters(), source: origin, target: candidate}, nil
}

// prefersTarget reports whether candidate should replace current as the
// nearest match for one origin: strictly closer, or tied within tolerance
// with a lexicographically smaller (target part, target vertex).
func prefersTarget(current, candidate directedWitness) bool {
	if candidate.meters+distanceTolerance < current.meters {
		return true
	}
	return abs(candidate.meters-current.meters) <= distanceTolerance &&
		lessIndex(candidate.target, current.target)
}

// prefersWorse reports whether candidate should replace current as the
// directed result across origins: strictly farther, or tied within
// tolerance with a smaller (source part, source vertex), then smaller
// matched target index.
func prefersWorse(current, candidate directedWitness) bool {
	if candidate.meters > current.meters+distanceTolerance {
		return true
	}
	if abs(candidate.meters-current.meters) > distanceTolerance {
		return false
	}
	if lessIndex(candidate.source, current.source) {
		return true
	}
	return candidate.source.part == current.source.part &&
		candidate.source.vertex == current.source.vertex &&
		lessIndex(candidate.target, current.target)
}

func lessIndex(a, b sample) bool {
	if a.part != b.part {
		return a.part < b.part
	}
	return a.vertex < b.vertex
}

// pickSymmetric returns the dominant direction, preferring forward when the
// two distances are within tolerance of each other.
func pickSymmetric(forward, reverse directedWitness) directedWitness {
	if abs(forward.meters-reverse.meters) <= distanceTolerance {
		return forward
	}
	if forward.meters > reverse.meters {
		return forward
	}
	return reverse
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
