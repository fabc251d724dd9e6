// Package densify turns raw polyline vertices into adaptively interpolated
// great-circle arc samples bounded by configured spacing, preserving
// multi-part structure through a flattened sample buffer with part offsets.
package densify

import (
	"errors"
	"math"

	"github.com/sells-group/geodist/pkg/geodesic"
)

// Options controls polyline densification. A spacing knob with a value <= 0
// (or NaN) is treated as unset; at least one of the two knobs must be set.
type Options struct {
	// MaxSegmentLengthMeters bounds the chord length per emitted subsegment.
	MaxSegmentLengthMeters float64
	// MaxSegmentAngleDegrees bounds the central angle per emitted subsegment.
	MaxSegmentAngleDegrees float64
	// SampleCap bounds the total emitted samples across the flattened
	// geometry, checked before allocation. It must be positive; zero is
	// rejected, not treated as unlimited.
	SampleCap int
}

// DefaultOptions returns 100 m / 0.1 degree spacing with a 50000 sample cap.
func DefaultOptions() Options {
	return Options{
		MaxSegmentLengthMeters: 100.0,
		MaxSegmentAngleDegrees: 0.1,
		SampleCap:              50_000,
	}
}

func knobSet(v float64) bool {
	return v > 0
}

func (o Options) validate() error {
	if !knobSet(o.MaxSegmentLengthMeters) && !knobSet(o.MaxSegmentAngleDegrees) {
		return ErrMissingKnob
	}
	if o.SampleCap <= 0 {
		return ErrMissingCap
	}
	return nil
}

// Engine densifies polylines using an injected geodesic kernel.
type Engine struct {
	kernel geodesic.Algorithm
}

// NewEngine constructs an engine. A nil kernel selects the default
// spherical algorithm.
func NewEngine(kernel geodesic.Algorithm) *Engine {
	if kernel == nil {
		kernel = geodesic.Spherical{}
	}
	return &Engine{kernel: kernel}
}

var defaultEngine = NewEngine(nil)

// Densify samples a single polyline with the default spherical kernel.
func Densify(vertices []geodesic.Point, opts Options) ([]geodesic.Point, error) {
	return defaultEngine.Densify(vertices, opts)
}

// DensifyMulti samples a multi-part polyline with the default spherical
// kernel.
func DensifyMulti(parts [][]geodesic.Point, opts Options) (*FlattenedPolyline, error) {
	return defaultEngine.DensifyMulti(parts, opts)
}

// Densify validates a vertex sequence, collapses consecutive duplicates,
// and emits interpolated arc samples respecting the configured spacing.
// The first sample is the first retained vertex and the last sample reaches
// the final vertex exactly.
func (e *Engine) Densify(vertices []geodesic.Point, opts Options) ([]geodesic.Point, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	deduped, err := ValidatePart(vertices, -1)
	if err != nil {
		return nil, err
	}

	segments, err := e.buildSegments(deduped, opts)
	if err != nil {
		return nil, err
	}
	return emitSamples(segments, deduped, opts.SampleCap, -1)
}

// DensifyMulti runs Densify per part with a running sample total across
// parts. The first part whose cumulative projected count would exceed the
// cap fails with that part's index, before any output for it is allocated.
func (e *Engine) DensifyMulti(parts [][]geodesic.Point, opts Options) (*FlattenedPolyline, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	var samples []geodesic.Point
	offsets := make([]int, 1, len(parts)+1)
	total := 0

	for partIndex, part := range parts {
		deduped, err := ValidatePart(part, partIndex)
		if err != nil {
			return nil, err
		}

		segments, err := e.buildSegments(deduped, opts)
		if err != nil {
			return nil, err
		}

		expected := 1
		for _, seg := range segments {
			expected += seg.splitCount
		}
		predicted := total + expected
		if predicted > opts.SampleCap {
			return nil, &SampleCapError{Expected: predicted, Cap: opts.SampleCap, Part: partIndex}
		}

		emitted, err := emitSamples(segments, deduped, opts.SampleCap, partIndex)
		if err != nil {
			return nil, err
		}
		total = predicted
		samples = append(samples, emitted...)
		offsets = append(offsets, offsets[len(offsets)-1]+len(emitted))
	}

	return &FlattenedPolyline{samples: samples, partOffsets: offsets}, nil
}

// segment describes one retained vertex pair and how finely to subdivide it.
type segment struct {
	start        int
	end          int
	splitCount   int
	centralAngle float64 // radians
}

func (e *Engine) buildSegments(vertices []geodesic.Point, opts Options) ([]segment, error) {
	segments := make([]segment, 0, len(vertices)-1)

	for i := 0; i+1 < len(vertices); i++ {
		d, err := e.kernel.Distance(vertices[i], vertices[i+1])
		if err != nil {
			return nil, err
		}
		meters := d.Meters()

		// Zero-length segments are skipped; ordering is otherwise preserved.
		if meters == 0 {
			continue
		}

		centralAngle := meters / geodesic.EarthRadiusMeters
		segments = append(segments, segment{
			start:        i,
			end:          i + 1,
			splitCount:   splitCount(meters, centralAngle, opts),
			centralAngle: centralAngle,
		})
	}

	return segments, nil
}

// splitCount returns the minimal subdivision satisfying every configured
// spacing knob; the stricter knob wins when both are set.
func splitCount(meters, centralAngle float64, opts Options) int {
	splits := 1

	if knobSet(opts.MaxSegmentLengthMeters) {
		if parts := int(math.Ceil(meters / opts.MaxSegmentLengthMeters)); parts > splits {
			splits = parts
		}
	}
	if knobSet(opts.MaxSegmentAngleDegrees) {
		angleDeg := centralAngle * 180 / math.Pi
		if parts := int(math.Ceil(angleDeg / opts.MaxSegmentAngleDegrees)); parts > splits {
			splits = parts
		}
	}

	return splits
}

func emitSamples(segments []segment, vertices []geodesic.Point, sampleCap int, part int) ([]geodesic.Point, error) {
	if len(segments) == 0 {
		// All segments collapsed to zero length; emit the retained vertex.
		if len(vertices) == 0 {
			return nil, nil
		}
		return []geodesic.Point{vertices[0]}, nil
	}

	total := 1
	for _, seg := range segments {
		total += seg.splitCount
	}
	if total > sampleCap {
		return nil, &SampleCapError{Expected: total, Cap: sampleCap, Part: part}
	}

	samples := make([]geodesic.Point, 0, total)
	samples = append(samples, vertices[segments[0].start])
	for _, seg := range segments {
		samples = interpolateSegment(samples, vertices[seg.start], vertices[seg.end], seg.centralAngle, seg.splitCount)
	}

	return samples, nil
}

// interpolateSegment appends splitCount points along the great circle from
// start to end, spaced uniformly in central angle; the final point is the
// segment endpoint. A zero sine (degenerate or antipodal arc) emits the
// endpoint directly instead of dividing by zero.
func interpolateSegment(dst []geodesic.Point, start, end geodesic.Point, centralAngle float64, splitCount int) []geodesic.Point {
	sinDelta := math.Sin(centralAngle)
	if sinDelta == 0 {
		return append(dst, end)
	}

	lat1, lon1 := start.Lat*math.Pi/180, start.Lon*math.Pi/180
	lat2, lon2 := end.Lat*math.Pi/180, end.Lon*math.Pi/180

	for step := 1; step <= splitCount; step++ {
		fraction := float64(step) / float64(splitCount)
		a := math.Sin((1-fraction)*centralAngle) / sinDelta
		b := math.Sin(fraction*centralAngle) / sinDelta

		x := a*math.Cos(lat1)*math.Cos(lon1) + b*math.Cos(lat2)*math.Cos(lon2)
		y := a*math.Cos(lat1)*math.Sin(lon1) + b*math.Cos(lat2)*math.Sin(lon2)
		z := a*math.Sin(lat1) + b*math.Sin(lat2)

		lat := math.Atan2(z, math.Sqrt(x*x+y*y))
		lon := math.Atan2(y, x)

		dst = append(dst, geodesic.Point{Lat: lat * 180 / math.Pi, Lon: lon * 180 / math.Pi})
	}

	return dst
}

// CollapseDuplicates removes consecutive exact-duplicate vertices while
// preserving order.
func CollapseDuplicates(vertices []geodesic.Point) []geodesic.Point {
	deduped := make([]geodesic.Point, 0, len(vertices))
	for _, v := range vertices {
		if len(deduped) == 0 || deduped[len(deduped)-1] != v {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

// CheckVertices validates every vertex in order, attributing the first
// violation to the given part index (-1 for single-polyline input).
func CheckVertices(vertices []geodesic.Point, part int) error {
	for i, v := range vertices {
		if err := v.Validate(); err != nil {
			var coordErr *geodesic.CoordinateError
			if errors.As(err, &coordErr) {
				return &InvalidVertexError{Part: part, Vertex: i, Axis: coordErr.Axis, Value: coordErr.Value}
			}
			return err
		}
	}
	return nil
}

// ValidatePart validates vertices, collapses consecutive duplicates, and
// requires at least two distinct vertices. It returns the deduplicated
// vertices for sampling.
func ValidatePart(vertices []geodesic.Point, part int) ([]geodesic.Point, error) {
	if err := CheckVertices(vertices, part); err != nil {
		return nil, err
	}
	deduped := CollapseDuplicates(vertices)
	if len(deduped) < 2 {
		return nil, &DegeneratePolylineError{Part: part}
	}
	return deduped, nil
}
