package densify

import (
	"errors"
	"fmt"

	"github.com/sells-group/geodist/pkg/geodesic"
)

// ErrMissingKnob is returned when neither spacing bound is configured.
var ErrMissingKnob = errors.New("densify: no spacing knob configured")

// ErrMissingCap is returned when the sample cap is zero or negative, which
// a zero-value Options produces.
var ErrMissingCap = errors.New("densify: sample cap not configured")

// ErrEmptyPointSet is returned when an operand, or a clipped result, holds
// no samples.
var ErrEmptyPointSet = errors.New("densify: empty point set")

// InvalidVertexError reports a non-finite or out-of-range vertex. Part is
// -1 when the input was a single polyline without part context.
type InvalidVertexError struct {
	Part   int
	Vertex int
	Axis   geodesic.Axis
	Value  float64
}

func (e *InvalidVertexError) Error() string {
	if e.Part < 0 {
		return fmt.Sprintf("densify: invalid %s %v at vertex %d", e.Axis, e.Value, e.Vertex)
	}
	return fmt.Sprintf("densify: invalid %s %v at part %d vertex %d", e.Axis, e.Value, e.Part, e.Vertex)
}

// DegeneratePolylineError reports a part with fewer than the minimum
// distinct vertices after consecutive duplicates are collapsed. Part is -1
// for single-polyline input.
type DegeneratePolylineError struct {
	Part int
}

func (e *DegeneratePolylineError) Error() string {
	if e.Part < 0 {
		return "densify: polyline is degenerate after de-duplication"
	}
	return fmt.Sprintf("densify: part %d is degenerate after de-duplication", e.Part)
}

// SampleCapError reports that the projected sample count would exceed the
// configured cap. The check runs before output allocation; Expected is the
// projected total (cumulative across parts for multi-part input).
type SampleCapError struct {
	Expected int
	Cap      int
	Part     int
}

func (e *SampleCapError) Error() string {
	if e.Part < 0 {
		return fmt.Sprintf("densify: projected %d samples exceeds cap %d", e.Expected, e.Cap)
	}
	return fmt.Sprintf("densify: projected %d samples exceeds cap %d at part %d", e.Expected, e.Cap, e.Part)
}
