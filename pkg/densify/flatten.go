package densify

import "github.com/sells-group/geodist/pkg/geodesic"

// FlattenedPolyline holds densified samples for a multi-part polyline in a
// single contiguous buffer, with part boundaries recorded as offsets.
// partOffsets always has len(parts)+1 entries: partOffsets[0] == 0,
// offsets are non-decreasing, and samples[partOffsets[i]:partOffsets[i+1]]
// is exactly part i.
type FlattenedPolyline struct {
	samples     []geodesic.Point
	partOffsets []int
}

// Samples returns the flattened sample buffer across all parts.
func (f *FlattenedPolyline) Samples() []geodesic.Point {
	return f.samples
}

// PartOffsets returns the offset table delimiting each part.
func (f *FlattenedPolyline) PartOffsets() []int {
	return f.partOffsets
}

// Parts returns the number of parts.
func (f *FlattenedPolyline) Parts() int {
	return len(f.partOffsets) - 1
}

// Part returns the samples of part i.
func (f *FlattenedPolyline) Part(i int) []geodesic.Point {
	return f.samples[f.partOffsets[i]:f.partOffsets[i+1]]
}

// Clip filters samples against an inclusive bounding box, independently per
// part, preserving relative order and re-deriving offsets. Parts left empty
// by the filter remain delimited. Returns ErrEmptyPointSet when nothing
// survives. Clipping is idempotent for a fixed box.
func (f *FlattenedPolyline) Clip(box geodesic.BoundingBox) (*FlattenedPolyline, error) {
	var filtered []geodesic.Point
	offsets := make([]int, 1, len(f.partOffsets))

	for i := 0; i+1 < len(f.partOffsets); i++ {
		for _, p := range f.samples[f.partOffsets[i]:f.partOffsets[i+1]] {
			if box.Contains(p) {
				filtered = append(filtered, p)
			}
		}
		offsets = append(offsets, len(filtered))
	}

	if len(filtered) == 0 {
		return nil, ErrEmptyPointSet
	}

	return &FlattenedPolyline{samples: filtered, partOffsets: offsets}, nil
}
