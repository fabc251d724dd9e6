package hausdorff

// Sizing thresholds for strategy selection. Below either bound the
// brute-force scan beats index build-plus-query cost.
const (
	minIndexedSize       = 32
	maxNaiveCrossProduct = 4_000
)

type strategy int

const (
	strategyNaive strategy = iota
	strategyIndexed
)

// chooseStrategy is a pure cardinality predicate, applied independently per
// directed evaluation; no geometry-shape heuristics are involved.
func chooseStrategy(aLen, bLen int) strategy {
	minSize := aLen
	if bLen < minSize {
		minSize = bLen
	}
	if minSize < minIndexedSize || aLen*bLen <= maxNaiveCrossProduct {
		return strategyNaive
	}
	return strategyIndexed
}
