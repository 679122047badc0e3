package domain

import "image"

// Mutation is one dirty-region report from the renderer: a rectangle that
// changed during an observation tick, plus the region's depth preference.
type Mutation struct {
	// Region is the mutated rectangle in device pixel coordinates.
	Region image.Rectangle

	// FourLevel marks the region as explicitly safe for the 4-level
	// no-flash path.
	FourLevel bool

	// NoFourLevel marks the region as explicitly opting out of the
	// 4-level path (content with gray the coarse depth would distort).
	NoFourLevel bool
}

// MutationBatch is the set of mutations observed in one renderer tick.
// The engine merges a batch into a single refresh window before queuing.
type MutationBatch []Mutation

// Merged returns the aligned bounding rectangle of the batch, or false when
// the batch contains no region with positive area.
func (b MutationBatch) Merged() (image.Rectangle, bool) {
	rects := make([]image.Rectangle, len(b))
	for i, m := range b {
		rects[i] = m.Region
	}
	return MergeRegions(rects)
}

// ExplicitFourLevel reports whether every non-degenerate region in the batch
// is explicitly marked for the 4-level path. A single unmarked region forces
// the merged window through content probing instead.
func (b MutationBatch) ExplicitFourLevel() bool {
	any := false
	for _, m := range b {
		r := m.Region.Canon()
		if r.Dx() <= 0 || r.Dy() <= 0 {
			continue
		}
		if !m.FourLevel {
			return false
		}
		any = true
	}
	return any
}

// VisibilityCounts summarizes the renderer's visible regions by depth
// preference. Queried once per full refresh to classify the whole frame.
type VisibilityCounts struct {
	// Total is the number of visible regions.
	Total int

	// FourLevel is the number of visible regions opting in to 4-level.
	FourLevel int

	// NoFourLevel is the number of visible regions opting out of 4-level.
	NoFourLevel int
}
