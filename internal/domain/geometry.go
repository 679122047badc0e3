package domain

import "image"

// AlignQuantum is the horizontal alignment boundary for partial refresh
// windows, in pixels. The controller leaves visible seams when a partial
// window does not start and end on this boundary; the vertical axis has no
// such artifact and needs no snapping.
const AlignQuantum = 32

// MergeRegions folds a set of candidate rectangles into the minimal bounding
// rectangle of all non-degenerate inputs, with the left and right edges
// snapped outward to the alignment quantum. Zero-area rectangles are skipped.
//
// The second return value is false when no input has positive area or the
// merged result is itself degenerate; callers must treat that as "nothing to
// refresh" and perform no work.
//
// The result depends only on the set of inputs, not their order.
func MergeRegions(rects []image.Rectangle) (image.Rectangle, bool) {
	var merged image.Rectangle
	found := false

	for _, r := range rects {
		r = r.Canon()
		if r.Dx() <= 0 || r.Dy() <= 0 {
			continue
		}
		if !found {
			merged = r
			found = true
			continue
		}
		merged = merged.Union(r)
	}

	if !found {
		return image.Rectangle{}, false
	}

	merged.Min.X = alignDown(merged.Min.X)
	merged.Max.X = alignUp(merged.Max.X)

	if merged.Dx() <= 0 || merged.Dy() <= 0 {
		return image.Rectangle{}, false
	}
	return merged, true
}

func alignDown(x int) int {
	if x < 0 {
		return 0
	}
	return x - x%AlignQuantum
}

func alignUp(x int) int {
	if r := x % AlignQuantum; r != 0 {
		return x + AlignQuantum - r
	}
	return x
}
