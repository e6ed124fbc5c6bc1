package layout

import "sort"

// splitColumns partitions a page's blocks into reading-order columns when
// the horizontal distribution of block centers shows a clear two-column
// gap. Returns the blocks regrouped column-major (left column top to
// bottom, then right column); single-column pages come back unchanged.
//
// minGap is the smallest center-to-center gap, in pixels, treated as a
// column divide; minBlocksPerColumn guards against splitting on incidental
// layout accidents like a pulled quote.
func splitColumns(blocks []Block, minGap float64, minBlocksPerColumn int) []Block {
	if len(blocks) < minBlocksPerColumn*2 {
		return blocks
	}

	centers := make([]float64, len(blocks))
	for i, b := range blocks {
		centers[i] = b.BBox.Center().X
	}
	sorted := append([]float64(nil), centers...)
	sort.Float64s(sorted)

	// Largest gap between adjacent sorted centers
	gapAt := -1
	largest := 0.0
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i] - sorted[i-1]
		if gap > largest {
			largest = gap
			gapAt = i
		}
	}
	if gapAt < 0 || largest < minGap {
		return blocks
	}

	boundary := (sorted[gapAt-1] + sorted[gapAt]) / 2

	var left, right []Block
	for _, b := range blocks {
		if b.BBox.Center().X < boundary {
			left = append(left, b)
		} else {
			right = append(right, b)
		}
	}
	if len(left) < minBlocksPerColumn || len(right) < minBlocksPerColumn {
		return blocks
	}

	// Columns read independently top to bottom
	ordered := append(left, right...)
	for i := range ordered {
		ordered[i].Index = i
	}
	return ordered
}
