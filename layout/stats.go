package layout

import (
	"sort"

	"github.com/tsawler/relayout/model"
)

// tierTolerance is the relative spread within which two fragment heights
// are considered the same size tier.
const tierTolerance = 0.1

// DocumentStats holds document-wide size statistics used by role
// classification. Compute it once over all pages' fragments, then share it
// with every page's analysis; it is a plain value and safe to copy across
// workers.
type DocumentStats struct {
	// MedianHeight is the median fragment height across the document,
	// the font-size proxy for body text
	MedianHeight float64

	// SizeTiers are the distinct fragment-height clusters in descending
	// order; tier 0 is the largest text in the document
	SizeTiers []float64
}

// ComputeStats derives document-wide size statistics from all fragments
func ComputeStats(fragments []model.Fragment) DocumentStats {
	if len(fragments) == 0 {
		return DocumentStats{}
	}

	heights := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		if f.BBox.Height > 0 {
			heights = append(heights, f.BBox.Height)
		}
	}
	if len(heights) == 0 {
		return DocumentStats{}
	}

	sort.Float64s(heights)
	mid := len(heights) / 2
	median := heights[mid]
	if len(heights)%2 == 0 {
		median = (heights[mid-1] + heights[mid]) / 2
	}

	return DocumentStats{
		MedianHeight: median,
		SizeTiers:    clusterHeights(heights),
	}
}

// clusterHeights groups sorted heights into tiers, merging values within
// tierTolerance of a cluster's running mean. Returned tiers are sorted
// descending.
func clusterHeights(sorted []float64) []float64 {
	var tiers []float64
	clusterSum := sorted[0]
	clusterCount := 1

	for _, h := range sorted[1:] {
		mean := clusterSum / float64(clusterCount)
		if h-mean <= mean*tierTolerance {
			clusterSum += h
			clusterCount++
		} else {
			tiers = append(tiers, mean)
			clusterSum = h
			clusterCount = 1
		}
	}
	tiers = append(tiers, clusterSum/float64(clusterCount))

	// Largest first
	sort.Sort(sort.Reverse(sort.Float64Slice(tiers)))
	return tiers
}

// TierIndex returns the 0-based size tier a font-size proxy falls into,
// largest tier first. Unmatched proxies map to the last tier.
func (s DocumentStats) TierIndex(proxy float64) int {
	for i, t := range s.SizeTiers {
		if proxy >= t-t*tierTolerance {
			return i
		}
	}
	if len(s.SizeTiers) == 0 {
		return 0
	}
	return len(s.SizeTiers) - 1
}
