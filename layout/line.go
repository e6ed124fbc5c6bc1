package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/relayout/model"
)

// LineBand represents a horizontal band of fragments forming one text line
type LineBand struct {
	// Fragments are the member tokens, sorted left to right
	Fragments []model.Fragment

	// BBox is the union bounding box of the band
	BBox model.BBox

	// Index is the band's position on the page (0-based, top to bottom)
	Index int
}

// Text assembles the band's text with single spaces between fragments
func (b LineBand) Text() string {
	parts := make([]string, 0, len(b.Fragments))
	for _, f := range b.Fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}

// LineConfig holds configuration for line-band detection
type LineConfig struct {
	// OverlapRatio is the minimum vertical bounding-box overlap, as a
	// fraction of the shorter box's height, for two fragments to share a
	// band (default: 0.5)
	OverlapRatio float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		OverlapRatio: 0.5,
	}
}

// LineDetector clusters fragments into line-bands
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{config: DefaultLineConfig()}
}

// NewLineDetectorWithConfig creates a line detector with custom
// configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{config: config}
}

// Detect groups fragments into line-bands. Bands are returned top to
// bottom; fragments within a band are ordered left to right. An empty
// input yields no bands.
func (d *LineDetector) Detect(fragments []model.Fragment) []LineBand {
	if len(fragments) == 0 {
		return nil
	}

	// Sort by vertical position, preserving input order for ties
	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() < sorted[j].BBox.Top()
	})

	var bands []LineBand
	var current *LineBand

	for _, frag := range sorted {
		if current != nil && frag.BBox.VerticalOverlapRatio(current.BBox) > d.config.OverlapRatio {
			current.Fragments = append(current.Fragments, frag)
			current.BBox = current.BBox.Union(frag.BBox)
			continue
		}

		if current != nil {
			bands = append(bands, *current)
		}
		current = &LineBand{
			Fragments: []model.Fragment{frag},
			BBox:      frag.BBox,
		}
	}
	if current != nil {
		bands = append(bands, *current)
	}

	// Left-to-right order within each band
	for i := range bands {
		sort.SliceStable(bands[i].Fragments, func(a, b int) bool {
			return bands[i].Fragments[a].BBox.Left() < bands[i].Fragments[b].BBox.Left()
		})
		bands[i].Index = i
	}

	return bands
}

// medianBandHeight returns the median height of a set of bands, or 0 for
// an empty set
func medianBandHeight(bands []LineBand) float64 {
	if len(bands) == 0 {
		return 0
	}

	heights := make([]float64, len(bands))
	for i, b := range bands {
		heights[i] = b.BBox.Height
	}
	sort.Float64s(heights)

	mid := len(heights) / 2
	if len(heights)%2 == 1 {
		return heights[mid]
	}
	return (heights[mid-1] + heights[mid]) / 2
}
