package layout

import (
	"strings"

	"github.com/tsawler/relayout/model"
)

// Block represents a contiguous group of line-bands separated from its
// neighbors by whitespace. A block is the unit of role classification.
type Block struct {
	// Bands are the member line-bands, top to bottom
	Bands []LineBand

	// BBox is the union bounding box of the block
	BBox model.BBox

	// Index is the block's position in reading order (0-based)
	Index int
}

// Fragments returns the block's fragments in reading order (band-major,
// left to right within each band)
func (b Block) Fragments() []model.Fragment {
	var fragments []model.Fragment
	for _, band := range b.Bands {
		fragments = append(fragments, band.Fragments...)
	}
	return fragments
}

// Text assembles the block's text: single spaces within a band, newlines
// between bands
func (b Block) Text() string {
	parts := make([]string, 0, len(b.Bands))
	for _, band := range b.Bands {
		parts = append(parts, band.Text())
	}
	return strings.Join(parts, "\n")
}

// WordCount returns the number of fragments in the block
func (b Block) WordCount() int {
	count := 0
	for _, band := range b.Bands {
		count += len(band.Fragments)
	}
	return count
}

// BlockConfig holds configuration for block detection
type BlockConfig struct {
	// GapRatio is the maximum vertical gap between consecutive bands, as
	// a multiple of the page's median line height, for the bands to share
	// a block; a larger gap is a paragraph boundary (default: 1.5)
	GapRatio float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		GapRatio: 1.5,
	}
}

// BlockDetector merges line-bands into blocks
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{config: DefaultBlockConfig()}
}

// NewBlockDetectorWithConfig creates a block detector with custom
// configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	return &BlockDetector{config: config}
}

// Detect groups consecutive line-bands into blocks. The gap threshold is
// relative to the median line height across the given bands, so dense and
// sparse pages both split sensibly.
func (d *BlockDetector) Detect(bands []LineBand) []Block {
	if len(bands) == 0 {
		return nil
	}

	median := medianBandHeight(bands)
	maxGap := median * d.config.GapRatio

	var blocks []Block
	current := Block{Bands: []LineBand{bands[0]}, BBox: bands[0].BBox}

	for _, band := range bands[1:] {
		gap := band.BBox.Top() - current.BBox.Bottom()
		if gap < maxGap {
			current.Bands = append(current.Bands, band)
			current.BBox = current.BBox.Union(band.BBox)
		} else {
			blocks = append(blocks, current)
			current = Block{Bands: []LineBand{band}, BBox: band.BBox}
		}
	}
	blocks = append(blocks, current)

	for i := range blocks {
		blocks[i].Index = i
	}

	return blocks
}
