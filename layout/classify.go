package layout

import (
	"math"
	"regexp"
	"sort"

	"github.com/tsawler/relayout/model"
)

var (
	// strictNumberPattern matches numbered prefixes like "1. " or "2) ".
	// Only this strict form lets a list classification override a heading
	// candidate (a numbered heading stays a heading otherwise).
	strictNumberPattern = regexp.MustCompile(`^\d+[.)]\s`)

	// bulletPattern matches common bullet characters leading a block
	bulletPattern = regexp.MustCompile(`^[•◦▪‣*–-]\s`)
)

// ClassifierConfig holds configuration for role classification
type ClassifierConfig struct {
	// HeadingTierCount is how many of the largest size tiers qualify as
	// heading candidates (default: 3)
	HeadingTierCount int

	// MaxHeadingLevel caps assigned heading levels (default: 3)
	MaxHeadingLevel int

	// MaxHeadingWords is the maximum word count for a heading candidate
	// (default: 12)
	MaxHeadingWords int

	// MinHeadingRatio is the minimum font-size proxy relative to the
	// document median for a heading candidate (default: 1.15)
	MinHeadingRatio float64

	// BoldRatio is the minimum proxy relative to the document median to
	// set the bold estimate (default: 1.3)
	BoldRatio float64

	// MinTableColumns and MinTableRows are the smallest grid treated as
	// a table cell group (defaults: 2, 2)
	MinTableColumns int
	MinTableRows    int

	// TableAlignRatio scales the document median height into the
	// horizontal tolerance for column alignment (default: 0.6)
	TableAlignRatio float64

	// AlignmentTolerance is the fraction of the page width within which
	// a block counts as aligned to a margin or the center (default: 0.05)
	AlignmentTolerance float64

	// ColumnMinGapRatio is the fraction of the page width a gap between
	// block centers must exceed to split the page into two reading
	// columns (default: 0.15)
	ColumnMinGapRatio float64

	// MinColumnBlocks is the minimum number of blocks per side required
	// to accept a column split (default: 2)
	MinColumnBlocks int
}

// DefaultClassifierConfig returns sensible default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		HeadingTierCount:   3,
		MaxHeadingLevel:    3,
		MaxHeadingWords:    12,
		MinHeadingRatio:    1.15,
		BoldRatio:          1.3,
		MinTableColumns:    2,
		MinTableRows:       2,
		TableAlignRatio:    0.6,
		AlignmentTolerance: 0.05,
		ColumnMinGapRatio:  0.15,
		MinColumnBlocks:    2,
	}
}

// PageContext carries the cross-page classification state as an explicit
// value: the heading size ladder, whether the document title is already
// assigned, the last classified kind on the previous page, and the next
// table number. Passing it by value keeps page-level workers independent;
// under parallel execution it may lag one page behind, which the heading
// continuity heuristic tolerates.
type PageContext struct {
	// TitleSeen is true once the document title has been assigned
	TitleSeen bool

	// HeadingSizes is the ladder of heading font-size proxies seen so
	// far, largest first; position in the ladder fixes the heading level
	HeadingSizes []float64

	// LastKind is the kind of the previous page's final unit
	LastKind model.UnitKind

	// NextTableIndex numbers table cell groups across the document
	NextTableIndex int
}

// RoleClassifier assigns structural roles to blocks
type RoleClassifier struct {
	config ClassifierConfig
}

// NewRoleClassifier creates a classifier with default configuration
func NewRoleClassifier() *RoleClassifier {
	return &RoleClassifier{config: DefaultClassifierConfig()}
}

// NewRoleClassifierWithConfig creates a classifier with custom
// configuration
func NewRoleClassifierWithConfig(config ClassifierConfig) *RoleClassifier {
	return &RoleClassifier{config: config}
}

// blockProxy estimates a block's font size from the median height of its
// fragments
func blockProxy(block Block) float64 {
	var heights []float64
	for _, band := range block.Bands {
		for _, f := range band.Fragments {
			if f.BBox.Height > 0 {
				heights = append(heights, f.BBox.Height)
			}
		}
	}
	if len(heights) == 0 {
		return 0
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 1 {
		return heights[mid]
	}
	return (heights[mid-1] + heights[mid]) / 2
}

// estimateAlignment derives a block's horizontal alignment from its
// position between the page's content margins
func (c *RoleClassifier) estimateAlignment(block Block, contentLeft, contentRight, pageWidth float64) model.TextAlignment {
	tolerance := pageWidth * c.config.AlignmentTolerance
	contentCenter := (contentLeft + contentRight) / 2

	leftAligned := math.Abs(block.BBox.Left()-contentLeft) <= tolerance
	rightAligned := math.Abs(block.BBox.Right()-contentRight) <= tolerance
	centerAligned := math.Abs(block.BBox.Center().X-contentCenter) <= tolerance

	switch {
	case leftAligned && rightAligned:
		return model.AlignLeft
	case centerAligned && !leftAligned && !rightAligned:
		return model.AlignCenter
	case rightAligned && !leftAligned:
		return model.AlignRight
	case leftAligned:
		return model.AlignLeft
	default:
		return model.AlignUnknown
	}
}

// classification is the outcome for one block
type classification struct {
	kind       model.UnitKind
	level      int
	tableIndex int
}

// classify assigns a role to one block. firstOnPage and onlyBlock describe
// the block's position within its page; ctx is mutated (title assignment,
// heading ladder, table numbering).
func (c *RoleClassifier) classify(block Block, pageIndex int, firstOnPage, onlyBlock bool,
	alignment model.TextAlignment, stats DocumentStats, ctx *PageContext) classification {

	proxy := blockProxy(block)
	words := block.WordCount()
	text := block.Text()
	tier := stats.TierIndex(proxy)

	strictNumbered := strictNumberPattern.MatchString(text)
	bulleted := bulletPattern.MatchString(text)

	// Title: the first block of the first page carrying the document's
	// largest text. Centering separates a title from a leading heading;
	// a page whose sole block is its largest text also qualifies.
	if pageIndex == 0 && firstOnPage && !ctx.TitleSeen && tier == 0 &&
		!strictNumbered && !bulleted &&
		(alignment == model.AlignCenter || onlyBlock) {
		ctx.TitleSeen = true
		return classification{kind: model.KindTitle, tableIndex: -1}
	}

	headingCandidate := tier < c.config.HeadingTierCount &&
		words <= c.config.MaxHeadingWords &&
		proxy >= stats.MedianHeight*c.config.MinHeadingRatio

	if headingCandidate {
		// A strict numbered prefix overrides the heading reading; any
		// other numbering or bullet styling loses the tie-break.
		if strictNumbered {
			return classification{kind: model.KindListItem, tableIndex: -1}
		}
		return classification{
			kind:       model.KindHeading,
			level:      c.headingLevel(proxy, ctx),
			tableIndex: -1,
		}
	}

	if strictNumbered || bulleted {
		return classification{kind: model.KindListItem, tableIndex: -1}
	}

	alignTol := stats.MedianHeight * c.config.TableAlignRatio
	if isGrid(block, c.config.MinTableColumns, c.config.MinTableRows, alignTol) {
		idx := ctx.NextTableIndex
		ctx.NextTableIndex++
		return classification{kind: model.KindTableCell, tableIndex: idx}
	}

	return classification{kind: model.KindParagraph, tableIndex: -1}
}

// headingLevel places a proxy on the heading size ladder and returns its
// level. New sizes are inserted in descending order; the ladder persists
// across pages through PageContext so a level-2 heading on page 4 matches
// the level-2 size established on page 1.
func (c *RoleClassifier) headingLevel(proxy float64, ctx *PageContext) int {
	for i, s := range ctx.HeadingSizes {
		if math.Abs(proxy-s) <= s*tierTolerance {
			return minLevel(i+1, c.config.MaxHeadingLevel)
		}
	}

	pos := len(ctx.HeadingSizes)
	for i, s := range ctx.HeadingSizes {
		if proxy > s {
			pos = i
			break
		}
	}
	ctx.HeadingSizes = append(ctx.HeadingSizes, 0)
	copy(ctx.HeadingSizes[pos+1:], ctx.HeadingSizes[pos:])
	ctx.HeadingSizes[pos] = proxy

	return minLevel(pos+1, c.config.MaxHeadingLevel)
}

func minLevel(level, cap int) int {
	if level > cap {
		return cap
	}
	return level
}
