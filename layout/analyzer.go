package layout

import "github.com/tsawler/relayout/model"

// Analyzer runs the full layout analysis for one page: line grouping,
// block grouping, column-aware reading order, and role classification.
type Analyzer struct {
	lines    *LineDetector
	blocks   *BlockDetector
	classify *RoleClassifier
	config   ClassifierConfig
}

// NewAnalyzer creates an analyzer with default configuration throughout
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultLineConfig(), DefaultBlockConfig(), DefaultClassifierConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom detector
// configurations
func NewAnalyzerWithConfig(lineConfig LineConfig, blockConfig BlockConfig, classifierConfig ClassifierConfig) *Analyzer {
	return &Analyzer{
		lines:    NewLineDetectorWithConfig(lineConfig),
		blocks:   NewBlockDetectorWithConfig(blockConfig),
		classify: NewRoleClassifierWithConfig(classifierConfig),
		config:   classifierConfig,
	}
}

// Analyze converts one page's fragments into structural units in reading
// order. ctx carries cross-page classification state; the updated context
// is returned for the next page. A page with zero fragments produces zero
// units, which is not an error.
//
// Blocks never merge across pages: a paragraph split by a page boundary
// yields one unit per page.
func (a *Analyzer) Analyze(fragments []model.Fragment, pageIndex int, pageWidth, pageHeight float64,
	stats DocumentStats, ctx PageContext) ([]model.StructuralUnit, PageContext) {

	if len(fragments) == 0 {
		return nil, ctx
	}

	bands := a.lines.Detect(fragments)
	blocks := a.blocks.Detect(bands)
	blocks = splitColumns(blocks, pageWidth*a.config.ColumnMinGapRatio, a.config.MinColumnBlocks)

	// Content margins for alignment estimation
	contentLeft := blocks[0].BBox.Left()
	contentRight := blocks[0].BBox.Right()
	for _, b := range blocks[1:] {
		if b.BBox.Left() < contentLeft {
			contentLeft = b.BBox.Left()
		}
		if b.BBox.Right() > contentRight {
			contentRight = b.BBox.Right()
		}
	}

	units := make([]model.StructuralUnit, 0, len(blocks))
	for i, block := range blocks {
		alignment := a.classify.estimateAlignment(block, contentLeft, contentRight, pageWidth)
		cls := a.classify.classify(block, pageIndex, i == 0, len(blocks) == 1, alignment, stats, &ctx)

		proxy := blockProxy(block)
		lines := make([][]model.Fragment, len(block.Bands))
		for bi, band := range block.Bands {
			lines[bi] = band.Fragments
		}

		units = append(units, model.StructuralUnit{
			Kind:      cls.kind,
			Level:     cls.level,
			Fragments: block.Fragments(),
			Lines:     lines,
			BBox:      block.BBox,
			Style: model.EstimatedStyle{
				FontSizeProxy: proxy,
				BoldProxy:     stats.MedianHeight > 0 && proxy >= stats.MedianHeight*a.config.BoldRatio,
				Alignment:     alignment,
			},
			PageIndex:  pageIndex,
			TableIndex: cls.tableIndex,
		})
	}

	if len(units) > 0 {
		ctx.LastKind = units[len(units)-1].Kind
	}

	return units, ctx
}
