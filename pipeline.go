package relayout

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/relayout/confidence"
	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/model"
	"github.com/tsawler/relayout/preprocess"
	"github.com/tsawler/relayout/recognize"
	"github.com/tsawler/relayout/sections"
)

// pageOutcome is one page's contribution after preprocessing and
// recognition, produced independently by a pool worker.
type pageOutcome struct {
	fragments []model.Fragment
	status    model.PageStatus
	width     float64
	height    float64
}

// Run executes the pipeline: pages are preprocessed and recognized by a
// bounded worker pool, then layout analysis and aggregation run
// sequentially in page order.
//
// No page error aborts the document; failed pages contribute zero sections
// and are reported in the metadata's page statuses. Cancelling ctx stops
// submission of further pages while dispatched pages finish or time out
// naturally; Run then returns the partial result together with the context
// error.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	if p.err != nil {
		return nil, p.err
	}

	engine := p.engine
	if engine == nil {
		te, err := recognize.NewTesseractEngine()
		if err != nil {
			return nil, fmt.Errorf("no recognition engine: %w", err)
		}
		engine = te
		defer engine.Close()
	}

	documentID := uuid.New()
	logger := p.logger.With(zap.String("document_id", documentID.String()))
	logger.Info("processing document", zap.Int("pages", len(p.images)))

	outcomes, submitErr := p.recognizePages(ctx, engine, logger)

	result := p.aggregate(documentID, outcomes)
	logger.Info("document processed",
		zap.Int("sections", len(result.Sections)),
		zap.Float64("average_confidence", result.Metadata.AverageConfidence))
	return result, submitErr
}

// recognizePages runs preprocessing and recognition for every page through
// a bounded worker pool. The returned slice is indexed by page; the error
// is non-nil only when ctx was cancelled before all pages were submitted.
func (p *Processor) recognizePages(ctx context.Context, engine recognize.Engine, logger *zap.Logger) ([]pageOutcome, error) {
	outcomes := make([]pageOutcome, len(p.images))
	if len(p.images) == 0 {
		return outcomes, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.options.poolSize(len(p.images)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = p.processPage(engine, idx, logger)
			}
		}()
	}

	var submitErr error
	submitted := make([]bool, len(p.images))
submit:
	for i := range p.images {
		if err := ctx.Err(); err != nil {
			submitErr = err
			break
		}
		select {
		case <-ctx.Done():
			submitErr = ctx.Err()
			break submit
		case jobs <- i:
			submitted[i] = true
		}
	}
	close(jobs)
	wg.Wait()

	for i, ok := range submitted {
		if !ok {
			outcomes[i] = pageOutcome{status: model.PageStatus{
				PageIndex: i,
				State:     model.PageLowConfidence,
				Error:     fmt.Sprintf("not processed: %v", submitErr),
			}}
		}
	}
	return outcomes, submitErr
}

// processPage prepares and recognizes one page. Recognition failures get a
// single retry at reduced resolution before the page is marked failed with
// zero fragments.
func (p *Processor) processPage(engine recognize.Engine, idx int, logger *zap.Logger) pageOutcome {
	img := p.images[idx]

	out := pageOutcome{status: model.PageStatus{PageIndex: idx}}
	if img != nil {
		bounds := img.Bounds()
		out.width = float64(bounds.Dx())
		out.height = float64(bounds.Dy())
	}

	pre := preprocess.NewWithConfig(p.options.preprocess)
	prepared, ops, err := pre.Run(img, p.options.sourceDPI)
	out.status.Operations = ops
	if err != nil {
		logger.Warn("page unprocessable", zap.Int("page", idx), zap.Error(err))
		out.status.State = model.PageUnprocessable
		out.status.Error = err.Error()
		return out
	}

	recognizer := recognize.NewWithConfig(engine, recognize.Config{Language: p.options.language})
	fragments, err := p.recognizeOnce(recognizer, prepared, idx, p.options.preprocess.TargetDPI)
	if err != nil {
		retryCfg := p.options.retryConfig()
		logger.Warn("recognition failed, retrying at reduced resolution",
			zap.Int("page", idx), zap.Int("retry_dpi", retryCfg.TargetDPI), zap.Error(err))

		prepared, retryOps, preErr := preprocess.NewWithConfig(retryCfg).Run(img, p.options.sourceDPI)
		if preErr == nil {
			out.status.Operations = append(out.status.Operations,
				fmt.Sprintf("retry_dpi_%d", retryCfg.TargetDPI))
			out.status.Operations = append(out.status.Operations, retryOps...)
			fragments, err = p.recognizeOnce(recognizer, prepared, idx, retryCfg.TargetDPI)
		}
		if err != nil {
			logger.Warn("page failed after retry", zap.Int("page", idx), zap.Error(err))
			out.status.State = model.PageLowConfidence
			out.status.Error = err.Error()
			return out
		}
	}

	out.fragments = fragments
	out.status.FragmentCount = len(fragments)
	if len(fragments) == 0 {
		out.status.State = model.PageEmpty
	} else {
		out.status.State = model.PageOK
	}
	logger.Debug("page recognized",
		zap.Int("page", idx),
		zap.Int("fragments", len(fragments)),
		zap.Strings("operations", out.status.Operations))
	return out
}

// recognizeOnce runs one recognition attempt under the per-page timeout.
// The timeout context is detached from the document context so an
// in-flight page finishes naturally after cancellation.
func (p *Processor) recognizeOnce(recognizer *recognize.Recognizer, img image.Image, idx, targetDPI int) ([]model.Fragment, error) {
	scale := 1.0
	if p.options.sourceDPI > 0 && p.options.sourceDPI != targetDPI {
		scale = float64(targetDPI) / float64(p.options.sourceDPI)
	}

	pageCtx, cancel := context.WithTimeout(context.Background(), p.options.pageTimeout)
	defer cancel()
	return recognizer.Page(pageCtx, img, idx, scale)
}

// aggregate runs the sequential tail of the pipeline: layout analysis in
// page order, section building, style catalog inference, and confidence
// reporting.
func (p *Processor) aggregate(documentID uuid.UUID, outcomes []pageOutcome) *Result {
	var allFragments []model.Fragment
	for _, o := range outcomes {
		allFragments = append(allFragments, o.fragments...)
	}
	stats := layout.ComputeStats(allFragments)

	analyzer := layout.NewAnalyzerWithConfig(p.options.line, p.options.block, p.options.classifier)
	builder := sections.NewBuilderWithConfig(p.options.builder)

	var (
		allUnits    []model.StructuralUnit
		allSections []model.ContentSection
		statuses    = make([]model.PageStatus, len(outcomes))
		pageCtx     layout.PageContext
		nextID      int
	)
	for i, o := range outcomes {
		statuses[i] = o.status

		var units []model.StructuralUnit
		units, pageCtx = analyzer.Analyze(o.fragments, i, o.width, o.height, stats, pageCtx)
		allUnits = append(allUnits, units...)

		var built []model.ContentSection
		built, nextID = builder.Build(units, nextID)
		allSections = append(allSections, built...)
	}

	reporter := confidence.NewReporterWithConfig(confidence.Config{
		LowConfidenceThreshold: p.options.lowConfidenceThreshold,
	})

	return &Result{
		DocumentID:   documentID,
		Sections:     allSections,
		StyleCatalog: sections.BuildCatalog(allUnits),
		Metadata:     reporter.Report(documentID, allFragments, allSections, statuses),
	}
}
