// Package relayout reconstructs editable, structured documents from scanned
// page images. The pipeline preprocesses each page, recognizes text through
// an OCR engine, reassembles the recognized words into titled, headed, and
// listed sections, and reports per-section recognition confidence.
//
// Basic usage:
//
//	result, err := relayout.FromImages(pageOne, pageTwo).
//	    SourceDPI(200).
//	    Run(context.Background())
//	if err != nil {
//	    // handle error
//	}
//	for _, s := range result.Sections {
//	    fmt.Println(s.Type, s.Content)
//	}
//
// With a custom recognition engine and configuration:
//
//	result, err := relayout.FromImages(images...).
//	    WithEngine(engine).
//	    Language("eng+deu").
//	    Workers(4).
//	    PageTimeout(45 * time.Second).
//	    Run(ctx)
//
// The default engine is Tesseract, available when the module is built with
// the "ocr" tag. Each configuration method returns a new Processor, so a
// configured chain is safe to share and reuse.
package relayout

import (
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/relayout/recognize"
)

// FromImages creates a Processor over a document's page images, in page
// order.
func FromImages(images ...image.Image) *Processor {
	return &Processor{
		images:  images,
		logger:  zap.NewNop(),
		options: defaultProcessOptions(),
	}
}

// Processor provides a fluent interface for configuring and running the
// reconstruction pipeline. Each configuration method returns a new
// Processor instance, making chains immutable and safe for concurrent use.
type Processor struct {
	images []image.Image
	engine recognize.Engine
	logger *zap.Logger

	options processOptions

	// Accumulated configuration error (fail-fast at Run)
	err error
}

// clone creates a shallow copy of the Processor with a deep copy of
// options.
func (p *Processor) clone() *Processor {
	return &Processor{
		images:  p.images,
		engine:  p.engine,
		logger:  p.logger,
		options: p.options.clone(),
		err:     p.err,
	}
}

// WithEngine sets the OCR engine. Without it, Run uses the built-in
// Tesseract engine, which requires building with the "ocr" tag.
func (p *Processor) WithEngine(engine recognize.Engine) *Processor {
	c := p.clone()
	c.engine = engine
	return c
}

// WithLogger sets the structured logger. The default discards all output.
func (p *Processor) WithLogger(logger *zap.Logger) *Processor {
	c := p.clone()
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	return c
}

// SourceDPI declares the resolution of the input images so pages can be
// resampled to the recognition resolution. Zero (the default) means
// unknown, which skips resampling.
func (p *Processor) SourceDPI(dpi int) *Processor {
	c := p.clone()
	c.options.sourceDPI = dpi
	return c
}

// Language sets the recognition language hint (Tesseract syntax, e.g.
// "eng" or "eng+deu").
func (p *Processor) Language(lang string) *Processor {
	c := p.clone()
	c.options.language = lang
	return c
}

// Workers bounds the page-level worker pool. Zero (the default) sizes the
// pool to the available CPUs.
func (p *Processor) Workers(n int) *Processor {
	c := p.clone()
	c.options.workers = n
	return c
}

// PageTimeout bounds each page's recognition call. A page that times out
// is retried once at reduced resolution before being marked failed.
func (p *Processor) PageTimeout(d time.Duration) *Processor {
	c := p.clone()
	c.options.pageTimeout = d
	return c
}

// LowConfidenceThreshold sets the mean confidence below which a section is
// flagged for review.
func (p *Processor) LowConfidenceThreshold(threshold float64) *Processor {
	c := p.clone()
	c.options.lowConfidenceThreshold = threshold
	return c
}
