package relayout

import (
	"runtime"
	"time"

	"github.com/tsawler/relayout/confidence"
	"github.com/tsawler/relayout/layout"
	"github.com/tsawler/relayout/preprocess"
	"github.com/tsawler/relayout/sections"
)

// processOptions holds the pipeline configuration behind a Processor chain
type processOptions struct {
	// Input properties
	sourceDPI int
	language  string

	// Concurrency
	workers     int
	pageTimeout time.Duration

	// Failed-page retry: the preprocessing target DPI is halved for the
	// retry, never below retryMinDPI
	retryMinDPI int

	// Stage configuration
	preprocess             preprocess.Config
	line                   layout.LineConfig
	block                  layout.BlockConfig
	classifier             layout.ClassifierConfig
	builder                sections.Config
	lowConfidenceThreshold float64
}

// defaultProcessOptions returns the default pipeline configuration
func defaultProcessOptions() processOptions {
	return processOptions{
		sourceDPI:              0, // unknown, skip resampling
		language:               "eng",
		workers:                0, // sized to available CPUs
		pageTimeout:            30 * time.Second,
		retryMinDPI:            150,
		preprocess:             preprocess.DefaultConfig(),
		line:                   layout.DefaultLineConfig(),
		block:                  layout.DefaultBlockConfig(),
		classifier:             layout.DefaultClassifierConfig(),
		builder:                sections.DefaultConfig(),
		lowConfidenceThreshold: confidence.DefaultConfig().LowConfidenceThreshold,
	}
}

// clone creates a copy of processOptions. All fields are values, so the
// copy is already deep.
func (o processOptions) clone() processOptions {
	return o
}

// poolSize resolves the effective worker count for a page count
func (o processOptions) poolSize(pages int) int {
	workers := o.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > pages {
		workers = pages
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// retryConfig derives the reduced-resolution preprocessing configuration
// used for a page's single retry after a recognition failure.
func (o processOptions) retryConfig() preprocess.Config {
	cfg := o.preprocess
	cfg.TargetDPI = cfg.TargetDPI / 2
	if cfg.TargetDPI < o.retryMinDPI {
		cfg.TargetDPI = o.retryMinDPI
	}
	return cfg
}

// PreprocessConfig replaces the preprocessing configuration
func (p *Processor) PreprocessConfig(cfg preprocess.Config) *Processor {
	c := p.clone()
	c.options.preprocess = cfg
	return c
}

// LayoutConfig replaces the layout analysis configuration
func (p *Processor) LayoutConfig(line layout.LineConfig, block layout.BlockConfig, classifier layout.ClassifierConfig) *Processor {
	c := p.clone()
	c.options.line = line
	c.options.block = block
	c.options.classifier = classifier
	return c
}

// SectionConfig replaces the section building configuration
func (p *Processor) SectionConfig(cfg sections.Config) *Processor {
	c := p.clone()
	c.options.builder = cfg
	return c
}
