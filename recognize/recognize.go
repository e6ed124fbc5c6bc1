// Package recognize wraps an external OCR engine and converts its raw
// output into page-relative Fragments.
//
// The wrapper's only logic is coordinate mapping, discarding empty tokens,
// confidence clamping, and text normalization; all actual recognition is
// delegated to an Engine implementation. The default engine is
// Tesseract via gosseract, compiled in with the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag a stub engine is provided that fails with
// ErrOCRNotEnabled, so the rest of the pipeline stays testable on systems
// without Tesseract installed.
package recognize

import (
	"context"
	"image"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/relayout/model"
)

// Word is a single raw token reported by an OCR engine, in the coordinate
// system of the recognized image.
type Word struct {
	Text       string
	BBox       model.BBox
	Confidence float64
}

// Engine performs text recognition on a single image. Implementations must
// tolerate concurrent Recognize calls; the default engine creates a fresh
// client per call, so this comes for free.
type Engine interface {
	// Recognize returns the words found in the image. lang is a
	// Tesseract-style language hint (e.g. "eng", "eng+deu").
	Recognize(ctx context.Context, img image.Image, lang string) ([]Word, error)

	// Close releases engine resources
	Close() error
}

// Config holds configuration for the recognition wrapper
type Config struct {
	// Language is the recognition language hint (default: "eng")
	Language string
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Language: "eng",
	}
}

// Recognizer converts engine output into clean page-relative fragments
type Recognizer struct {
	engine Engine
	config Config
}

// New creates a recognizer around the given engine with default
// configuration
func New(engine Engine) *Recognizer {
	return &Recognizer{engine: engine, config: DefaultConfig()}
}

// NewWithConfig creates a recognizer with custom configuration
func NewWithConfig(engine Engine, config Config) *Recognizer {
	if config.Language == "" {
		config.Language = "eng"
	}
	return &Recognizer{engine: engine, config: config}
}

// Page recognizes one preprocessed page image and returns its fragments in
// engine order. scale is the factor the preprocessor applied to the page
// (target DPI / source DPI); bounding boxes are divided by it so fragments
// land in the original page-relative coordinate system. Pass 1 (or 0) when
// the page was not resampled.
//
// The engine call runs in its own goroutine: if ctx expires first, Page
// returns a RecognitionError immediately while the dispatched call is left
// to finish on its own. An engine error is likewise wrapped in a
// RecognitionError carrying the page index.
func (r *Recognizer) Page(ctx context.Context, img image.Image, pageIndex int, scale float64) ([]model.Fragment, error) {
	if scale <= 0 {
		scale = 1
	}

	type outcome struct {
		words []Word
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		words, err := r.engine.Recognize(ctx, img, r.config.Language)
		done <- outcome{words: words, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &RecognitionError{Page: pageIndex, Err: ctx.Err()}
	case out := <-done:
		if out.err != nil {
			return nil, &RecognitionError{Page: pageIndex, Err: out.err}
		}
		return r.mapWords(out.words, pageIndex, scale), nil
	}
}

// mapWords converts raw words into fragments: empty tokens are discarded,
// confidence is clamped to [0,1], text is NFC-normalized, and boxes are
// mapped back to page coordinates.
func (r *Recognizer) mapWords(words []Word, pageIndex int, scale float64) []model.Fragment {
	fragments := make([]model.Fragment, 0, len(words))
	for _, w := range words {
		text := norm.NFC.String(w.Text)
		frag := model.Fragment{
			Text: text,
			BBox: model.BBox{
				X:      w.BBox.X / scale,
				Y:      w.BBox.Y / scale,
				Width:  w.BBox.Width / scale,
				Height: w.BBox.Height / scale,
			},
			Confidence: model.ClampConfidence(w.Confidence),
			PageIndex:  pageIndex,
		}
		if frag.IsEmpty() {
			continue
		}
		fragments = append(fragments, frag)
	}
	return fragments
}
