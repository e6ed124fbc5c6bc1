// Package preprocess normalizes raw scanned page images for text
// recognition. The pipeline applies, in order: grayscale conversion,
// adaptive thresholding, noise removal, deskew, and resolution
// normalization. Each step is a pure transform; a corrupt or zero-size
// input fails the whole page with ErrUnprocessable so callers can skip it
// and continue with the remaining pages.
package preprocess

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrUnprocessable is returned when an input image is corrupt or zero-size
// and cannot be prepared for recognition.
var ErrUnprocessable = errors.New("image is unprocessable")

// Config holds configuration for the preprocessing pipeline. Recognition
// accuracy is corpus-dependent, so every threshold is tunable.
type Config struct {
	// TargetDPI is the resolution pages are normalized to before
	// recognition (default: 300)
	TargetDPI int

	// ThresholdWindow is the side length in pixels of the local
	// neighborhood used for adaptive thresholding; must be odd
	// (default: 15)
	ThresholdWindow int

	// ThresholdBias is subtracted from the local mean before comparing;
	// higher values push more pixels to white (default: 8)
	ThresholdBias int

	// MedianRadius is the radius of the median filter used for speckle
	// removal; 0 disables denoising (default: 1, a 3x3 window)
	MedianRadius int

	// DeskewMaxAngle bounds the skew angle search in degrees
	// (default: 5.0)
	DeskewMaxAngle float64

	// DeskewStep is the angle search granularity in degrees
	// (default: 0.25)
	DeskewStep float64

	// DeskewNoiseFloor is the minimum estimated skew in degrees worth
	// correcting; smaller estimates are skipped to avoid introducing
	// interpolation blur (default: 0.1)
	DeskewNoiseFloor float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		TargetDPI:        300,
		ThresholdWindow:  15,
		ThresholdBias:    8,
		MedianRadius:     1,
		DeskewMaxAngle:   5.0,
		DeskewStep:       0.25,
		DeskewNoiseFloor: 0.1,
	}
}

// Preprocessor runs the normalization pipeline over single page images
type Preprocessor struct {
	config Config
}

// New creates a preprocessor with default configuration
func New() *Preprocessor {
	return &Preprocessor{config: DefaultConfig()}
}

// NewWithConfig creates a preprocessor with custom configuration
func NewWithConfig(config Config) *Preprocessor {
	if config.ThresholdWindow%2 == 0 {
		config.ThresholdWindow++
	}
	return &Preprocessor{config: config}
}

// Config returns the preprocessor's configuration
func (p *Preprocessor) Config() Config {
	return p.config
}

// Run applies the full pipeline to one page image. sourceDPI is the
// resolution of the input; pass 0 when unknown to skip resampling. Returns
// the normalized image and the ordered list of applied operations.
func (p *Preprocessor) Run(img image.Image, sourceDPI int) (*image.Gray, []string, error) {
	if img == nil {
		return nil, nil, fmt.Errorf("nil image: %w", ErrUnprocessable)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, nil, fmt.Errorf("zero-size image %dx%d: %w",
			bounds.Dx(), bounds.Dy(), ErrUnprocessable)
	}

	var ops []string

	gray := toGrayscale(img)
	ops = append(ops, "grayscale")

	gray = adaptiveThreshold(gray, p.config.ThresholdWindow, p.config.ThresholdBias)
	ops = append(ops, "threshold")

	if p.config.MedianRadius > 0 {
		gray = medianFilter(gray, p.config.MedianRadius)
		ops = append(ops, "denoise")
	}

	angle := estimateSkew(gray, p.config.DeskewMaxAngle, p.config.DeskewStep)
	if math.Abs(angle) >= p.config.DeskewNoiseFloor {
		gray = rotate(gray, -angle)
		ops = append(ops, fmt.Sprintf("deskew_%.2fdeg", angle))
	}

	if sourceDPI > 0 && sourceDPI != p.config.TargetDPI {
		scale := float64(p.config.TargetDPI) / float64(sourceDPI)
		gray = resample(gray, scale)
		ops = append(ops, fmt.Sprintf("resample_%.2fx", scale))
	}

	return gray, ops, nil
}
