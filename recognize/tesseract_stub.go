//go:build !ocr

package recognize

import (
	"context"
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when Tesseract recognition is requested but
// OCR support was not compiled in. Rebuild with -tags ocr to enable it.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// TesseractEngine is the stub engine used when the "ocr" build tag is not
// set. All operations fail with ErrOCRNotEnabled.
type TesseractEngine struct{}

// NewTesseractEngine returns an error indicating OCR support is not
// enabled. To enable it, rebuild with: go build -tags ocr
func NewTesseractEngine() (*TesseractEngine, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns an error indicating OCR support is not enabled
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, lang string) ([]Word, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub engine. It is safe to call on a nil
// engine.
func (e *TesseractEngine) Close() error {
	return nil
}
