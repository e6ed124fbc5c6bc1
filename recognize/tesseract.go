//go:build ocr

package recognize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/relayout/model"
)

// TesseractEngine is the default Engine, backed by the Tesseract OCR
// library via gosseract. A fresh client is created per call; gosseract
// clients are cheap relative to recognition itself and are not safe for
// concurrent use.
type TesseractEngine struct{}

// NewTesseractEngine creates a Tesseract-backed recognition engine.
// Requires Tesseract to be installed on the system.
func NewTesseractEngine() (*TesseractEngine, error) {
	return &TesseractEngine{}, nil
}

// Recognize performs word-level OCR on the image
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image, lang string) ([]Word, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			return nil, fmt.Errorf("set language: %w", err)
		}
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("get bounding boxes: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, Word{
			Text: b.Word,
			BBox: model.BBox{
				X:      float64(b.Box.Min.X),
				Y:      float64(b.Box.Min.Y),
				Width:  float64(b.Box.Dx()),
				Height: float64(b.Box.Dy()),
			},
			Confidence: b.Confidence / 100.0,
		})
	}

	return words, nil
}

// Close releases engine resources. Clients are per-call, so this is a
// no-op.
func (e *TesseractEngine) Close() error {
	return nil
}
