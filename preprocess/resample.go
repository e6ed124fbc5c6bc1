package preprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// resample scales the image by the given factor. Upsampling uses
// Catmull-Rom interpolation; downsampling uses bilinear averaging to avoid
// aliasing thin strokes. Recognition accuracy is DPI-sensitive, so pages
// are brought to a common resolution before the engine sees them.
func resample(gray *image.Gray, scale float64) *image.Gray {
	if scale <= 0 || scale == 1 {
		return gray
	}

	bounds := gray.Bounds()
	newW := int(float64(bounds.Dx()) * scale)
	newH := int(float64(bounds.Dy()) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	out := image.NewGray(image.Rect(0, 0, newW, newH))

	var scaler draw.Scaler
	if scale > 1 {
		scaler = draw.CatmullRom
	} else {
		scaler = draw.BiLinear
	}
	scaler.Scale(out, out.Bounds(), gray, bounds, draw.Src, nil)

	return out
}
