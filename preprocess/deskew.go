package preprocess

import (
	"image"
	"image/color"
	"math"
)

// maxSkewSamples caps the number of text pixels fed into the angle search
// so deskew cost stays bounded on large pages.
const maxSkewSamples = 20000

// estimateSkew estimates the dominant text-line angle in degrees using a
// projection profile search: for each candidate angle, text pixels are
// projected onto sheared horizontal rows and the variance of the row
// occupancy is scored. Straight text lines concentrate pixels into few rows,
// maximizing variance. Positive angles mean lines slope downward left to
// right in raster coordinates.
func estimateSkew(gray *image.Gray, maxAngle, step float64) float64 {
	if maxAngle <= 0 || step <= 0 {
		return 0
	}

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	// Collect dark (text) pixel coordinates, sampled on a stride grid
	stride := 1
	if w*h > maxSkewSamples*4 {
		stride = int(math.Sqrt(float64(w*h) / float64(maxSkewSamples*4)))
		if stride < 1 {
			stride = 1
		}
	}

	type pixel struct{ x, y int }
	var pixels []pixel
	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			if gray.GrayAt(x, y).Y < 128 {
				pixels = append(pixels, pixel{x, y})
				if len(pixels) >= maxSkewSamples {
					break
				}
			}
		}
		if len(pixels) >= maxSkewSamples {
			break
		}
	}

	// Too few text pixels to estimate anything
	if len(pixels) < 50 {
		return 0
	}

	bins := make([]int, h+1)
	bestAngle := 0.0
	bestScore := -1.0

	for angle := -maxAngle; angle <= maxAngle+1e-9; angle += step {
		tan := math.Tan(angle * math.Pi / 180)

		for i := range bins {
			bins[i] = 0
		}
		for _, p := range pixels {
			row := p.y - int(float64(p.x)*tan)
			if row < 0 {
				row = 0
			}
			if row >= len(bins) {
				row = len(bins) - 1
			}
			bins[row]++
		}

		score := binVariance(bins, len(pixels))
		if score > bestScore {
			bestScore = score
			bestAngle = angle
		}
	}

	return bestAngle
}

// binVariance computes the variance of row occupancy counts
func binVariance(bins []int, total int) float64 {
	mean := float64(total) / float64(len(bins))
	variance := 0.0
	for _, count := range bins {
		d := float64(count) - mean
		variance += d * d
	}
	return variance / float64(len(bins))
}

// rotate rotates the image by the given angle in degrees about its center,
// expanding the canvas to fit and filling exposed corners with white.
// Nearest-neighbor sampling keeps binarized strokes crisp.
func rotate(gray *image.Gray, angle float64) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	absSin, absCos := math.Abs(sin), math.Abs(cos)

	newW := int(math.Ceil(float64(w)*absCos + float64(h)*absSin))
	newH := int(math.Ceil(float64(w)*absSin + float64(h)*absCos))

	out := image.NewGray(image.Rect(0, 0, newW, newH))

	cx, cy := float64(w)/2, float64(h)/2
	ncx, ncy := float64(newW)/2, float64(newH)/2

	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			// Inverse mapping into the source image
			dx := float64(x) - ncx
			dy := float64(y) - ncy
			sx := int(math.Round(dx*cos + dy*sin + cx))
			sy := int(math.Round(-dx*sin + dy*cos + cy))

			if sx >= 0 && sx < w && sy >= 0 && sy < h {
				out.SetGray(x, y, gray.GrayAt(sx, sy))
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return out
}
