package preprocess

import (
	"image"
	"image/color"
	"sort"
)

// toGrayscale collapses the color channels into a single luminance channel.
// Structural information needed downstream survives the conversion.
func toGrayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// adaptiveThreshold binarizes using a local-neighborhood mean threshold.
// Each pixel is compared against the mean of the surrounding window minus a
// bias, which tolerates uneven lighting and scan artifacts that defeat a
// single global cutoff. Text becomes black (0), background white (255).
func adaptiveThreshold(gray *image.Gray, window, bias int) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	// Summed-area table for O(1) window means
	integral := make([]uint64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum uint64
		for x := 0; x < w; x++ {
			rowSum += uint64(gray.GrayAt(x, y).Y)
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := window / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0 := maxInt(0, x-half)
			y0 := maxInt(0, y-half)
			x1 := minInt(w-1, x+half)
			y1 := minInt(h-1, y+half)

			area := uint64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] -
				integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]
			mean := int(sum / area)

			if int(gray.GrayAt(x, y).Y) < mean-bias {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	return out
}

// medianFilter removes speckle noise without eroding character strokes.
// Each pixel becomes the median of its neighborhood.
func medianFilter(gray *image.Gray, radius int) *image.Gray {
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	size := 2*radius + 1
	windowCap := size * size
	window := make([]uint8, 0, windowCap)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			window = window[:0]
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					window = append(window, gray.GrayAt(nx, ny).Y)
				}
			}
			sort.Slice(window, func(i, j int) bool { return window[i] < window[j] })
			out.SetGray(x, y, color.Gray{Y: window[len(window)/2]})
		}
	}

	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
