package imageutil

import (
	"errors"
	"fmt"
	"math"
)

// ErrFlatImage is returned by StretchContrast when every pixel has the same
// value, so there is no range to stretch.
var ErrFlatImage = errors.New("flat image")

// lookup applies a 256-entry table to every pixel of a copy of img.
func lookup(img *GrayImage, lut *[256]uint8) *GrayImage {
	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// StretchContrast linearly rescales img so its darkest pixel becomes 0 and
// its brightest 255: out = round((in - min) * 255 / (max - min)). Pixel
// order is preserved. A flat or empty image is returned unchanged (as a
// copy) together with ErrFlatImage.
func StretchContrast(img *GrayImage) (*GrayImage, error) {
	lo, hi := 255, 0
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			v := int(img.GetGray(x, y))
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	if lo >= hi {
		return img.Clone(), fmt.Errorf("%w: every pixel is %d", ErrFlatImage, lo)
	}

	span := hi - lo
	var lut [256]uint8
	for v := lo; v <= hi; v++ {
		n := (v - lo) * 255
		lut[v] = uint8((2*n + span) / (2 * span))
	}
	return lookup(img, &lut), nil
}

// AdjustContrast changes contrast by c percent (-100 to 100). Values are
// pushed away from or pulled toward mid-gray by the factor
// ((100 + c) / 100)^2 and clamped to 0-255.
func AdjustContrast(img *GrayImage, c float64) *GrayImage {
	factor := math.Pow((100+c)/100, 2)
	var lut [256]uint8
	for v := range lut {
		d := ((float64(v)/255-0.5)*factor + 0.5) * 255
		lut[v] = clamp8(math.Round(d))
	}
	return lookup(img, &lut)
}

// Brighten adds b to every pixel, clamping to 0-255.
func Brighten(img *GrayImage, b int) *GrayImage {
	var lut [256]uint8
	for v := range lut {
		lut[v] = clamp8(float64(v + b))
	}
	return lookup(img, &lut)
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
