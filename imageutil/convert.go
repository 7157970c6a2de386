package imageutil

import (
	"fmt"
	"image/color"
)

// Luma selects the weights used to collapse RGB to luminance.
type Luma int

const (
	// LumaRec709 uses Y = 0.2126*R + 0.7152*G + 0.0722*B.
	LumaRec709 Luma = iota

	// LumaBT601 uses Y = 0.299*R + 0.587*G + 0.114*B, as OpenCV's
	// COLOR_BGR2GRAY does.
	LumaBT601
)

// ParseLuma parses "rec709" or "bt601".
func ParseLuma(s string) (Luma, error) {
	switch s {
	case "rec709", "":
		return LumaRec709, nil
	case "bt601":
		return LumaBT601, nil
	default:
		return 0, fmt.Errorf("unknown luma weights %q", s)
	}
}

func (l Luma) String() string {
	if l == LumaBT601 {
		return "bt601"
	}
	return "rec709"
}

// Convert converts img to grayscale with these weights.
func (l Luma) Convert(img *RGBAImage) *GrayImage {
	if l == LumaBT601 {
		return ToGrayscale(img)
	}
	return ToLuminance(img)
}

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This matches the BT.601 standard used by OpenCV's COLOR_BGR2GRAY.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			// Integer math, scaled by 1000
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// ToLuminance converts an RGBA image to grayscale with the Rec.709 linear
// luminance weights, rounded to the nearest integer.
func ToLuminance(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			lum := (2126*int(c.R) + 7152*int(c.G) + 722*int(c.B) + 5000) / 10000
			if lum > 255 {
				lum = 255
			}
			gray.Gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray
}

// Invert returns a copy with every value replaced by 255 - v.
func Invert(img *GrayImage) *GrayImage {
	out := img.Clone()
	for i, v := range out.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}
