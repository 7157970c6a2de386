package imageutil

import (
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality scaling.
	// This is the closest equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeToWidth resizes an image to the specified width while keeping the
// aspect ratio: height = width * h / w, at least one pixel. Enlarging uses
// Catmull-Rom, shrinking uses bilinear filtering.
func ResizeToWidth(img *RGBAImage, width int) *RGBAImage {
	if img.Width() == 0 || img.Height() == 0 {
		return NewRGBAImage(0, 0)
	}
	height := width * img.Height() / img.Width()
	if height < 1 {
		height = 1
	}
	interp := InterpolationLinear
	if width > img.Width() {
		interp = InterpolationArea
	}
	return Resize(img, width, height, interp)
}

