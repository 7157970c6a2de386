package imageutil

import "errors"

// PrepareOptions controls PrepareForASCII.
type PrepareOptions struct {
	// Columns is the output width in character cells. Zero keeps the
	// source width, giving ceil(w/CellWidth) columns.
	Columns int

	// CellWidth and CellHeight are the block size in source pixels.
	// Zero selects the package defaults.
	CellWidth  int
	CellHeight int

	Luma Luma

	// Contrast in percent (-100 to 100) and Brightness (-255 to 255) are
	// applied to the full-resolution luminance before block pooling.
	Contrast   float64
	Brightness int

	// Stretch rescales the pooled raster to the full 0-255 range.
	Stretch bool

	// Invert flips the pooled raster for light-on-dark output.
	Invert bool

	// KeepColor also pools the RGB source for a true-color overlay.
	KeepColor bool
}

// Prepared is a raster ready for glyph lookup: one pixel per character
// cell.
type Prepared struct {
	Gray *GrayImage

	// Color has Gray's dimensions, nil unless KeepColor was set.
	Color *RGBAImage

	// Flat reports that the stretch step was skipped because every pooled
	// pixel had the same value.
	Flat bool
}

// PrepareForASCII prepares an image for conversion to ASCII art.
//
// The function:
// 1. Resizes the source to Columns*CellWidth pixels wide, keeping the aspect ratio
// 2. Converts it to luminance and applies contrast and brightness
// 3. Averages CellWidth x CellHeight blocks down to one pixel per cell
// 4. Stretches the pooled raster to 0-255 and optionally inverts it
func PrepareForASCII(img *RGBAImage, opts PrepareOptions) *Prepared {
	if opts.CellWidth <= 0 {
		opts.CellWidth = CellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = CellHeight
	}

	src := img
	if opts.Columns > 0 {
		src = ResizeToWidth(img, opts.Columns*opts.CellWidth)
	}

	gray := opts.Luma.Convert(src)
	if opts.Contrast != 0 {
		gray = AdjustContrast(gray, opts.Contrast)
	}
	if opts.Brightness != 0 {
		gray = Brighten(gray, opts.Brightness)
	}

	p := &Prepared{Gray: Downsample(gray, opts.CellWidth, opts.CellHeight)}
	if opts.KeepColor {
		p.Color = DownsampleRGB(src, opts.CellWidth, opts.CellHeight)
	}

	if opts.Stretch {
		stretched, err := StretchContrast(p.Gray)
		p.Flat = errors.Is(err, ErrFlatImage)
		p.Gray = stretched
	}
	if opts.Invert {
		p.Gray = Invert(p.Gray)
	}
	return p
}
