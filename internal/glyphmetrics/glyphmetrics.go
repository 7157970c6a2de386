// Package glyphmetrics measures how much ink the printable ASCII glyphs of
// a font face put into their character cell.
//
// A glyph is rasterized into a cell one advance wide and ascent+descent
// tall, dark ink on light paper. Intensity is 255*(1-coverage) so a blank
// cell is 255. Deviation is 255 times the standard deviation of the ink
// coverage of the cell's four quadrants: 0 for evenly spread ink, larger
// for glyphs whose ink bunches up in one corner.
package glyphmetrics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/wbrown/img2ascii"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyCell is returned for faces whose cell has no area.
var ErrEmptyCell = errors.New("glyph cell has no area")

// Cell returns the character cell of a monospaced face: the advance of
// 'M' by ascent plus descent, and the ascent, which is the baseline
// offset from the top.
func Cell(face font.Face) (width, height, ascent int, err error) {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return 0, 0, 0, fmt.Errorf("face has no 'M' glyph")
	}
	m := face.Metrics()
	width = adv.Round()
	ascent = m.Ascent.Round()
	height = ascent + m.Descent.Round()
	if width < 2 || height < 2 {
		return 0, 0, 0, fmt.Errorf("%w: %dx%d", ErrEmptyCell, width, height)
	}
	return width, height, ascent, nil
}

// Rasterize draws r into a width x height coverage mask with the baseline
// at ascent. Ink outside the cell is clipped. A rune the face lacks gives
// an empty mask.
func Rasterize(face font.Face, r rune, width, height, ascent int) *image.Alpha {
	cell := image.NewAlpha(image.Rect(0, 0, width, height))
	dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), r)
	if !ok || mask == nil {
		return cell
	}
	draw.DrawMask(cell, dr, image.Opaque, image.Point{}, mask, maskp, draw.Src)
	return cell
}

// round is round half up.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// coverage returns the mean ink of the rectangle [x0,x1) x [y0,y1) in 0-1.
func coverage(cell *image.Alpha, x0, x1, y0, y1 int) float64 {
	sum := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += int(cell.AlphaAt(x, y).A)
		}
	}
	return float64(sum) / (float64((x1-x0)*(y1-y0)) * 255.0)
}

// Glyph returns the intensity and deviation of one rasterized cell.
func Glyph(cell *image.Alpha) (intensity, deviation uint8) {
	w, h := cell.Bounds().Dx(), cell.Bounds().Dy()
	intensity = uint8(round(255 * (1 - coverage(cell, 0, w, 0, h))))

	hw, hh := w/2, h/2
	quads := [4]float64{
		coverage(cell, 0, hw, 0, hh),
		coverage(cell, hw, w, 0, hh),
		coverage(cell, 0, hw, hh, h),
		coverage(cell, hw, w, hh, h),
	}
	var mean float64
	for _, q := range quads {
		mean += q
	}
	mean /= 4
	var variance float64
	for _, q := range quads {
		variance += (q - mean) * (q - mean)
	}
	variance /= 4
	deviation = uint8(min(255, round(255*math.Sqrt(variance))))
	return intensity, deviation
}

// Measure measures every printable ASCII glyph of face.
func Measure(name string, face font.Face) (img2ascii.Font, error) {
	width, height, ascent, err := Cell(face)
	if err != nil {
		return img2ascii.Font{}, fmt.Errorf("measure %s: %w", name, err)
	}

	f := img2ascii.Font{Name: name}
	for i := 0; i < img2ascii.GlyphCount; i++ {
		cell := Rasterize(face, rune(img2ascii.FirstGlyph+i), width, height, ascent)
		f.Intensity[i], f.Deviation[i] = Glyph(cell)
	}
	return f, nil
}
