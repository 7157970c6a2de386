package img2ascii

import (
	"errors"
	"fmt"
)

var (
	// ErrFontNotFound is returned when a font name is not in the catalog.
	ErrFontNotFound = errors.New("font not found")

	// ErrEmptyCharset is returned when the chosen characters exclude every
	// glyph of the font.
	ErrEmptyCharset = errors.New("chosen characters exclude all glyphs")

	// ErrDegenerateIntensityRange is returned when fewer than two distinct
	// intensities survive filtering and deduplication, so the intensity
	// axis cannot be stretched to 0-255.
	ErrDegenerateIntensityRange = errors.New("degenerate intensity range")

	// ErrCharMissingForIntensity signals that a quantized intensity has no
	// glyph in the intensity-to-glyph map. It indicates the quantization
	// table and the char map were not built from the same GlyphTable.
	ErrCharMissingForIntensity = errors.New("no glyph for quantized intensity")

	// ErrDimensionMismatch is returned when two rasters that must line up
	// cell for cell have different sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// CatalogParseError reports malformed font catalog data. Source names the
// embedded file or path that failed to parse.
type CatalogParseError struct {
	Source string
	Err    error
}

func (e *CatalogParseError) Error() string {
	return fmt.Sprintf("parse font catalog %s: %v", e.Source, e.Err)
}

func (e *CatalogParseError) Unwrap() error {
	return e.Err
}
