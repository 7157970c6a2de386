package img2ascii

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// LineSeparator joins ArtGrid rows in the text serialization.
const LineSeparator = "\n"

// ArtGrid is a row-major grid of glyph bytes, one per raster pixel.
type ArtGrid [][]byte

// NewArtGrid allocates an empty grid.
func NewArtGrid(width, height int) ArtGrid {
	art := make(ArtGrid, height)
	for y := range art {
		art[y] = make([]byte, width)
	}
	return art
}

// Width returns the number of glyphs per row.
func (a ArtGrid) Width() int {
	if len(a) == 0 {
		return 0
	}
	return len(a[0])
}

// Height returns the number of rows.
func (a ArtGrid) Height() int {
	return len(a)
}

// String serializes the grid, see Serialize.
func (a ArtGrid) String() string {
	return Serialize(a)
}

// Convert maps every pixel of img through the ramp.
func Convert(ramp *Ramp, img *imageutil.GrayImage) ArtGrid {
	art := NewArtGrid(img.Width(), img.Height())
	for y, row := range art {
		for x := range row {
			row[x] = ramp[img.GetGray(x, y)]
		}
	}
	return art
}

// ConvertWithDither dithers a copy of img against the quantizer's table and
// maps each resulting intensity to its glyph. A nil ditherer uses
// Floyd-Steinberg.
func ConvertWithDither(q *Quantizer, img *imageutil.GrayImage, d *Ditherer) (ArtGrid, error) {
	if d == nil {
		d = &Ditherer{}
	}
	dithered := d.Dither(img, q)

	art := NewArtGrid(dithered.Width(), dithered.Height())
	for y, row := range art {
		for x := range row {
			id, err := q.Glyph(dithered.GetGray(x, y))
			if err != nil {
				return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
			}
			row[x] = id
		}
	}
	return art, nil
}

// Serialize joins the rows with LineSeparator, each row written as its raw
// glyph bytes.
func Serialize(art ArtGrid) string {
	var sb strings.Builder
	for y, row := range art {
		if y > 0 {
			sb.WriteString(LineSeparator)
		}
		sb.Write(row)
	}
	return sb.String()
}

// ParseArt splits serialized art back into rows. Empty text gives an empty
// grid.
func ParseArt(text string) ArtGrid {
	if text == "" {
		return ArtGrid{}
	}
	return ArtGrid(bytes.Split([]byte(text), []byte(LineSeparator)))
}
