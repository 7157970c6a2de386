package img2ascii

import (
	"fmt"
	"io"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	ESC = "\u001b"

	// Reset restores the terminal's default colours. ColorGrid output never
	// contains it; callers append it where they need it.
	Reset = ESC + "[0m"
)

// ColorCell is a glyph tagged with a 24-bit foreground colour.
type ColorCell struct {
	Glyph byte
	Color imageutil.RGB
}

// String renders the cell as ESC[38;2;R;G;Bm followed by the glyph.
func (c ColorCell) String() string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm%c", ESC, c.Color.R, c.Color.G, c.Color.B, c.Glyph)
}

// ColorGrid is an ArtGrid with a colour per cell.
type ColorGrid [][]ColorCell

// OverlayTrueColor pairs every glyph with the co-located pixel of rgb. The
// raster must have the grid's dimensions.
//
// No reset sequence follows a cell; each cell's escape overrides the
// previous one. Whether a reset per cell is wanted has not been decided, so
// the behaviour is kept as is.
func OverlayTrueColor(art ArtGrid, rgb *imageutil.RGBAImage) (ColorGrid, error) {
	if rgb.Width() != art.Width() || rgb.Height() != art.Height() {
		return nil, fmt.Errorf("%w: art %dx%d, color raster %dx%d", ErrDimensionMismatch,
			art.Width(), art.Height(), rgb.Width(), rgb.Height())
	}
	grid := make(ColorGrid, len(art))
	for y, row := range art {
		grid[y] = make([]ColorCell, len(row))
		for x, id := range row {
			grid[y][x] = ColorCell{Glyph: id, Color: rgb.GetRGB(x, y)}
		}
	}
	return grid, nil
}

// Art strips the colours.
func (g ColorGrid) Art() ArtGrid {
	art := make(ArtGrid, len(g))
	for y, row := range g {
		art[y] = make([]byte, len(row))
		for x, c := range row {
			art[y][x] = c.Glyph
		}
	}
	return art
}

// String renders every cell with its own escape, rows joined by
// LineSeparator.
func (g ColorGrid) String() string {
	var sb strings.Builder
	_, _ = g.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the same text as String.
func (g ColorGrid) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for y, row := range g {
		var sb strings.Builder
		if y > 0 {
			sb.WriteString(LineSeparator)
		}
		for _, c := range row {
			sb.WriteString(c.String())
		}
		n, err := io.WriteString(w, sb.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Compressed renders the grid emitting an escape only when the colour
// differs from the previous cell of the row. Every row starts with an
// escape.
func (g ColorGrid) Compressed() string {
	var sb strings.Builder
	for y, row := range g {
		if y > 0 {
			sb.WriteString(LineSeparator)
		}
		for x, c := range row {
			if x == 0 || c.Color != row[x-1].Color {
				sb.WriteString(c.String())
				continue
			}
			sb.WriteByte(c.Glyph)
		}
	}
	return sb.String()
}
