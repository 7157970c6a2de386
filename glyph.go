package img2ascii

import (
	"fmt"
	"sort"
	"strings"
)

// Glyph is one printable ASCII character with its measured ink intensity
// and deviation (how unevenly the ink is spread over the cell).
type Glyph struct {
	ID        byte
	Intensity uint8
	Deviation uint8
}

func (g Glyph) String() string {
	return fmt.Sprintf("%q(i=%d,d=%d)", rune(g.ID), g.Intensity, g.Deviation)
}

// less orders glyphs by (intensity, deviation, id).
func (g Glyph) less(o Glyph) bool {
	if g.Intensity != o.Intensity {
		return g.Intensity < o.Intensity
	}
	if g.Deviation != o.Deviation {
		return g.Deviation < o.Deviation
	}
	return g.ID < o.ID
}

// GlyphTable is the ordered intensity axis of a (font, charset) pair: the
// allowed glyphs sorted ascending by (intensity, deviation, id) with exactly
// one glyph per intensity value. A GlyphTable is never mutated after it is
// built.
type GlyphTable struct {
	font     string
	glyphs   []Glyph
	rescaled bool
}

// NewGlyphTable builds the glyph table for a font restricted to the
// characters in chars. Characters outside printable ASCII are ignored.
// It fails with ErrEmptyCharset if no glyph of the font is allowed.
func NewGlyphTable(font Font, chars string) (*GlyphTable, error) {
	glyphs := make([]Glyph, 0, GlyphCount)
	for i := 0; i < GlyphCount; i++ {
		glyphs = append(glyphs, Glyph{
			ID:        byte(FirstGlyph + i),
			Intensity: font.Intensity[i],
			Deviation: font.Deviation[i],
		})
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].less(glyphs[j]) })

	allowed := glyphs[:0]
	for _, g := range glyphs {
		if strings.IndexByte(chars, g.ID) >= 0 {
			allowed = append(allowed, g)
		}
	}
	if len(allowed) == 0 {
		return nil, fmt.Errorf("%w: font %q, chars %q", ErrEmptyCharset, font.Name, chars)
	}

	// Sorted order puts the lowest deviation first within an intensity.
	unique := make([]Glyph, 0, len(allowed))
	for i, g := range allowed {
		if i > 0 && g.Intensity == allowed[i-1].Intensity {
			continue
		}
		unique = append(unique, g)
	}

	return &GlyphTable{font: font.Name, glyphs: unique}, nil
}

// Rescaled returns a copy of the table with intensities stretched linearly
// so the darkest glyph sits at 0 and the brightest at 255. Rescaling an
// already rescaled table returns an equal table. It fails with
// ErrDegenerateIntensityRange when only one intensity survived.
func (t *GlyphTable) Rescaled() (*GlyphTable, error) {
	lo := int(t.glyphs[0].Intensity)
	hi := int(t.glyphs[len(t.glyphs)-1].Intensity)
	span := hi - lo
	if span == 0 {
		return nil, fmt.Errorf("%w: font %q has a single intensity %d for %q",
			ErrDegenerateIntensityRange, t.font, lo, t.IDs())
	}

	scaled := make([]Glyph, len(t.glyphs))
	for i, g := range t.glyphs {
		// round((v-lo)*255/span), half away from zero
		n := (int(g.Intensity) - lo) * 255
		g.Intensity = uint8((2*n + span) / (2 * span))
		scaled[i] = g
	}
	return &GlyphTable{font: t.font, glyphs: scaled, rescaled: true}, nil
}

// Glyphs returns a copy of the glyphs in table order.
func (t *GlyphTable) Glyphs() []Glyph {
	return append([]Glyph(nil), t.glyphs...)
}

// Len returns the number of distinct-intensity glyphs.
func (t *GlyphTable) Len() int {
	return len(t.glyphs)
}

// At returns the i-th glyph in table order.
func (t *GlyphTable) At(i int) Glyph {
	return t.glyphs[i]
}

// IsRescaled reports whether intensities are on the stretched 0-255 axis.
func (t *GlyphTable) IsRescaled() bool {
	return t.rescaled
}

// Font returns the name of the font the table was built from.
func (t *GlyphTable) Font() string {
	return t.font
}

// IDs returns the glyph characters in table order, darkest first.
func (t *GlyphTable) IDs() string {
	var sb strings.Builder
	for _, g := range t.glyphs {
		sb.WriteByte(g.ID)
	}
	return sb.String()
}

// intensities returns the intensity axis positions in table order.
func (t *GlyphTable) intensities() []uint8 {
	out := make([]uint8, len(t.glyphs))
	for i, g := range t.glyphs {
		out[i] = g.Intensity
	}
	return out
}
