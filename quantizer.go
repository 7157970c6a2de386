package img2ascii

import (
	"fmt"
	"sort"
)

// QuantizationTable maps a gray level to the nearest achievable intensity
// in the font's original intensity units. It is the Palette handed to the
// Ditherer.
type QuantizationTable [256]uint8

// Quantize implements Palette.
func (q *QuantizationTable) Quantize(v uint8) uint8 {
	return q[v]
}

// IntensityToGlyph maps an achievable original intensity to its glyph.
type IntensityToGlyph map[uint8]byte

// Quantizer pairs a quantization table with the glyph lookup for the
// intensities it can emit. Both are derived from the same GlyphTable.
type Quantizer struct {
	Table  QuantizationTable
	Glyphs IntensityToGlyph
}

// BuildQuantizer builds the dithering palette for a glyph table in original
// intensity units. Distances between a gray level and the candidates are
// measured on the rescaled 0-255 axis, with the same nearest rule and
// tie-break as BuildRamp, but the table stores the candidates' original
// intensities so the ditherer diffuses the true residual.
func BuildQuantizer(table *GlyphTable) (*Quantizer, error) {
	scaled, err := table.Rescaled()
	if err != nil {
		return nil, err
	}

	q := &Quantizer{Glyphs: make(IntensityToGlyph, table.Len())}
	nearest := nearestIndices(scaled.intensities())
	for g, idx := range nearest {
		q.Table[g] = table.glyphs[idx].Intensity
	}
	for _, glyph := range table.glyphs {
		q.Glyphs[glyph.Intensity] = glyph.ID
	}
	return q, nil
}

// Quantize implements Palette.
func (q *Quantizer) Quantize(v uint8) uint8 {
	return q.Table[v]
}

// Glyph returns the glyph for an achievable intensity.
func (q *Quantizer) Glyph(intensity uint8) (byte, error) {
	id, ok := q.Glyphs[intensity]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrCharMissingForIntensity, intensity)
	}
	return id, nil
}

// Levels returns the achievable intensities in ascending order.
func (q *Quantizer) Levels() []uint8 {
	levels := make([]uint8, 0, len(q.Glyphs))
	for v := range q.Glyphs {
		levels = append(levels, v)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}
