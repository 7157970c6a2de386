package img2ascii

import "strings"

// Ramp maps every gray level to a glyph for non-dithered conversion.
// Ramp[0] is the darkest available glyph and Ramp[255] the brightest.
type Ramp [256]byte

// BuildRamp builds the direct lookup ramp for a glyph table. The table is
// rescaled to 0-255 first, so either a raw or a rescaled table may be
// passed. Each gray level gets the glyph whose rescaled intensity is
// nearest, equal distances going to the brighter glyph.
func BuildRamp(table *GlyphTable) (*Ramp, error) {
	scaled, err := table.Rescaled()
	if err != nil {
		return nil, err
	}

	var ramp Ramp
	nearest := nearestIndices(scaled.intensities())
	for g, idx := range nearest {
		ramp[g] = scaled.glyphs[idx].ID
	}
	return &ramp, nil
}

// Lookup returns the glyph for a gray level.
func (r *Ramp) Lookup(gray uint8) byte {
	return r[gray]
}

// String returns the 256 glyphs in gray-level order.
func (r *Ramp) String() string {
	var sb strings.Builder
	sb.Grow(len(r))
	for _, id := range r {
		sb.WriteByte(id)
	}
	return sb.String()
}

// nearestIndices returns, for each gray level, the index of the nearest
// position on an ascending axis. A cursor walks the axis once: it advances
// while the level lies past the current position, then the level is
// compared against the positions on either side of the cursor. Ties go to
// the right-hand (higher) position.
func nearestIndices(positions []uint8) [256]int {
	var out [256]int
	last := len(positions) - 1
	cursor := 0
	for g := 0; g < 256; g++ {
		for cursor < last && g > int(positions[cursor]) {
			cursor++
		}
		idx := cursor
		if cursor > 0 {
			left := g - int(positions[cursor-1])
			right := int(positions[cursor]) - g
			if right < 0 {
				right = -right
			}
			if left < right {
				idx = cursor - 1
			}
		}
		out[g] = idx
	}
	return out
}
