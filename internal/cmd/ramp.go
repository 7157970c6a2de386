package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/wbrown/img2ascii"
)

type Ramp struct {
	Font   string `short:"f" help:"Catalog font" default:"${default_font}" env:"IMG2ASCII_FONT"`
	Chars  string `short:"c" help:"Characters to draw with" default:"${default_chars}" env:"IMG2ASCII_CHARS"`
	Levels bool   `short:"l" help:"Also list the intensities the dithering quantizer can emit"`
}

// Run is called by Kong when the ramp command is executed.
func (c *Ramp) Run(logger *slog.Logger, catalog *img2ascii.Catalog) error {
	return c.run(logger, catalog, os.Stdout)
}

func (c *Ramp) run(logger *slog.Logger, catalog *img2ascii.Catalog, out io.Writer) error {
	r := img2ascii.NewRenderer(catalog, img2ascii.WithLogger(logger))

	table, err := r.GlyphTable(c.Font, c.Chars)
	if err != nil {
		return err
	}
	ramp, err := r.Ramp(c.Font, c.Chars)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "font:   %s\n", table.Font())
	fmt.Fprintf(out, "glyphs: %q (%d of %d)\n", table.IDs(), table.Len(), measurable(c.Chars))
	fmt.Fprintf(out, "ramp:   %q\n", ramp.String())

	if c.Levels {
		q, err := r.Quantizer(c.Font, c.Chars)
		if err != nil {
			return err
		}
		var sb strings.Builder
		for i, level := range q.Levels() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			id, err := q.Glyph(level)
			if err != nil {
				return err
			}
			fmt.Fprintf(&sb, "%d=%q", level, id)
		}
		fmt.Fprintf(out, "levels: %s\n", sb.String())
	}
	return nil
}

// measurable counts the distinct characters of chars that a catalog font
// carries measurements for.
func measurable(chars string) int {
	seen := make(map[byte]bool, len(chars))
	for i := 0; i < len(chars); i++ {
		if b := chars[i]; b >= img2ascii.FirstGlyph && b <= img2ascii.LastGlyph {
			seen[b] = true
		}
	}
	return len(seen)
}
