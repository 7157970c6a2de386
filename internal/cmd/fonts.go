package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/wbrown/img2ascii"
)

type Fonts struct {
	Format  string `help:"Export the catalog as json, yaml or toml instead of listing it" enum:"list,json,yaml,toml" default:"list"`
	Verbose bool   `short:"v" help:"Show the intensity range and number of distinct levels of every font"`
}

// Run is called by Kong when the fonts command is executed.
func (c *Fonts) Run(logger *slog.Logger, catalog *img2ascii.Catalog) error {
	return c.run(logger, catalog, os.Stdout)
}

func (c *Fonts) run(logger *slog.Logger, catalog *img2ascii.Catalog, out io.Writer) error {
	switch c.Format {
	case "json":
		return catalog.Encode(out, img2ascii.FormatJSON)
	case "yaml":
		return catalog.Encode(out, img2ascii.FormatYAML)
	case "toml":
		return catalog.Encode(out, img2ascii.FormatTOML)
	}

	if !c.Verbose {
		for _, name := range catalog.Names() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FONT\tMIN\tMAX\tLEVELS")
	for _, name := range catalog.Names() {
		f, err := catalog.Find(name)
		if err != nil {
			return err
		}
		lo, hi := uint8(255), uint8(0)
		levels := make(map[uint8]bool)
		for _, v := range f.Intensity {
			lo, hi = min(lo, v), max(hi, v)
			levels[v] = true
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", name, lo, hi, len(levels))
	}
	logger.Debug("listed fonts", "count", catalog.Len())
	return tw.Flush()
}
