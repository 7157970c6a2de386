// Command fontmetrics builds a font catalog for img2ascii by measuring the
// printable ASCII glyphs of the built-in bitmap faces and of any TrueType
// files given on the command line.
//
// Usage:
//
//	go run ./cmd/fontmetrics -o fontdata/fonts.json
//	go run ./cmd/fontmetrics --no-builtin -o mono.yaml DejaVuSansMono.ttf
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/internal/config"
	"github.com/wbrown/img2ascii/internal/configpaths"
	"github.com/wbrown/img2ascii/internal/glyphmetrics"
	"github.com/wbrown/img2ascii/internal/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
)

type CLI struct {
	config.Log `embed:"" prefix:"log."`

	Output  string   `short:"o" help:"Catalog file to write, format from the extension; - writes JSON to stdout" default:"-"`
	Builtin bool     `help:"Measure the built-in bitmap faces" default:"true" negatable:""`
	Size    float64  `help:"Point size for TrueType faces" default:"16" env:"FONTMETRICS_SIZE"`
	DPI     float64  `help:"Resolution for TrueType faces" default:"72" env:"FONTMETRICS_DPI"`
	TTF     []string `arg:"" optional:"" help:"TrueType files to measure" type:"existingfile"`
}

// builtinFaces are the faces the embedded catalog is built from.
func builtinFaces() []namedFace {
	return []namedFace{
		{"basic-7x13", basicfont.Face7x13},
		{"inconsolata-regular", inconsolata.Regular8x16},
		{"inconsolata-bold", inconsolata.Bold8x16},
	}
}

type namedFace struct {
	name string
	face font.Face
}

// loadFont loads a TrueType font from file
func loadFont(path string, size, dpi float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

func faceName(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func (c *CLI) Run(logger *slog.Logger) error {
	var faces []namedFace
	if c.Builtin {
		faces = builtinFaces()
	}
	for _, path := range c.TTF {
		face, err := loadFont(path, c.Size, c.DPI)
		if err != nil {
			return err
		}
		defer face.Close()
		faces = append(faces, namedFace{faceName(path), face})
	}
	if len(faces) == 0 {
		return fmt.Errorf("nothing to measure: pass TrueType files or drop --no-builtin")
	}

	fonts := make([]img2ascii.Font, 0, len(faces))
	for _, nf := range faces {
		f, err := glyphmetrics.Measure(nf.name, nf.face)
		if err != nil {
			return err
		}
		logger.Info("measured font", "font", nf.name)
		fonts = append(fonts, f)
	}

	catalog, err := img2ascii.NewCatalog(fonts...)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	format := img2ascii.FormatJSON
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		format = img2ascii.CatalogFormatFromPath(c.Output)
	}
	if err := catalog.Encode(out, format); err != nil {
		return err
	}
	logger.Info("wrote font catalog", "output", c.Output, "format", format.String(), "fonts", catalog.Len())
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	if _, err := configpaths.LoadEnv("."); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load env file:", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fontmetrics"),
		kong.Description("Measure glyph ink intensity and deviation into an img2ascii font catalog."),
		kong.UsageOnError(),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		return 2
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	if err := ctx.Run(); err != nil {
		logger.Error("fontmetrics failed", "error", err)
		return 1
	}
	return 0
}
