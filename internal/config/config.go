// Package config defines the CLI structure and configuration for img2ascii.
package config

import (
	"strings"

	"github.com/alecthomas/kong"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"IMG2ASCII_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to stderr)" env:"IMG2ASCII_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config  string `help:"Configuration file (JSON, YAML or TOML)" env:"IMG2ASCII_CONFIG"`
	Catalog string `help:"Font catalog file (JSON, YAML or TOML); the built-in catalog when empty" env:"IMG2ASCII_CATALOG"`

	Convert cmd.Convert `cmd:"" default:"withargs" help:"Convert an image to ASCII art"`
	Fonts   cmd.Fonts   `cmd:"" help:"List or export the font catalog"`
	Ramp    cmd.Ramp    `cmd:"" help:"Show the glyph table and gray ramp of a font and charset"`
}

// Vars are the interpolation variables referenced by the command structs.
func Vars() kong.Vars {
	return kong.Vars{
		"default_font":    img2ascii.DefaultFont,
		"default_chars":   img2ascii.DefaultCharset,
		"dither_matrices": strings.Join(img2ascii.DitherMatrixNames(), ","),
	}
}

// LoadCatalog returns the catalog named by --catalog or the embedded one.
func (c *CLI) LoadCatalog() (*img2ascii.Catalog, error) {
	if c.Catalog == "" {
		return img2ascii.DefaultCatalog()
	}
	return img2ascii.ReadCatalog(c.Catalog)
}
