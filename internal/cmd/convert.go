package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/log"
)

type Convert struct {
	Input  string `arg:"" optional:"" default:"-" help:"Image to convert (PNG, JPEG, GIF, BMP, TIFF, WebP); - reads stdin"`
	Output string `short:"o" help:"Write the art to a file instead of stdout" env:"IMG2ASCII_OUTPUT"`

	Font  string `short:"f" help:"Catalog font" default:"${default_font}" env:"IMG2ASCII_FONT"`
	Chars string `short:"c" help:"Characters to draw with" default:"${default_chars}" env:"IMG2ASCII_CHARS"`
	Width int    `short:"w" help:"Output width in characters; 0 gives one column per cell of the source" default:"100" env:"IMG2ASCII_WIDTH"`

	CellWidth  int `help:"Source pixels per character, horizontally" default:"7" env:"IMG2ASCII_CELL_WIDTH"`
	CellHeight int `help:"Source pixels per character, vertically" default:"14" env:"IMG2ASCII_CELL_HEIGHT"`

	Dither   bool    `short:"d" help:"Use error diffusion dithering" env:"IMG2ASCII_DITHER"`
	Matrix   string  `help:"Error diffusion kernel" default:"floyd-steinberg" enum:"${dither_matrices}" env:"IMG2ASCII_MATRIX"`
	Strength float32 `help:"Error diffusion strength, 0 to 1" default:"1" env:"IMG2ASCII_STRENGTH"`

	Color    string `help:"True-color output: auto, always, never" default:"auto" enum:"auto,always,never" env:"IMG2ASCII_COLOR"`
	Compress bool   `help:"Emit a color escape only when the color changes" env:"IMG2ASCII_COMPRESS"`

	Contrast   float64 `help:"Contrast adjustment in percent, -100 to 100" default:"0" env:"IMG2ASCII_CONTRAST"`
	Brightness int     `help:"Brightness offset, -255 to 255" default:"0" env:"IMG2ASCII_BRIGHTNESS"`
	Invert     bool    `help:"Invert the image for light text on a dark background" env:"IMG2ASCII_INVERT"`
	NoStretch  bool    `help:"Do not stretch the pooled image to the full gray range" env:"IMG2ASCII_NO_STRETCH"`
	Luma       string  `help:"Luminance weights" default:"rec709" enum:"rec709,bt601" env:"IMG2ASCII_LUMA"`

	SaveGray string `help:"Also save the pooled grayscale image, one pixel per character" type:"path"`
}

// Run is called by Kong when the convert command is executed.
func (c *Convert) Run(logger *slog.Logger, catalog *img2ascii.Catalog) error {
	out := io.Writer(os.Stdout)
	tty := log.IsTerminal(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out, tty = f, false
	}
	return c.run(logger, catalog, os.Stdin, out, tty)
}

func (c *Convert) load(stdin io.Reader) (*imageutil.RGBAImage, error) {
	if c.Input == "-" || c.Input == "" {
		return imageutil.DecodeImage(stdin)
	}
	return imageutil.LoadImage(c.Input)
}

func (c *Convert) renderer(logger *slog.Logger, catalog *img2ascii.Catalog) (*img2ascii.Renderer, error) {
	matrix, err := img2ascii.DitherMatrix(c.Matrix)
	if err != nil {
		return nil, err
	}
	return img2ascii.NewRenderer(catalog,
		img2ascii.WithLogger(logger),
		img2ascii.WithCellSize(c.CellWidth, c.CellHeight),
		img2ascii.WithColumns(c.Width),
		img2ascii.WithDitherer(img2ascii.NewDitherer(matrix, c.Strength)),
	), nil
}

func (c *Convert) options(tty bool) (img2ascii.Options, error) {
	luma, err := imageutil.ParseLuma(c.Luma)
	if err != nil {
		return img2ascii.Options{}, err
	}
	return img2ascii.Options{
		Font:       c.Font,
		Chars:      c.Chars,
		Dither:     c.Dither,
		Color:      c.Color == "always" || (c.Color == "auto" && tty),
		Contrast:   c.Contrast,
		Brightness: c.Brightness,
		Invert:     c.Invert,
		NoStretch:  c.NoStretch,
		Luma:       luma,
	}, nil
}

func (c *Convert) run(logger *slog.Logger, catalog *img2ascii.Catalog, stdin io.Reader, out io.Writer, tty bool) error {
	img, err := c.load(stdin)
	if err != nil {
		return err
	}
	logger.Debug("loaded image", "input", c.Input, "width", img.Width(), "height", img.Height())

	r, err := c.renderer(logger, catalog)
	if err != nil {
		return err
	}
	opts, err := c.options(tty)
	if err != nil {
		return err
	}

	res, err := r.Render(img, opts)
	if errors.Is(err, img2ascii.ErrEmptyCharset) || errors.Is(err, img2ascii.ErrDegenerateIntensityRange) {
		logger.Warn("charset unusable, falling back to the default",
			"font", opts.Font,
			"chars", opts.Chars,
			"error", err)
		opts.Chars = img2ascii.DefaultCharset
		res, err = r.Render(img, opts)
	}
	if err != nil {
		return fmt.Errorf("convert %s: %w", c.Input, err)
	}

	if c.SaveGray != "" {
		if err := imageutil.SaveGrayImage(res.Gray, c.SaveGray); err != nil {
			return err
		}
		logger.Info("saved pooled image", "path", c.SaveGray)
	}

	text := res.String()
	if res.Color != nil {
		if c.Compress {
			text = res.Color.Compressed()
		}
		text += img2ascii.Reset
	}
	if _, err := fmt.Fprintln(out, text); err != nil {
		return err
	}

	hits, misses, _ := r.CacheStats()
	logger.Debug("conversion done",
		"columns", res.Art.Width(),
		"rows", res.Art.Height(),
		"table_hits", hits,
		"table_misses", misses,
		"elapsed", r.GetConvertTime())
	return nil
}
