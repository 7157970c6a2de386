package img2ascii

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultCacheSize is the number of (font, charset) table sets a Renderer
// keeps before evicting the oldest.
const DefaultCacheSize = 16

// tableKey identifies the derived tables of one font restricted to one
// charset.
type tableKey struct {
	font  string
	chars string
}

func (k tableKey) String() string {
	return fmt.Sprintf("%s/%q", k.font, k.chars)
}

// tableSet holds everything derived from one GlyphTable. The entries are
// immutable once built and shared between conversions.
type tableSet struct {
	glyphs    *GlyphTable
	ramp      *Ramp
	quantizer *Quantizer
}

// Renderer encapsulates all state for ASCII image conversion.
// This allows for multiple independent renderers with different
// catalogs and cell geometry, concurrent rendering, and reuse of the
// derived glyph tables across images.
type Renderer struct {
	// Configuration options
	Columns    int
	CellWidth  int
	CellHeight int

	catalog  *Catalog
	ditherer *Ditherer
	logger   *slog.Logger

	// Cache (private)
	mu     sync.Mutex
	tables *OrderedMap[tableKey, *tableSet]
	hits   int
	misses int

	// Stats (private)
	beginInitTime time.Time
	convertTime   time.Duration
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer over a font catalog.
// Default values: Columns=0 (one column per CellWidth source pixels),
// CellWidth=7, CellHeight=14, Floyd-Steinberg dithering, a table cache of
// DefaultCacheSize entries and no logging.
func NewRenderer(catalog *Catalog, opts ...RendererOption) *Renderer {
	r := &Renderer{
		CellWidth:  imageutil.CellWidth,
		CellHeight: imageutil.CellHeight,

		catalog:       catalog,
		ditherer:      &Ditherer{},
		logger:        slog.New(slog.DiscardHandler),
		tables:        NewOrderedMap[tableKey, *tableSet](DefaultCacheSize),
		beginInitTime: time.Now(),
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithLogger sets the logger used for cache and pipeline diagnostics.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithCacheSize bounds the number of cached table sets. Zero or less means
// unbounded.
func WithCacheSize(size int) RendererOption {
	return func(r *Renderer) {
		r.tables = NewOrderedMap[tableKey, *tableSet](size)
	}
}

// WithDitherer sets the error diffusion used when Options.Dither is set.
func WithDitherer(d *Ditherer) RendererOption {
	return func(r *Renderer) {
		r.ditherer = d
	}
}

// WithCellSize sets the source pixel block that becomes one character.
func WithCellSize(width, height int) RendererOption {
	return func(r *Renderer) {
		r.CellWidth = width
		r.CellHeight = height
	}
}

// WithColumns sets the default output width in characters.
func WithColumns(columns int) RendererOption {
	return func(r *Renderer) {
		r.Columns = columns
	}
}

// Catalog returns the catalog the renderer draws fonts from.
func (r *Renderer) Catalog() *Catalog {
	return r.catalog
}

// tablesFor returns the cached tables for a font and charset, building
// them on a miss.
func (r *Renderer) tablesFor(font, chars string) (*tableSet, error) {
	if font == "" {
		font = DefaultFont
	}
	if chars == "" {
		chars = DefaultCharset
	}
	key := tableKey{font: font, chars: chars}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ts, ok := r.tables.Get(key); ok {
		r.hits++
		return ts, nil
	}
	r.misses++

	f, err := r.catalog.Find(font)
	if err != nil {
		return nil, err
	}
	glyphs, err := NewGlyphTable(f, chars)
	if err != nil {
		return nil, err
	}
	ramp, err := BuildRamp(glyphs)
	if err != nil {
		return nil, err
	}
	quantizer, err := BuildQuantizer(glyphs)
	if err != nil {
		return nil, err
	}

	ts := &tableSet{glyphs: glyphs, ramp: ramp, quantizer: quantizer}
	if evicted, ok := r.tables.Set(key, ts); ok {
		r.logger.Debug("evicted glyph tables", "key", evicted.String())
	}
	r.logger.Debug("built glyph tables",
		"font", font,
		"chars", chars,
		"glyphs", glyphs.IDs(),
		"levels", len(quantizer.Glyphs))
	return ts, nil
}

// GlyphTable returns the glyph table for a font and charset. Empty
// arguments select DefaultFont and DefaultCharset.
func (r *Renderer) GlyphTable(font, chars string) (*GlyphTable, error) {
	ts, err := r.tablesFor(font, chars)
	if err != nil {
		return nil, err
	}
	return ts.glyphs, nil
}

// Ramp returns the direct lookup ramp for a font and charset.
func (r *Renderer) Ramp(font, chars string) (*Ramp, error) {
	ts, err := r.tablesFor(font, chars)
	if err != nil {
		return nil, err
	}
	return ts.ramp, nil
}

// Quantizer returns the dithering quantizer for a font and charset.
func (r *Renderer) Quantizer(font, chars string) (*Quantizer, error) {
	ts, err := r.tablesFor(font, chars)
	if err != nil {
		return nil, err
	}
	return ts.quantizer, nil
}

// Options controls a single conversion.
type Options struct {
	// Font and Chars select the glyph tables. Empty values select
	// DefaultFont and DefaultCharset.
	Font  string
	Chars string

	// Columns overrides the renderer's output width when positive.
	Columns int

	// Dither selects error diffusion instead of the direct ramp.
	Dither bool

	// Color tags every glyph with the average colour of its cell.
	Color bool

	Contrast   float64
	Brightness int
	Invert     bool

	// NoStretch skips rescaling the pooled raster to 0-255.
	NoStretch bool

	Luma imageutil.Luma
}

// Result is the output of Render.
type Result struct {
	Art ArtGrid

	// Color is nil unless Options.Color was set.
	Color ColorGrid

	// Gray is the pooled raster the glyphs were chosen from.
	Gray *imageutil.GrayImage
}

// String returns the coloured text when present, the plain art otherwise.
func (res *Result) String() string {
	if res.Color != nil {
		return res.Color.String()
	}
	return res.Art.String()
}

// ConvertGray maps an already pooled raster to glyphs, one per pixel.
// Only Font, Chars and Dither of opts are used.
func (r *Renderer) ConvertGray(gray *imageutil.GrayImage, opts Options) (ArtGrid, error) {
	ts, err := r.tablesFor(opts.Font, opts.Chars)
	if err != nil {
		return nil, err
	}
	if !opts.Dither {
		return Convert(ts.ramp, gray), nil
	}
	return ConvertWithDither(ts.quantizer, gray, r.ditherer)
}

// Render runs the whole pipeline on a decoded image: resize to the
// requested width, pool into character cells, stretch and map to glyphs.
func (r *Renderer) Render(img *imageutil.RGBAImage, opts Options) (*Result, error) {
	start := time.Now()

	columns := r.Columns
	if opts.Columns > 0 {
		columns = opts.Columns
	}

	prepared := imageutil.PrepareForASCII(img, imageutil.PrepareOptions{
		Columns:    columns,
		CellWidth:  r.CellWidth,
		CellHeight: r.CellHeight,
		Luma:       opts.Luma,
		Contrast:   opts.Contrast,
		Brightness: opts.Brightness,
		Stretch:    !opts.NoStretch,
		Invert:     opts.Invert,
		KeepColor:  opts.Color,
	})
	if prepared.Flat {
		r.logger.Debug("flat image, contrast stretch skipped",
			"value", prepared.Gray.GetGray(0, 0))
	}

	art, err := r.ConvertGray(prepared.Gray, opts)
	if err != nil {
		return nil, err
	}
	res := &Result{Art: art, Gray: prepared.Gray}

	if opts.Color {
		res.Color, err = OverlayTrueColor(art, prepared.Color)
		if err != nil {
			return nil, err
		}
	}

	elapsed := time.Since(start)
	r.mu.Lock()
	r.convertTime += elapsed
	r.mu.Unlock()

	r.logger.Debug("rendered image",
		"columns", art.Width(),
		"rows", art.Height(),
		"dither", opts.Dither,
		"color", opts.Color,
		"elapsed", elapsed)
	return res, nil
}

// CacheStats returns table cache hit/miss statistics.
func (r *Renderer) CacheStats() (hits, misses int, hitRate float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := r.hits + r.misses
	if total == 0 {
		return 0, 0, 0
	}
	return r.hits, r.misses, float64(r.hits) / float64(total)
}

// CachedTables returns the cached (font, charset) pairs, oldest first.
func (r *Renderer) CachedTables() []string {
	keys := r.tables.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// ResetStats resets all statistics counters. Cached tables are kept.
func (r *Renderer) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hits = 0
	r.misses = 0
	r.convertTime = 0
	r.beginInitTime = time.Now()
}

// GetConvertTime returns the cumulative time spent in Render.
func (r *Renderer) GetConvertTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.convertTime
}

// Uptime returns the time since the renderer was created or its stats
// were last reset.
func (r *Renderer) Uptime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	return time.Since(r.beginInitTime)
}
