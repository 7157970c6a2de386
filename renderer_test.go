package img2ascii

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/img2ascii/imageutil"
)

func newTestRenderer(t *testing.T, opts ...RendererOption) *Renderer {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewRenderer(catalog, opts...)
}

func TestRendererTableCaching(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	first, err := r.Ramp("", "")
	require.NoError(t, err)
	second, err := r.Ramp(DefaultFont, DefaultCharset)
	require.NoError(t, err)
	assert.Same(t, first, second, "defaults resolve to the same cache entry")

	_, err = r.Quantizer(DefaultFont, DefaultCharset)
	require.NoError(t, err)

	hits, misses, rate := r.CacheStats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
	assert.InDelta(t, 2.0/3.0, rate, 1e-9)

	r.ResetStats()
	hits, misses, rate = r.CacheStats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, rate)
	assert.Len(t, r.CachedTables(), 1, "reset keeps cached tables")
}

func TestRendererCacheEviction(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, WithCacheSize(1), WithLogger(logger))

	_, err := r.GlyphTable(DefaultFont, "@. ")
	require.NoError(t, err)
	_, err = r.GlyphTable("inconsolata-bold", "@. ")
	require.NoError(t, err)

	assert.Equal(t, []string{`inconsolata-bold/"@. "`}, r.CachedTables())
	assert.Contains(t, logs.String(), "evicted glyph tables")
}

func TestRendererErrors(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)

	_, err := r.Ramp("comic-sans", "")
	assert.ErrorIs(t, err, ErrFontNotFound)

	_, err = r.Ramp("", "\t\n")
	assert.ErrorIs(t, err, ErrEmptyCharset)

	// M and # share the same intensity in the default font.
	_, err = r.Ramp(DefaultFont, "M#")
	assert.ErrorIs(t, err, ErrDegenerateIntensityRange)

	_, _, rate := r.CacheStats()
	assert.Zero(t, rate, "failures are not cached")
	assert.Empty(t, r.CachedTables())
}

func TestRendererRender(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	img := imageutil.CreateGradientImage(140, 140)

	res, err := r.Render(img, Options{Columns: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Art.Width())
	assert.Equal(t, 5, res.Art.Height())
	assert.Nil(t, res.Color)

	table, err := r.GlyphTable("", "")
	require.NoError(t, err)
	for _, row := range res.Art {
		assert.Equal(t, table.At(0).ID, row[0], "darkest column")
		assert.Equal(t, byte(' '), row[9], "brightest column")
	}

	lines := strings.Split(res.String(), LineSeparator)
	assert.Len(t, lines, 5)
	assert.Positive(t, r.GetConvertTime())
}

func TestRendererRenderInvert(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	img := imageutil.CreateGradientImage(140, 140)

	res, err := r.Render(img, Options{Columns: 10, Invert: true})
	require.NoError(t, err)
	assert.Equal(t, byte(' '), res.Art[0][0])
	assert.Equal(t, uint8(255), res.Gray.GetGray(0, 0))
}

func TestRendererRenderColor(t *testing.T) {
	t.Parallel()

	// One 7px bar per cell and no resize, so every cell pools a single bar.
	r := newTestRenderer(t)
	img := imageutil.CreateColorBarsImage(8*imageutil.CellWidth, 2*imageutil.CellHeight)

	res, err := r.Render(img, Options{Color: true})
	require.NoError(t, err)
	require.NotNil(t, res.Color)
	assert.Equal(t, 8, res.Art.Width())
	assert.Equal(t, 2, res.Art.Height())
	assert.Equal(t, res.Art, res.Color.Art())
	assert.Equal(t, imageutil.RGB{R: 0, G: 0, B: 255}, res.Color[1][6].Color)
	assert.Equal(t, imageutil.RGB{R: 255, G: 0, B: 0}, res.Color[0][5].Color)
	assert.True(t, strings.HasPrefix(res.String(), ESC+"[38;2;255;255;255m"))
}

func TestRendererRenderDither(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	q, err := r.Quantizer("", "")
	require.NoError(t, err)

	img := imageutil.CreateGradientImage(280, 140)
	res, err := r.Render(img, Options{Columns: 40, Dither: true})
	require.NoError(t, err)

	allowed := make(map[byte]bool)
	for _, id := range q.Glyphs {
		allowed[id] = true
	}
	for _, row := range res.Art {
		for _, id := range row {
			assert.True(t, allowed[id], "unexpected glyph %q", id)
		}
	}
}

func TestRendererRenderFlat(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newTestRenderer(t, WithLogger(logger))

	img := imageutil.CreateSolidImage(70, 28, imageutil.RGB{R: 255, G: 255, B: 255})
	res, err := r.Render(img, Options{})
	require.NoError(t, err)
	assert.Equal(t, "          \n          ", res.String())
	assert.Contains(t, logs.String(), "contrast stretch skipped")
}

func TestRendererConcurrent(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t)
	img := imageutil.CreateGradientImage(70, 70)
	want, err := r.Render(img, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Render(img, Options{})
			if assert.NoError(t, err) {
				assert.Equal(t, want.Art, got.Art)
			}
		}()
	}
	wg.Wait()
}

func TestImageToASCII(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/gradient.png"
	require.NoError(t, imageutil.SaveImage(imageutil.CreateGradientImage(70, 28).RGBA, path))

	text, err := ImageToASCII(path, Options{})
	require.NoError(t, err)
	assert.Len(t, strings.Split(text, LineSeparator), 2)

	_, err = ImageToASCII(path+".missing", Options{})
	assert.Error(t, err)
}
