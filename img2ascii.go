// Package img2ascii converts raster images to ASCII art. Every printable
// ASCII glyph of a font carries a measured ink intensity; the glyphs of a
// chosen charset are ordered along that axis and each gray level of the
// pooled image is mapped to the nearest one, either directly through a
// 256-entry ramp or with error diffusion dithering.
package img2ascii

import (
	"fmt"
	"sync"

	"github.com/wbrown/img2ascii/imageutil"
)

const (
	// DefaultFont is the catalog font used when none is named.
	DefaultFont = "inconsolata-regular"

	// DefaultCharset is a compact dark-to-light ramp that reads well in
	// most terminals.
	DefaultCharset = "@#MBHA&Gh93X25Sisr;:,. "
)

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// Default returns a shared Renderer over the embedded catalog.
func Default() (*Renderer, error) {
	defaultOnce.Do(func() {
		var catalog *Catalog
		catalog, defaultErr = DefaultCatalog()
		if defaultErr != nil {
			return
		}
		defaultRenderer = NewRenderer(catalog)
	})
	return defaultRenderer, defaultErr
}

// ImageToASCII loads the image at imagePath and renders it with the shared
// default renderer.
func ImageToASCII(imagePath string, opts Options) (string, error) {
	r, err := Default()
	if err != nil {
		return "", err
	}
	img, err := imageutil.LoadImage(imagePath)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", imagePath, err)
	}
	res, err := r.Render(img, opts)
	if err != nil {
		return "", err
	}
	return res.String(), nil
}
