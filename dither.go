package img2ascii

import (
	"fmt"
	"sort"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/wbrown/img2ascii/imageutil"
)

// Palette restricts a gray level to a value the output can represent.
type Palette interface {
	Quantize(v uint8) uint8
}

var ditherMatrices = map[string]dither.ErrorDiffusionMatrix{
	"floyd-steinberg": dither.FloydSteinberg,
	"atkinson":        dither.Atkinson,
	"jarvis":          dither.JarvisJudiceNinke,
	"stucki":          dither.Stucki,
	"burkes":          dither.Burkes,
	"sierra":          dither.Sierra,
	"sierra-lite":     dither.SierraLite,
}

// DitherMatrix returns a named error diffusion kernel.
func DitherMatrix(name string) (dither.ErrorDiffusionMatrix, error) {
	m, ok := ditherMatrices[name]
	if !ok {
		return nil, fmt.Errorf("unknown dither matrix %q", name)
	}
	return m, nil
}

// DitherMatrixNames lists the kernels accepted by DitherMatrix.
func DitherMatrixNames() []string {
	names := make([]string, 0, len(ditherMatrices))
	for name := range ditherMatrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ditherer is an error diffusion quantizer over a Palette. Pixels are
// visited in raster-scan order and each pixel's residual is pushed to its
// unvisited neighbours according to Matrix, so later pixels see the error
// of earlier ones. The zero value uses Floyd-Steinberg.
type Ditherer struct {
	Matrix dither.ErrorDiffusionMatrix
}

// NewDitherer creates a ditherer for a kernel applied at the given
// strength (1 leaves the kernel unchanged).
func NewDitherer(matrix dither.ErrorDiffusionMatrix, strength float32) *Ditherer {
	return &Ditherer{Matrix: dither.ErrorDiffusionStrength(matrix, strength)}
}

// Dither returns a copy of img whose pixels have all been replaced by
// palette values. img itself is not modified.
func (d *Ditherer) Dither(img *imageutil.GrayImage, p Palette) *imageutil.GrayImage {
	matrix := d.Matrix
	if matrix == nil {
		matrix = dither.FloydSteinberg
	}
	curPx := matrix.CurrentPixel()

	out := img.Clone()
	width, height := out.Width(), out.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			old := out.GetGray(x, y)
			q := p.Quantize(old)
			out.SetGrayValue(x, y, q)

			residual := float32(old) - float32(q)
			if residual == 0 {
				continue
			}
			for my, row := range matrix {
				for mx, weight := range row {
					if weight == 0 {
						continue
					}
					dx, dy := matrix.Offset(mx, my, curPx)
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= width || ny >= height {
						continue
					}
					v := float32(out.GetGray(nx, ny)) + residual*weight
					out.SetGrayValue(nx, ny, clampGray(v))
				}
			}
		}
	}
	return out
}

func clampGray(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
