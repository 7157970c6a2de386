package imageutil

// Default character cell size in source pixels. Seven by fourteen is close
// to the aspect ratio of a monospaced glyph.
const (
	CellWidth  = 7
	CellHeight = 14
)

// blockGrid describes how a width x height raster is split into
// non-overlapping cellWidth x cellHeight blocks. Edge blocks may be
// partial.
type blockGrid struct {
	cellWidth, cellHeight int
	cols, rows            int
}

func newBlockGrid(width, height, cellWidth, cellHeight int) blockGrid {
	cellWidth = max(cellWidth, 1)
	cellHeight = max(cellHeight, 1)
	return blockGrid{
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		cols:       (width + cellWidth - 1) / cellWidth,
		rows:       (height + cellHeight - 1) / cellHeight,
	}
}

// roundedMean divides with rounding half up.
func roundedMean(sum, count int) uint8 {
	return uint8((2*sum + count) / (2 * count))
}

// Downsample averages non-overlapping cellWidth x cellHeight blocks of img.
// The result is ceil(w/cellWidth) x ceil(h/cellHeight); partial blocks at
// the right and bottom edges average only the pixels they cover.
func Downsample(img *GrayImage, cellWidth, cellHeight int) *GrayImage {
	width, height := img.Width(), img.Height()
	grid := newBlockGrid(width, height, cellWidth, cellHeight)
	sums := make([]int, grid.cols*grid.rows)
	counts := make([]int, grid.cols*grid.rows)

	for y := 0; y < height; y++ {
		by := y / grid.cellHeight
		for x := 0; x < width; x++ {
			i := by*grid.cols + x/grid.cellWidth
			sums[i] += int(img.GetGray(x, y))
			counts[i]++
		}
	}

	out := NewGrayImage(grid.cols, grid.rows)
	for i := range sums {
		out.Pix[i] = roundedMean(sums[i], counts[i])
	}
	return out
}

// DownsampleRGB is Downsample applied to each channel of an RGBA image.
func DownsampleRGB(img *RGBAImage, cellWidth, cellHeight int) *RGBAImage {
	width, height := img.Width(), img.Height()
	grid := newBlockGrid(width, height, cellWidth, cellHeight)
	sums := make([][3]int, grid.cols*grid.rows)
	counts := make([]int, grid.cols*grid.rows)

	for y := 0; y < height; y++ {
		by := y / grid.cellHeight
		for x := 0; x < width; x++ {
			i := by*grid.cols + x/grid.cellWidth
			c := img.RGBAAt(x, y)
			sums[i][0] += int(c.R)
			sums[i][1] += int(c.G)
			sums[i][2] += int(c.B)
			counts[i]++
		}
	}

	out := NewRGBAImage(grid.cols, grid.rows)
	for i, s := range sums {
		out.SetRGB(i%grid.cols, i/grid.cols, RGB{
			R: roundedMean(s[0], counts[i]),
			G: roundedMean(s[1], counts[i]),
			B: roundedMean(s[2], counts[i]),
		})
	}
	return out
}
