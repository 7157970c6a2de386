package imageutil

import (
	"image/color"
	"math"
)

// CreateGradientImage creates a horizontal gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateVerticalGradientImage creates a vertical gradient test image.
func CreateVerticalGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		v := uint8(255 * y / (height - 1))
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			isWhite := ((x/squareSize)+(y/squareSize))%2 == 0
			if isWhite {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 0, G: 0, B: 0, A: 255})
			}
		}
	}
	return img
}

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateSolidGray creates a flat grayscale raster.
func CreateSolidGray(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CreateColorBarsImage creates a color bars test pattern.
func CreateColorBarsImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	colors := []RGB{
		{255, 255, 255}, // White
		{255, 255, 0},   // Yellow
		{0, 255, 255},   // Cyan
		{0, 255, 0},     // Green
		{255, 0, 255},   // Magenta
		{255, 0, 0},     // Red
		{0, 0, 255},     // Blue
		{0, 0, 0},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			colorIdx := min(x/barWidth, len(colors)-1)
			img.SetRGB(x, y, colors[colorIdx])
		}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two RGBA images.
func CalculateMSE(img1, img2 *RGBAImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	count := float64(width * height * 3) // 3 channels

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c1 := img1.RGBAAt(x, y)
			c2 := img2.RGBAAt(x, y)
			dr := float64(c1.R) - float64(c2.R)
			dg := float64(c1.G) - float64(c2.G)
			db := float64(c1.B) - float64(c2.B)
			sumSq += dr*dr + dg*dg + db*db
		}
	}

	return sumSq / count
}

// MeanGray returns the average pixel value of a grayscale raster.
func MeanGray(img *GrayImage) float64 {
	width, height := img.Width(), img.Height()
	if width == 0 || height == 0 {
		return 0
	}
	var sum float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum += float64(img.GetGray(x, y))
		}
	}
	return sum / float64(width*height)
}
