package imageutil

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewRGBAImage(t *testing.T) {
	img := NewRGBAImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestRGBAImageGetSetRGB(t *testing.T) {
	img := NewRGBAImage(10, 10)
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 5, c)

	got := img.GetRGB(5, 5)
	if got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
}

func TestRGBFromColor(t *testing.T) {
	got := RGBFromColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	if got != (RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("Expected {200 100 50}, got %v", got)
	}
	if back := got.ToColor(); back.A != 255 {
		t.Errorf("Expected opaque color, got alpha %d", back.A)
	}
}

func TestRGBAImageClone(t *testing.T) {
	img := NewRGBAImage(10, 10)
	img.SetRGB(5, 5, RGB{R: 255, G: 0, B: 0})

	clone := img.Clone()
	if clone.GetRGB(5, 5) != img.GetRGB(5, 5) {
		t.Error("Clone should have same pixel values")
	}

	// Modify clone, original should be unchanged
	clone.SetRGB(5, 5, RGB{R: 0, G: 255, B: 0})
	if img.GetRGB(5, 5).G != 0 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestNewGrayImage(t *testing.T) {
	img := NewGrayImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestGrayImageGetSetGray(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.Gray.Pix[5*img.Stride+5] = 128

	got := img.GrayAt(5, 5).Y
	if got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
}

func TestToGrayscale(t *testing.T) {
	// Test with known values
	img := NewRGBAImage(1, 1)
	img.SetRGB(0, 0, RGB{R: 255, G: 255, B: 255})

	gray := ToGrayscale(img)
	v := gray.GrayAt(0, 0).Y

	// White should produce white (255)
	if v != 255 {
		t.Errorf("White pixel should convert to 255, got %d", v)
	}

	// Test black
	img.SetRGB(0, 0, RGB{R: 0, G: 0, B: 0})
	gray = ToGrayscale(img)
	v = gray.GrayAt(0, 0).Y
	if v != 0 {
		t.Errorf("Black pixel should convert to 0, got %d", v)
	}

	// Test red (0.299 * 255 = 76.245)
	img.SetRGB(0, 0, RGB{R: 255, G: 0, B: 0})
	gray = ToGrayscale(img)
	v = gray.GrayAt(0, 0).Y
	if v < 75 || v > 77 {
		t.Errorf("Red pixel should convert to ~76, got %d", v)
	}
}

func TestResize(t *testing.T) {
	img := CreateGradientImage(100, 100)

	// Downscale
	resized := Resize(img, 50, 50, InterpolationArea)
	if resized.Width() != 50 || resized.Height() != 50 {
		t.Errorf("Expected 50x50, got %dx%d", resized.Width(), resized.Height())
	}

	// Upscale
	resized = Resize(img, 200, 200, InterpolationLinear)
	if resized.Width() != 200 || resized.Height() != 200 {
		t.Errorf("Expected 200x200, got %dx%d", resized.Width(), resized.Height())
	}
}

func TestGrayImageRows(t *testing.T) {
	rows := [][]uint8{
		{0, 10, 20},
		{30, 40, 50},
	}
	img := GrayImageFromRows(rows)
	if img.Width() != 3 || img.Height() != 2 {
		t.Fatalf("Expected 3x2, got %dx%d", img.Width(), img.Height())
	}
	if img.GetGray(1, 1) != 40 {
		t.Errorf("Expected 40 at (1,1), got %d", img.GetGray(1, 1))
	}

	got := img.Rows()
	got[0][0] = 99
	if img.GetGray(0, 0) != 0 {
		t.Error("Rows should return a copy")
	}
}

func TestToLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want uint8
	}{
		{"white", RGB{255, 255, 255}, 255},
		{"black", RGB{0, 0, 0}, 0},
		{"red", RGB{255, 0, 0}, 54},
		{"green", RGB{0, 255, 0}, 182},
		{"blue", RGB{0, 0, 255}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := CreateSolidImage(1, 1, tt.c)
			if got := ToLuminance(img).GetGray(0, 0); got != tt.want {
				t.Errorf("ToLuminance(%v) = %d, want %d", tt.c, got, tt.want)
			}
		})
	}
}

func TestParseLuma(t *testing.T) {
	for _, name := range []string{"rec709", "bt601"} {
		l, err := ParseLuma(name)
		if err != nil {
			t.Fatalf("ParseLuma(%q): %v", name, err)
		}
		if l.String() != name {
			t.Errorf("Expected %q, got %q", name, l.String())
		}
	}
	if _, err := ParseLuma("srgb"); err == nil {
		t.Error("Expected error for unknown weights")
	}
}

func TestInvert(t *testing.T) {
	img := GrayImageFromRows([][]uint8{{0, 100, 255}})
	inv := Invert(img)
	want := []uint8{255, 155, 0}
	for x, w := range want {
		if got := inv.GetGray(x, 0); got != w {
			t.Errorf("Invert at %d = %d, want %d", x, got, w)
		}
	}
	if img.GetGray(0, 0) != 0 {
		t.Error("Invert should not modify its input")
	}
}

func TestResizeToWidth(t *testing.T) {
	img := CreateGradientImage(100, 50)

	small := ResizeToWidth(img, 20)
	if small.Width() != 20 || small.Height() != 10 {
		t.Errorf("Expected 20x10, got %dx%d", small.Width(), small.Height())
	}

	large := ResizeToWidth(img, 300)
	if large.Width() != 300 || large.Height() != 150 {
		t.Errorf("Expected 300x150, got %dx%d", large.Width(), large.Height())
	}

	// Very wide images keep at least one row
	wide := ResizeToWidth(CreateGradientImage(1000, 2), 10)
	if wide.Height() != 1 {
		t.Errorf("Expected height 1, got %d", wide.Height())
	}
}

func TestLoadSaveImage(t *testing.T) {
	// Create temp directory
	tmpDir := t.TempDir()

	// Create test image
	img := CreateColorBarsImage(64, 64)

	// Save to PNG
	pngPath := filepath.Join(tmpDir, "test.png")
	err := SaveImage(img.RGBA, pngPath)
	if err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	// Load back
	loaded, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}

	// PNG should be lossless
	mse := CalculateMSE(img, loaded)
	if mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := NewRGBAImage(10, 10)
	img2 := NewRGBAImage(10, 10)

	// Same images should have MSE of 0
	mse := CalculateMSE(img1, img2)
	if mse != 0 {
		t.Errorf("Identical images should have MSE=0, got %f", mse)
	}

	// Different images
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img1.SetRGB(x, y, RGB{R: 0, G: 0, B: 0})
			img2.SetRGB(x, y, RGB{R: 10, G: 10, B: 10})
		}
	}
	mse = CalculateMSE(img1, img2)
	expected := 100.0 // 10^2 = 100
	if mse != expected {
		t.Errorf("Expected MSE=%f, got %f", expected, mse)
	}
}

// TestSaveTestImages saves test images to testdata directory for visual inspection.
// Run with: go test -run TestSaveTestImages -v
func TestSaveTestImages(t *testing.T) {
	if os.Getenv("SAVE_TEST_IMAGES") != "1" {
		t.Skip("Set SAVE_TEST_IMAGES=1 to generate test images")
	}

	testdataDir := "../testdata"
	if err := os.MkdirAll(testdataDir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", testdataDir, err)
	}

	gradient := CreateGradientImage(256, 256)
	images := map[string]*RGBAImage{
		"gradient.png":     gradient,
		"vgradient.png":    CreateVerticalGradientImage(256, 256),
		"checkerboard.png": CreateCheckerboardImage(256, 256, 32),
		"colorbars.png":    CreateColorBarsImage(256, 256),
	}
	for name, img := range images {
		if err := SaveImage(img.RGBA, filepath.Join(testdataDir, name)); err != nil {
			t.Fatalf("Failed to save %s: %v", name, err)
		}
	}

	// Pooled gradient, one pixel per character cell
	pooled := Downsample(ToLuminance(gradient), CellWidth, CellHeight)
	if err := SaveGrayImage(pooled, filepath.Join(testdataDir, "gradient_cells.png")); err != nil {
		t.Fatalf("Failed to save gradient_cells.png: %v", err)
	}

	t.Log("Test images saved to testdata/")
}
