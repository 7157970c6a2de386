package imageutil

import (
	"errors"
	"testing"
)

func TestDownsample(t *testing.T) {
	img := NewGrayImage(14, 14)
	for y := 0; y < 14; y++ {
		for x := 7; x < 14; x++ {
			img.SetGrayValue(x, y, 200)
		}
	}

	out := Downsample(img, CellWidth, CellHeight)
	if out.Width() != 2 || out.Height() != 1 {
		t.Fatalf("Expected 2x1, got %dx%d", out.Width(), out.Height())
	}
	if out.GetGray(0, 0) != 0 || out.GetGray(1, 0) != 200 {
		t.Errorf("Expected [0 200], got [%d %d]", out.GetGray(0, 0), out.GetGray(1, 0))
	}
}

func TestDownsamplePartialBlocks(t *testing.T) {
	// 8x15 leaves a one pixel wide and one pixel tall remainder.
	img := NewGrayImage(8, 15)
	for y := 0; y < 15; y++ {
		for x := 0; x < 8; x++ {
			img.SetGrayValue(x, y, 90)
		}
	}
	img.SetGrayValue(7, 14, 30)

	out := Downsample(img, CellWidth, CellHeight)
	if out.Width() != 2 || out.Height() != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", out.Width(), out.Height())
	}
	if out.GetGray(0, 0) != 90 {
		t.Errorf("Full block should average to 90, got %d", out.GetGray(0, 0))
	}
	if out.GetGray(1, 1) != 30 {
		t.Errorf("Corner block covers one pixel, expected 30, got %d", out.GetGray(1, 1))
	}
}

func TestDownsampleRoundsHalfUp(t *testing.T) {
	img := GrayImageFromRows([][]uint8{{0, 1}})
	out := Downsample(img, 2, 1)
	if out.GetGray(0, 0) != 1 {
		t.Errorf("Mean 0.5 should round to 1, got %d", out.GetGray(0, 0))
	}
}

func TestDownsampleRGB(t *testing.T) {
	img := CreateColorBarsImage(16, 14)
	out := DownsampleRGB(img, 4, 14)
	if out.Width() != 4 || out.Height() != 1 {
		t.Fatalf("Expected 4x1, got %dx%d", out.Width(), out.Height())
	}
	// First block covers two white and two yellow columns.
	want := RGB{R: 255, G: 255, B: 128}
	if got := out.GetRGB(0, 0); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestStretchContrast(t *testing.T) {
	img := GrayImageFromRows([][]uint8{{50, 100, 150}})
	out, err := StretchContrast(img)
	if err != nil {
		t.Fatalf("StretchContrast: %v", err)
	}
	want := []uint8{0, 128, 255}
	for x, w := range want {
		if got := out.GetGray(x, 0); got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
	if img.GetGray(0, 0) != 50 {
		t.Error("StretchContrast should not modify its input")
	}
}

func TestStretchContrastFlat(t *testing.T) {
	img := CreateSolidGray(4, 3, 77)
	out, err := StretchContrast(img)
	if !errors.Is(err, ErrFlatImage) {
		t.Fatalf("Expected ErrFlatImage, got %v", err)
	}
	if MeanGray(out) != 77 {
		t.Errorf("Flat image should be returned unchanged, mean %f", MeanGray(out))
	}
}

func TestAdjustContrast(t *testing.T) {
	img := GrayImageFromRows([][]uint8{{0, 64, 128, 200, 255}})

	same := AdjustContrast(img, 0)
	for x := 0; x < img.Width(); x++ {
		if same.GetGray(x, 0) != img.GetGray(x, 0) {
			t.Errorf("Zero contrast changed pixel %d: %d -> %d",
				x, img.GetGray(x, 0), same.GetGray(x, 0))
		}
	}

	more := AdjustContrast(img, 50)
	if more.GetGray(1, 0) >= 64 {
		t.Errorf("Dark pixel should get darker, got %d", more.GetGray(1, 0))
	}
	if more.GetGray(3, 0) <= 200 {
		t.Errorf("Light pixel should get lighter, got %d", more.GetGray(3, 0))
	}

	less := AdjustContrast(img, -100)
	for x := 0; x < img.Width(); x++ {
		if v := less.GetGray(x, 0); v != 128 {
			t.Errorf("Contrast -100 should flatten to mid-gray, got %d", v)
		}
	}
}

func TestBrighten(t *testing.T) {
	img := GrayImageFromRows([][]uint8{{0, 220}})

	up := Brighten(img, 50)
	if up.GetGray(0, 0) != 50 || up.GetGray(1, 0) != 255 {
		t.Errorf("Expected [50 255], got [%d %d]", up.GetGray(0, 0), up.GetGray(1, 0))
	}

	down := Brighten(img, -50)
	if down.GetGray(0, 0) != 0 || down.GetGray(1, 0) != 170 {
		t.Errorf("Expected [0 170], got [%d %d]", down.GetGray(0, 0), down.GetGray(1, 0))
	}
}

func TestPrepareForASCII(t *testing.T) {
	img := CreateGradientImage(140, 140)

	p := PrepareForASCII(img, PrepareOptions{
		Columns:   10,
		Stretch:   true,
		KeepColor: true,
	})
	if p.Gray.Width() != 10 || p.Gray.Height() != 5 {
		t.Fatalf("Expected 10x5 cells, got %dx%d", p.Gray.Width(), p.Gray.Height())
	}
	if p.Color == nil || p.Color.Width() != 10 || p.Color.Height() != 5 {
		t.Fatal("Color raster should match the gray raster")
	}
	if p.Flat {
		t.Error("Gradient should not be flat")
	}
	if p.Gray.GetGray(0, 0) != 0 || p.Gray.GetGray(9, 0) != 255 {
		t.Errorf("Stretched gradient should span 0-255, got %d-%d",
			p.Gray.GetGray(0, 0), p.Gray.GetGray(9, 0))
	}

	inv := PrepareForASCII(img, PrepareOptions{Columns: 10, Stretch: true, Invert: true})
	if inv.Gray.GetGray(0, 0) != 255 {
		t.Errorf("Inverted darkest cell should be 255, got %d", inv.Gray.GetGray(0, 0))
	}
	if inv.Color != nil {
		t.Error("Color should be nil without KeepColor")
	}
}

func TestPrepareForASCIIFlat(t *testing.T) {
	img := CreateSolidImage(21, 28, RGB{R: 100, G: 100, B: 100})

	p := PrepareForASCII(img, PrepareOptions{Stretch: true})
	if p.Gray.Width() != 3 || p.Gray.Height() != 2 {
		t.Fatalf("Expected 3x2 cells, got %dx%d", p.Gray.Width(), p.Gray.Height())
	}
	if !p.Flat {
		t.Error("Solid image should be reported flat")
	}
	if MeanGray(p.Gray) != 100 {
		t.Errorf("Flat raster should be unchanged, mean %f", MeanGray(p.Gray))
	}
}
