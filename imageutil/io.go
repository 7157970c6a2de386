package imageutil

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return DecodeImage(f)
}

// DecodeImage decodes any registered image format from r.
func DecodeImage(r io.Reader) (*RGBAImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RGBAImageFromImage(img), nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif).
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		return png.Encode(f, img)
	}
}

// SaveGrayImage saves a grayscale image to the specified path.
func SaveGrayImage(img *GrayImage, path string) error {
	return SaveImage(img.Gray, path)
}
