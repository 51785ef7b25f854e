package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// RGBImage is packed 8-bit RGB, row-major, top row first
type RGBImage struct {
	Width  int
	Height int
	Pix    []byte // len = Width*Height*3
}

// EncodeRGB writes packed RGB bytes as an opaque PNG
func EncodeRGB(w io.Writer, pix []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) != width*height*3 {
		return fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d RGB", len(pix), width*height*3, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(pix); i, j = i+3, j+4 {
		img.Pix[j] = pix[i]
		img.Pix[j+1] = pix[i+1]
		img.Pix[j+2] = pix[i+2]
		img.Pix[j+3] = 255
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SaveRGB writes packed RGB bytes to a PNG file, creating parent directories
func SaveRGB(filename string, pix []byte, width, height int) (err error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close image file: %w", cerr)
		}
	}()

	return EncodeRGB(file, pix, width, height)
}

// LoadRGB loads a PNG or JPEG image into packed RGB bytes
func LoadRGB(filename string) (*RGBImage, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pix := make([]byte, 0, width*height*3)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.RGBA)
			pix = append(pix, c.R, c.G, c.B)
		}
	}

	return &RGBImage{
		Width:  width,
		Height: height,
		Pix:    pix,
	}, nil
}
