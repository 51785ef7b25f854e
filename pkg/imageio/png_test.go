package imageio

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveRGB_RoundTrip writes a 3x2 image and loads it back
func TestSaveRGB_RoundTrip(t *testing.T) {
	pix := []byte{
		255, 255, 255, 255, 0, 0, 0, 255, 0,
		0, 0, 255, 12, 34, 56, 0, 0, 0,
	}
	filename := filepath.Join(t.TempDir(), "nested", "out.png")

	require.NoError(t, SaveRGB(filename, pix, 3, 2))

	loaded, err := LoadRGB(filename)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Width)
	assert.Equal(t, 2, loaded.Height)
	assert.Equal(t, pix, loaded.Pix)
}

func TestEncodeRGB_Opaque(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRGB(&buf, []byte{10, 20, 30}, 1, 1))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(10*257), r)
	assert.Equal(t, uint32(20*257), g)
	assert.Equal(t, uint32(30*257), b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncodeRGB_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorContains(t, EncodeRGB(&buf, []byte{1, 2, 3}, 2, 1), "want 6")
	assert.ErrorContains(t, EncodeRGB(&buf, nil, 0, 1), "invalid image size")
}

func TestSaveRGB_Errors(t *testing.T) {
	// A directory cannot be opened as a file
	dir := t.TempDir()
	assert.Error(t, SaveRGB(dir, []byte{0, 0, 0}, 1, 1))

	_, err := LoadRGB(filepath.Join(dir, "missing.png"))
	assert.ErrorContains(t, err, "failed to open image file")

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadRGB(garbage)
	assert.ErrorContains(t, err, "failed to decode image")
}
