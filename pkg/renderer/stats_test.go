package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// 2x2 image, row-major RGB
	// Top-left: Red (1, 0, 0) -> Lum = 0.2126
	// Top-right: Green (0, 1, 0) -> Lum = 0.7152
	// Bottom-left: Blue (0, 0, 1) -> Lum = 0.0722
	// Bottom-right: Black (0, 0, 0) -> Lum = 0.0

	// Expected average: (0.2126 + 0.7152 + 0.0722 + 0.0) / 4 = 1.0 / 4 = 0.25
	pix := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 0, 0, 0,
	}

	avgLum := CalculateAverageLuminance(pix)
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateAverageLuminance_White(t *testing.T) {
	// 1x1 White pixel -> Lum = 1.0
	avgLum := CalculateAverageLuminance([]byte{255, 255, 255})
	expected := 1.0
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminosity %f, got %f", expected, avgLum)
	}
}

func TestCalculateLuminanceStats(t *testing.T) {
	mean, stdDev := CalculateLuminanceStats(nil)
	assert.Zero(t, mean)
	assert.Zero(t, stdDev)

	mean, stdDev = CalculateLuminanceStats([]byte{255, 255, 255})
	assert.InDelta(t, 1.0, mean, 1e-9)
	assert.Zero(t, stdDev)

	// Black and white: mean 0.5, sample standard deviation sqrt(0.5)
	mean, stdDev = CalculateLuminanceStats([]byte{0, 0, 0, 255, 255, 255})
	assert.InDelta(t, 0.5, mean, 1e-9)
	assert.InDelta(t, 0.7071067811865476, stdDev, 1e-9)

	// A uniform image has no spread
	mean, stdDev = CalculateLuminanceStats([]byte{51, 51, 51, 51, 51, 51, 51, 51, 51})
	assert.InDelta(t, 0.2, mean, 1e-9)
	assert.InDelta(t, 0.0, stdDev, 1e-9)
}

func TestRenderStats_Summary(t *testing.T) {
	stats := RenderStats{TotalPixels: 202200, Workers: 4, Elapsed: 1500 * time.Millisecond}
	stats.SetSampling(100)
	stats.SetLuminance([]byte{255, 255, 255})

	assert.Equal(t, 20220000, stats.TotalSamples)

	summary := stats.String()
	for _, want := range []string{"202,200 pixels", "20,220,000 samples", "(100 spp)", "4 workers", "1.5s", "luminance 1.000"} {
		assert.True(t, strings.Contains(summary, want), "summary %q missing %q", summary, want)
	}
}
