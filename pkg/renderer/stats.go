package renderer

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Workers         int           // Number of workers used
	TasksDispatched int           // Pixel tasks handed to workers
	Elapsed         time.Duration // Wall time of the render
	MeanLuminance   float64       // Mean luminance of the final 8-bit image, in [0,1]
	LuminanceStdDev float64       // Standard deviation of that luminance
}

// SetSampling records the per-pixel sample count
func (s *RenderStats) SetSampling(samplesPerPixel int) {
	s.SamplesPerPixel = samplesPerPixel
	s.TotalSamples = s.TotalPixels * samplesPerPixel
}

// SetLuminance records luminance statistics of the finalized image
func (s *RenderStats) SetLuminance(pix []byte) {
	s.MeanLuminance, s.LuminanceStdDev = CalculateLuminanceStats(pix)
}

// String returns a one-line human readable summary
func (s RenderStats) String() string {
	return fmt.Sprintf("%s pixels, %s samples (%d spp) on %d workers in %v, luminance %.3f ± %.3f",
		humanize.Comma(int64(s.TotalPixels)),
		humanize.Comma(int64(s.TotalSamples)),
		s.SamplesPerPixel,
		s.Workers,
		s.Elapsed.Round(time.Millisecond),
		s.MeanLuminance,
		s.LuminanceStdDev,
	)
}

// pixelLuminances converts packed RGB bytes to per-pixel luminance in [0,1]
func pixelLuminances(pix []byte) []float64 {
	lum := make([]float64, 0, len(pix)/3)
	for i := 0; i+2 < len(pix); i += 3 {
		c := core.NewVec3(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2])).Divide(255)
		lum = append(lum, c.Luminance())
	}
	return lum
}

// CalculateAverageLuminance returns the mean luminance of packed RGB bytes
func CalculateAverageLuminance(pix []byte) float64 {
	mean, _ := CalculateLuminanceStats(pix)
	return mean
}

// CalculateLuminanceStats returns mean and standard deviation of the
// luminance of packed RGB bytes. An empty buffer yields zeros.
func CalculateLuminanceStats(pix []byte) (mean, stdDev float64) {
	lum := pixelLuminances(pix)
	switch len(lum) {
	case 0:
		return 0, 0
	case 1:
		return lum[0], 0
	}
	return stat.MeanStdDev(lum, nil)
}
