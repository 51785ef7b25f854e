package renderer

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width              int     // Image width in pixels
	Height             int     // Image height in pixels
	SamplesPerPixel    int     // Number of rays per pixel
	MaxDepth           int     // Maximum ray bounce depth
	TMin               float64 // Minimum hit distance, avoids self-intersection
	DiffuseAttenuation float64 // Fraction of light kept per diffuse bounce
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:              600,
		Height:             337,
		SamplesPerPixel:    100,
		MaxDepth:           50,
		TMin:               0.001,
		DiffuseAttenuation: 0.5,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
	GetWorld() geometry.Shape
}

// Raytracer evaluates the diffuse light transport estimator for a scene.
// It holds no mutable state, so one instance can serve every worker.
type Raytracer struct {
	world       geometry.Shape
	camera      *Camera
	topColor    core.Vec3
	bottomColor core.Vec3
	config      SamplingConfig
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, config SamplingConfig) *Raytracer {
	top, bottom := scene.GetBackgroundColors()
	return &Raytracer{
		world:       scene.GetWorld(),
		camera:      scene.GetCamera(),
		topColor:    top,
		bottomColor: bottom,
		config:      config,
	}
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// backgroundGradient returns a gradient color based on ray direction
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Vec3 {
	return SkyGradient(r, rt.bottomColor, rt.topColor)
}

// SkyGradient blends from horizon (straight down) to zenith (straight up)
// using the y component of the normalized ray direction.
func SkyGradient(r core.Ray, horizon, zenith core.Vec3) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return horizon.Lerp(zenith, t)
}

// RayColor returns the color for a given ray.
//
// Every hit scatters in a uniformly sampled hemisphere around the normal and
// keeps DiffuseAttenuation of the incoming light; there is no cosine term.
// Rays that escape pick up the sky gradient, and running out of depth yields
// black. The bounce chain is unrolled into a loop carrying the attenuation.
func (rt *Raytracer) RayColor(r core.Ray, depth int, random core.Random) core.Vec3 {
	attenuation := 1.0

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(r, rt.config.TMin, math.Inf(1))
		if !isHit {
			return rt.backgroundGradient(r).Multiply(attenuation)
		}

		target := hit.Point.Add(core.RandomInHemisphere(hit.Normal, random))
		r = core.NewRayTo(hit.Point, target)
		attenuation *= rt.config.DiffuseAttenuation
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{}
}

// SamplePixel returns the sum of SamplesPerPixel jittered samples for pixel
// (x, y), where y = 0 is the top row of the image.
func (rt *Raytracer) SamplePixel(x, y int, random core.Random) core.Vec3 {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)
	row := float64(rt.config.Height - 1 - y) // camera v grows upwards

	colorAccum := core.Vec3{}
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(x) + random.Float64()) / width
		v := (row + random.Float64()) / height

		ray := rt.camera.GetRay(u, v)
		colorAccum = colorAccum.Add(rt.RayColor(ray, rt.config.MaxDepth, random))
	}

	return colorAccum
}
