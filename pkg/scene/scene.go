package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is assembled once and then only read, so workers share it directly.
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.ShapeList // Objects in the scene
	TopColor     core.Vec3           // Sky color straight up (zenith)
	BottomColor  core.Vec3           // Sky color straight down (horizon)
}

// DefaultSky returns the white-to-blue sky gradient
func DefaultSky() (top, bottom core.Vec3) {
	return core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)
}

// newScene creates an empty scene with the default sky
func newScene(cameraConfig renderer.CameraConfig) *Scene {
	top, bottom := DefaultSky()
	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        geometry.NewShapeList(),
		TopColor:     top,
		BottomColor:  bottom,
	}
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64) {
	s.World.Add(geometry.NewSphere(center, radius))
}

// SetBackgroundColors overrides the sky gradient
func (s *Scene) SetBackgroundColors(top, bottom core.Vec3) {
	s.TopColor = top
	s.BottomColor = bottom
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColors returns the sky gradient colors
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetWorld returns all scene geometry as a single shape
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
