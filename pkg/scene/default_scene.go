package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse sphere resting on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene(cameraConfigOrDefault(cameraOverrides))

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100)

	return s
}

// NewSingleSphereScene creates one sphere in front of the camera with no ground
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene(cameraConfigOrDefault(cameraOverrides))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	return s
}

func cameraConfigOrDefault(overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return overrides[0]
	}
	return renderer.DefaultCameraConfig()
}
