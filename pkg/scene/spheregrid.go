package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewSphereGridScene creates a gridSize x gridSize field of small spheres on
// the ground sphere, receding away from the camera.
func NewSphereGridScene(gridSize int, cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene(cameraConfigOrDefault(cameraOverrides))

	// Ground sphere, top surface at y = -0.5
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100)

	if gridSize <= 0 {
		return s
	}

	// Grid spans x in [-2, 2] and z in [-1.5, -5.5]
	const width, depth = 4.0, 4.0
	spacing := width / float64(max(gridSize-1, 1))
	radius := min(0.25, spacing*0.35)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - width/2
			z := -1.5 - float64(j)*depth/float64(max(gridSize-1, 1))
			y := -0.5 + radius // sits on the ground

			s.AddSphere(core.NewVec3(x, y, z), radius)
		}
	}

	return s
}
