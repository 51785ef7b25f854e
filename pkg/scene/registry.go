package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

type sceneFactory struct {
	info  SceneInfo
	build func(renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]sceneFactory{
	"default": {
		info: SceneInfo{ID: "default", Description: "Diffuse sphere on a ground sphere"},
		build: func(c renderer.CameraConfig) *Scene {
			return NewDefaultScene(c)
		},
	},
	"single-sphere": {
		info: SceneInfo{ID: "single-sphere", Description: "One sphere against the sky"},
		build: func(c renderer.CameraConfig) *Scene {
			return NewSingleSphereScene(c)
		},
	},
	"spheregrid": {
		info: SceneInfo{ID: "spheregrid", Description: "8x8 grid of small spheres on the ground"},
		build: func(c renderer.CameraConfig) *Scene {
			return NewSphereGridScene(8, c)
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, f := range builtinScenes {
		scenes = append(scenes, f.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewScene builds the named built-in scene with the given camera
func NewScene(id string, cameraConfig renderer.CameraConfig) (*Scene, error) {
	f, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return f.build(cameraConfig), nil
}
