package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type builtin struct {
	info SceneInfo
	new  func() *Scene
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{ID: "default", DisplayName: "Default", Description: "Three spheres on a floor lit by two point lights"},
		new:  NewDefaultScene,
	},
	"spotlight": {
		info: SceneInfo{ID: "spotlight", DisplayName: "Spotlight", Description: "A sphere and floor under a spot light cone"},
		new:  NewSpotlightScene,
	},
	"plane": {
		info: SceneInfo{ID: "plane", DisplayName: "Unlit plane", Description: "A single plane and no lights; renders black"},
		new:  NewPlaneOnlyScene,
	},
}

// Lookup returns a fresh copy of the named built-in scene
func Lookup(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene: %q", name)
	}
	return b.new(), nil
}

// ListBuiltin returns the built-in scenes sorted by ID
func ListBuiltin() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// NewDefaultScene creates a default scene with spheres, a floor and two lights
func NewDefaultScene() *Scene {
	red := material.NewPhong(core.NewVec3(0.9, 0.1, 0.1), core.NewVec3(0.6, 0.6, 0.6))
	green := material.NewPhong(core.NewVec3(0.1, 0.8, 0.2), core.NewVec3(0.3, 0.3, 0.3))
	blue := material.NewPhong(core.NewVec3(0.2, 0.3, 0.9), core.NewVec3(0.8, 0.8, 0.8))
	floor := material.NewPhong(core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0, 0, 0))

	return MustNew(
		NewCamera(1.6, 0.9),
		geometry.NewSphere(core.NewVec3(0, 0, 6), 1, red),
		geometry.NewSphere(core.NewVec3(-2, -0.4, 8), 0.6, green),
		geometry.NewSphere(core.NewVec3(1.8, 0.2, 7), 0.8, blue),
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor),
		lights.NewPointLight(core.NewVec3(4, 5, 2), core.NewVec3(1, 1, 1), 0.2, 0.05, 0.01),
		lights.NewPointLight(core.NewVec3(-3, 2, 0), core.NewVec3(0.4, 0.4, 0.5), 1, 0, 0),
	)
}

// NewSpotlightScene creates a scene lit by a single spot light from above
func NewSpotlightScene() *Scene {
	white := material.NewPhong(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(1, 1, 1))
	floor := material.NewPhong(core.NewVec3(0.8, 0.7, 0.5), core.NewVec3(0, 0, 0))

	return MustNew(
		NewCamera(1, 1),
		geometry.NewSphere(core.NewVec3(0, 0, 5), 0.8, white),
		geometry.NewPlane(core.NewVec3(0, -0.8, 0), core.NewVec3(0, 1, 0), floor),
		lights.NewSpotLight(core.NewVec3(0, 4, 5), core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1),
			20*math.Pi/180, 2, 0.5, 0.1, 0),
	)
}

// NewPlaneOnlyScene creates a scene with a single plane and no lights
func NewPlaneOnlyScene() *Scene {
	return MustNew(
		NewCamera(1, 1),
		geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0),
			material.NewPhong(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1))),
	)
}
