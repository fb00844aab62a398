package integrator

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Integrator defines the interface for computing the color seen along a ray
type Integrator interface {
	// RayColor returns the unclamped linear color for a camera ray
	RayColor(ray core.Ray, scene *scene.Scene) core.Vec3
}
