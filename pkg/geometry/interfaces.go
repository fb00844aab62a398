package geometry

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Shape interface for surfaces that can be hit by rays
type Shape interface {
	// Intersect returns the parametric distance to the nearest hit in front
	// of the ray origin, or a non-positive value when there is none.
	Intersect(ray core.Ray) float64

	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3

	// Material returns the surface's shading parameters
	Material() material.Phong
}
