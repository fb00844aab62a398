package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// ParallelEpsilon is the smallest |N·D| (unit normal, unit direction) that
// still counts as crossing a plane. Anything below is a parallel ray.
const ParallelEpsilon = 1e-8

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Normal vector, not required to be unit length
	Phong  material.Phong
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, phong material.Phong) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal,
		Phong:  phong,
	}
}

// ObjectType identifies the plane variant of a scene object
func (p *Plane) ObjectType() string { return "plane" }

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) float64 {
	return PlaneIntersect(ray.Origin, ray.Direction, p.Point, p.Normal)
}

// NormalAt returns the plane's unit normal. Planes are not flipped toward the viewer.
func (p *Plane) NormalAt(core.Vec3) core.Vec3 {
	return p.Normal.Normalize()
}

// Material returns the plane's material
func (p *Plane) Material() material.Phong {
	return p.Phong
}

// PlaneIntersect solves N·(O + tD - P) = 0 for t.
// It returns -1 for hits at or behind the origin, for rays parallel to the
// plane, and for any non-finite result.
func PlaneIntersect(origin, dir, point, normal core.Vec3) float64 {
	n := normal.Normalize()
	denominator := n.Dot(dir)

	// If denominator is close to zero, ray is parallel to plane (no intersection)
	if math.Abs(denominator) < ParallelEpsilon*dir.Length() || n.IsZero() {
		return -1
	}

	t := -(n.Dot(origin) - n.Dot(point)) / denominator
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return -1
	}
	return t
}
