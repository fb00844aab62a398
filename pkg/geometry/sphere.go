package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Phong  material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, phong material.Phong) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Phong:  phong,
	}
}

// ObjectType identifies the sphere variant of a scene object
func (s *Sphere) ObjectType() string { return "sphere" }

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) float64 {
	return SphereIntersect(ray.Origin, ray.Direction, s.Center, s.Radius)
}

// NormalAt returns the outward unit normal at point
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Phong {
	return s.Phong
}

// SphereIntersect solves |O + tD - C|² = r² for the smallest positive t.
// It returns -1 when the ray misses or both roots are behind the origin.
func SphereIntersect(origin, dir, center core.Vec3, radius float64) float64 {
	// Quadratic equation coefficients: at² + bt + c = 0
	a := dir.LengthSquared()
	b := 2 * (origin.Dot(dir) - dir.Dot(center))
	c := origin.LengthSquared() + center.LengthSquared() - 2*origin.Dot(center) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return -1
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	t0 := (-b - sqrtD) / (2 * a)
	if t0 > 0 {
		return t0
	}
	t1 := (-b + sqrtD) / (2 * a)
	if t1 > 0 {
		return t1
	}

	return -1
}
