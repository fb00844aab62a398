package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Hit records the nearest surface a ray strikes
type Hit struct {
	Index int     // Index into the shape list, -1 if nothing was hit
	T     float64 // Parametric distance along the ray, +Inf if nothing was hit
}

// NoHit is returned when a ray misses every shape
var NoHit = Hit{Index: -1, T: math.Inf(1)}

// Ok reports whether the ray hit anything
func (h Hit) Ok() bool {
	return h.Index >= 0
}

// NearestHit scans shapes in order and returns the closest positive hit.
// Exact ties go to the later shape.
func NearestHit(ray core.Ray, shapes []Shape) Hit {
	best := NoHit

	for i, shape := range shapes {
		t := shape.Intersect(ray)
		if t > 0 && t <= best.T {
			best = Hit{Index: i, T: t}
		}
	}

	return best
}

// Occluded reports whether any shape other than skip lies strictly between
// the ray origin and maxDist along the ray.
func Occluded(ray core.Ray, maxDist float64, shapes []Shape, skip int) bool {
	for i, shape := range shapes {
		if i == skip {
			continue
		}
		if t := shape.Intersect(ray); t > 0 && t < maxDist {
			return true
		}
	}
	return false
}
