package lights

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/material"
)

// Light is a point light, optionally restricted to a cone (spot light).
//
// A zero Direction means the light is omni-directional. AngularA0 == 0 marks
// a non-spot light whose angular attenuation is always 1.
type Light struct {
	Position  core.Vec3
	Direction core.Vec3 // Spot axis, not required to be unit length
	Color     core.Vec3 // Intensity per channel in [0,1]
	Theta     float64   // Spot half-angle in radians
	RadialA0  float64   // Constant radial attenuation coefficient
	RadialA1  float64   // Linear radial attenuation coefficient
	RadialA2  float64   // Quadratic radial attenuation coefficient
	AngularA0 float64   // Spot falloff exponent, 0 for non-spot lights
	Ns        float64   // Phong shininess exponent applied to surfaces lit by this light
}

// NewPointLight creates an omni-directional light with the given radial falloff
func NewPointLight(position, color core.Vec3, a0, a1, a2 float64) *Light {
	return &Light{
		Position: position,
		Color:    color,
		RadialA0: a0,
		RadialA1: a1,
		RadialA2: a2,
		Ns:       material.DefaultShininess,
	}
}

// NewSpotLight creates a spot light aimed along direction with half-angle theta (radians)
func NewSpotLight(position, direction, color core.Vec3, theta, angularA0 float64, a0, a1, a2 float64) *Light {
	return &Light{
		Position:  position,
		Direction: direction,
		Color:     color,
		Theta:     theta,
		RadialA0:  a0,
		RadialA1:  a1,
		RadialA2:  a2,
		AngularA0: angularA0,
		Ns:        material.DefaultShininess,
	}
}

// ObjectType identifies the light variant of a scene object
func (l *Light) ObjectType() string { return "light" }

// IsSpot reports whether angular attenuation applies
func (l *Light) IsSpot() bool {
	return l.AngularA0 != 0
}

// Sample returns the unit direction from point toward the light and the distance to it
func (l *Light) Sample(point core.Vec3) (direction core.Vec3, distance float64) {
	toLight := l.Position.Subtract(point)
	return toLight.Normalize(), toLight.Length()
}

// RadialAttenuation returns 1 / (a2·d² + a1·d + a0) for the distance d from
// the light to point. Infinite distance and a non-positive denominator give 1.
func (l *Light) RadialAttenuation(point core.Vec3) float64 {
	d := l.Position.Subtract(point).Length()
	if math.IsInf(d, 1) {
		return 1
	}
	denominator := l.RadialA2*d*d + l.RadialA1*d + l.RadialA0
	if denominator <= 0 || math.IsNaN(denominator) {
		return 1
	}
	return 1 / denominator
}

// AngularAttenuation returns cos(α)^AngularA0 where α is the angle between
// the spot axis and the ray from the light to point, or 0 outside the cone.
// Non-spot lights always return 1.
func (l *Light) AngularAttenuation(point core.Vec3) float64 {
	if !l.IsSpot() {
		return 1
	}

	axis := l.Direction.Normalize()
	toPoint := point.Subtract(l.Position).Normalize()
	cosAlpha := axis.Dot(toPoint)

	if cosAlpha < math.Cos(l.Theta) {
		return 0
	}
	return math.Pow(cosAlpha, l.AngularA0)
}
