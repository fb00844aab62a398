package integrator

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/scene"
)

// PhongIntegrator shades the nearest hit with direct illumination from every
// unoccluded light. There is no ambient term and no secondary bounce.
type PhongIntegrator struct{}

// NewPhongIntegrator creates a new Phong integrator
func NewPhongIntegrator() *PhongIntegrator {
	return &PhongIntegrator{}
}

// RayColor returns black on a miss, otherwise the shaded color of the nearest surface
func (pi *PhongIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	hit := geometry.NearestHit(ray, s.Shapes())
	if !hit.Ok() {
		return core.Vec3{}
	}
	return pi.Shade(ray, hit, s)
}

// Shade sums the contribution of every light at the hit point
func (pi *PhongIntegrator) Shade(ray core.Ray, hit geometry.Hit, s *scene.Scene) core.Vec3 {
	shapes := s.Shapes()
	shape := shapes[hit.Index]

	point := ray.At(hit.T)
	normal := shape.NormalAt(point)

	color := core.Vec3{}
	for _, light := range s.Lights() {
		if pi.InShadow(point, hit.Index, light, shapes) {
			continue
		}
		contribution := pi.LightContribution(shape, point, normal, ray.Direction, light)
		// Degenerate lights (e.g. a cone wider than a hemisphere with a
		// fractional exponent) must not poison the other lights
		if !contribution.IsFinite() {
			continue
		}
		color = color.Add(contribution)
	}

	return color
}

// InShadow reports whether any surface other than the one being shaded lies
// strictly between point and the light
func (pi *PhongIntegrator) InShadow(point core.Vec3, shapeIndex int, light *lights.Light, shapes []geometry.Shape) bool {
	toLight, distance := light.Sample(point)
	shadowRay := core.NewRay(point, toLight)
	return geometry.Occluded(shadowRay, distance, shapes, shapeIndex)
}

// LightContribution returns frad * fang * (diffuse + specular) for one light,
// ignoring visibility
func (pi *PhongIntegrator) LightContribution(shape geometry.Shape, point, normal, view core.Vec3, light *lights.Light) core.Vec3 {
	toLight, _ := light.Sample(point)
	mat := shape.Material()

	diffuse := mat.DiffuseTerm(normal, toLight, light.Color)
	specular := mat.SpecularTerm(normal, toLight, view, light.Color, light.Ns)

	attenuation := light.RadialAttenuation(point) * light.AngularAttenuation(point)
	return diffuse.Add(specular).Multiply(attenuation)
}
