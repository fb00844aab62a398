package material

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// DefaultShininess is the Phong exponent used when a scene omits ns
const DefaultShininess = 20.0

// Phong describes a surface for local illumination.
// Reflectivity, Refractivity and IOR are carried from the scene file but are
// not used by the shading model: there is no recursive transport.
type Phong struct {
	Diffuse      core.Vec3 // Diffuse reflectance, each channel in [0,1]
	Specular     core.Vec3 // Specular reflectance, each channel in [0,1]
	Reflectivity float64
	Refractivity float64
	IOR          float64
}

// NewPhong creates a material with the given diffuse and specular colors
func NewPhong(diffuse, specular core.Vec3) Phong {
	return Phong{Diffuse: diffuse, Specular: specular}
}

// DiffuseTerm returns max(N·L, 0) * Kd * I.
// n and l must be unit vectors, l pointing from the surface toward the light.
func (p Phong) DiffuseTerm(n, l, lightColor core.Vec3) core.Vec3 {
	nl := n.Dot(l)
	if nl <= 0 {
		return core.Vec3{}
	}
	return p.Diffuse.MultiplyVec(lightColor).Multiply(nl)
}

// SpecularTerm returns Ks * I * (V·R)^ns with R = L - 2(N·L)N, or zero when
// the light is behind the surface or the highlight faces away from the viewer.
// v is the incoming view ray direction.
func (p Phong) SpecularTerm(n, l, v, lightColor core.Vec3, ns float64) core.Vec3 {
	nl := n.Dot(l)
	if nl <= 0 {
		return core.Vec3{}
	}
	r := Reflect(l, n)
	vr := v.Dot(r)
	if vr <= 0 {
		return core.Vec3{}
	}
	return p.Specular.MultiplyVec(lightColor).Multiply(math.Pow(vr, ns))
}

// Reflect mirrors l about the plane perpendicular to n: l - 2(n·l)n
func Reflect(l, n core.Vec3) core.Vec3 {
	return l.Subtract(n.Multiply(2 * n.Dot(l)))
}
