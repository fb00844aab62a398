package renderer

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Camera maps output pixels onto the scene camera's view plane.
// The eye is fixed at the origin looking down +Z with the view plane at z = 1.
type Camera struct {
	viewWidth   float64
	viewHeight  float64
	pixelWidth  float64
	pixelHeight float64
}

// NewCamera creates a pixel mapping for an image of width x height pixels
func NewCamera(cam *scene.Camera, width, height int) *Camera {
	return &Camera{
		viewWidth:   cam.Width,
		viewHeight:  cam.Height,
		pixelWidth:  cam.Width / float64(width),
		pixelHeight: cam.Height / float64(height),
	}
}

// ViewPoint returns the view plane coordinates of the center of pixel (j, k).
// Row k counts up from the bottom of the view plane.
func (c *Camera) ViewPoint(j, k int) (vx, vy float64) {
	vx = -c.viewWidth/2 + c.pixelWidth*(float64(j)+0.5)
	vy = -c.viewHeight/2 + c.pixelHeight*(float64(k)+0.5)
	return vx, vy
}

// GetRay returns the unit camera ray through the center of pixel (j, k)
func (c *Camera) GetRay(j, k int) core.Ray {
	vx, vy := c.ViewPoint(j, k)
	return core.NewRay(core.Vec3{}, core.NewVec3(vx, vy, 1).Normalize())
}
