package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

var (
	// ErrEmptyScene is returned for a scene with no objects at all
	ErrEmptyScene = errors.New("scene has no objects")
	// ErrMissingCamera is returned when no camera object is present
	ErrMissingCamera = errors.New("scene has no camera")
	// ErrInvalidCamera is returned when the camera has a non-positive dimension
	ErrInvalidCamera = errors.New("invalid camera size")
	// ErrMultipleCameras is returned when more than one camera is present
	ErrMultipleCameras = errors.New("scene has more than one camera")
	// ErrInvalidSphere is returned for a sphere with a non-positive radius
	ErrInvalidSphere = errors.New("invalid sphere radius")
)

// Object is one entry of a scene description: *Camera, *geometry.Sphere,
// *geometry.Plane or *lights.Light. ObjectType returns the scene file type name.
type Object interface {
	ObjectType() string
}

// Camera defines the view plane extent at distance 1 from the eye at the origin
type Camera struct {
	Width  float64
	Height float64
}

// NewCamera creates a camera with the given view plane size
func NewCamera(width, height float64) *Camera {
	return &Camera{Width: width, Height: height}
}

// ObjectType identifies the camera variant of a scene object
func (c *Camera) ObjectType() string { return "camera" }

// Scene is a validated, ordered list of scene objects.
// It is read-only once constructed.
type Scene struct {
	objects []Object
	camera  *Camera
	shapes  []geometry.Shape
	lights  []*lights.Light
}

// New validates objects and builds a scene. Object order is preserved.
func New(objects ...Object) (*Scene, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}

	s := &Scene{
		objects: make([]Object, 0, len(objects)),
		shapes:  make([]geometry.Shape, 0),
		lights:  make([]*lights.Light, 0),
	}

	for i, obj := range objects {
		switch o := obj.(type) {
		case *Camera:
			if s.camera != nil {
				return nil, fmt.Errorf("object %d: %w", i, ErrMultipleCameras)
			}
			if o.Width <= 0 || o.Height <= 0 {
				return nil, fmt.Errorf("object %d: %w: %gx%g", i, ErrInvalidCamera, o.Width, o.Height)
			}
			s.camera = o
		case *geometry.Sphere:
			if o.Radius <= 0 {
				return nil, fmt.Errorf("object %d: %w: %g", i, ErrInvalidSphere, o.Radius)
			}
			s.shapes = append(s.shapes, o)
		case *geometry.Plane:
			s.shapes = append(s.shapes, o)
		case *lights.Light:
			s.lights = append(s.lights, o)
		case nil:
			return nil, fmt.Errorf("object %d is nil", i)
		default:
			return nil, fmt.Errorf("object %d: unsupported object type %q", i, obj.ObjectType())
		}
		s.objects = append(s.objects, obj)
	}

	if s.camera == nil {
		return nil, ErrMissingCamera
	}

	return s, nil
}

// Objects returns the scene objects in file order
func (s *Scene) Objects() []Object {
	return s.objects
}

// Camera returns the scene's camera
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Shapes returns the spheres and planes in file order
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// Lights returns the lights in file order
func (s *Scene) Lights() []*lights.Light {
	return s.lights
}

// HasSurfaces reports whether there is anything for rays to hit
func (s *Scene) HasSurfaces() bool {
	return len(s.shapes) > 0
}

// MustNew is like New but panics on error. Used for the built-in scenes.
func MustNew(objects ...Object) *Scene {
	s, err := New(objects...)
	if err != nil {
		panic(err)
	}
	return s
}
