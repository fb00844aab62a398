package loaders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/scene"
)

// jsonVec3 is a three element JSON array of numbers
type jsonVec3 core.Vec3

func (v *jsonVec3) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("expected [x, y, z]: %v", err)
	}
	if len(values) != 3 {
		return fmt.Errorf("expected 3 components, got %d", len(values))
	}
	*v = jsonVec3{X: values[0], Y: values[1], Z: values[2]}
	return nil
}

func (v *jsonVec3) vec() core.Vec3 {
	if v == nil {
		return core.Vec3{}
	}
	return core.Vec3(*v)
}

// SceneObjectJSON is one entry of a JSON scene file
type SceneObjectJSON struct {
	Type string `json:"type"`

	// Camera
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	// Sphere and plane
	Position      *jsonVec3 `json:"position,omitempty"`
	Radius        *float64  `json:"radius,omitempty"`
	Normal        *jsonVec3 `json:"normal,omitempty"`
	DiffuseColor  *jsonVec3 `json:"diffuse_color,omitempty"`
	SpecularColor *jsonVec3 `json:"specular_color,omitempty"`
	Reflectivity  *float64  `json:"reflectivity,omitempty"`
	Refractivity  *float64  `json:"refractivity,omitempty"`
	IOR           *float64  `json:"ior,omitempty"`

	// Light; color is also the legacy diffuse color of spheres and planes
	Color     *jsonVec3 `json:"color,omitempty"`
	Direction *jsonVec3 `json:"direction,omitempty"`
	Theta     *float64  `json:"theta,omitempty"`
	RadialA0  *float64  `json:"radial-a0,omitempty"`
	RadialA1  *float64  `json:"radial-a1,omitempty"`
	RadialA2  *float64  `json:"radial-a2,omitempty"`
	AngularA0 *float64  `json:"angular-a0,omitempty"`
	Ns        *float64  `json:"ns,omitempty"`
}

var surfaceKeys = []string{"position", "diffuse_color", "specular_color", "color", "reflectivity", "refractivity", "ior"}

// allowedKeys lists the properties each object type accepts besides "type"
var allowedKeys = map[string][]string{
	"camera": {"width", "height"},
	"sphere": append([]string{"radius"}, surfaceKeys...),
	"plane":  append([]string{"normal"}, surfaceKeys...),
	"light":  {"position", "direction", "color", "theta", "radial-a0", "radial-a1", "radial-a2", "angular-a0", "ns"},
}

// requiredKeys lists the properties each object type must provide
var requiredKeys = map[string][]string{
	"camera": {"width", "height"},
	"sphere": {"position", "radius"},
	"plane":  {"position", "normal"},
	"light":  {"position", "color"},
}

// ParseScene parses a JSON scene description and validates it
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	var raw []json.RawMessage
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("scene must be a JSON array of objects: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected data after scene array")
	}
	if len(raw) == 0 {
		return nil, scene.ErrEmptyScene
	}

	objects := make([]scene.Object, 0, len(raw))
	for i, data := range raw {
		obj, err := parseObject(data)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects = append(objects, obj)
	}

	return scene.New(objects...)
}

// LoadScene loads and parses a JSON scene file
func LoadScene(filename string) (*scene.Scene, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename cannot be empty")
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseScene(file)
}

func parseObject(data json.RawMessage) (scene.Object, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("expected a JSON object: %w", err)
	}

	typeValue, ok := keys["type"]
	if !ok {
		return nil, fmt.Errorf("missing \"type\" key")
	}
	var objectType string
	if err := json.Unmarshal(typeValue, &objectType); err != nil {
		return nil, fmt.Errorf("\"type\" must be a string")
	}

	allowed, ok := allowedKeys[objectType]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", objectType)
	}
	if err := checkKeys(objectType, keys, allowed); err != nil {
		return nil, err
	}

	var obj SceneObjectJSON
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%s: %w", objectType, err)
	}

	switch objectType {
	case "camera":
		return scene.NewCamera(*obj.Width, *obj.Height), nil
	case "sphere":
		return geometry.NewSphere(obj.Position.vec(), *obj.Radius, obj.phong()), nil
	case "plane":
		return geometry.NewPlane(obj.Position.vec(), obj.Normal.vec(), obj.phong()), nil
	default:
		return obj.light(), nil
	}
}

func checkKeys(objectType string, keys map[string]json.RawMessage, allowed []string) error {
	var unknown []string
	for key, value := range keys {
		if string(bytes.TrimSpace(value)) == "null" {
			return fmt.Errorf("%s property %q must not be null", objectType, key)
		}
		if key == "type" || contains(allowed, key) {
			continue
		}
		unknown = append(unknown, key)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown %s property %s", objectType, strings.Join(unknown, ", "))
	}

	for _, key := range requiredKeys[objectType] {
		if _, ok := keys[key]; !ok {
			return fmt.Errorf("%s is missing required property %q", objectType, key)
		}
	}
	return nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (o *SceneObjectJSON) phong() material.Phong {
	diffuse := o.DiffuseColor
	if diffuse == nil {
		diffuse = o.Color
	}
	return material.Phong{
		Diffuse:      diffuse.vec(),
		Specular:     o.SpecularColor.vec(),
		Reflectivity: valueOr(o.Reflectivity, 0),
		Refractivity: valueOr(o.Refractivity, 0),
		IOR:          valueOr(o.IOR, 1),
	}
}

func (o *SceneObjectJSON) light() *lights.Light {
	return &lights.Light{
		Position:  o.Position.vec(),
		Direction: o.Direction.vec(),
		Color:     o.Color.vec(),
		Theta:     valueOr(o.Theta, 0),
		RadialA0:  valueOr(o.RadialA0, 0),
		RadialA1:  valueOr(o.RadialA1, 0),
		RadialA2:  valueOr(o.RadialA2, 0),
		AngularA0: valueOr(o.AngularA0, 0),
		Ns:        valueOr(o.Ns, material.DefaultShininess),
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
