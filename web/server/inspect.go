package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShapeIndex   int                    `json:"shapeIndex"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"`
	Shadowed     []int                  `json:"shadowedLights"` // Indices of lights blocked at the hit point
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes what the ray through one pixel hits
type InspectResult struct {
	Hit      geometry.Hit
	Ray      core.Ray
	Shape    geometry.Shape
	Color    core.Vec3
	Shadowed []int
}

// inspectPixel casts the ray through image pixel (x, y), with y counted from the
// top row, and shades the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) InspectResult {
	camera := renderer.NewCamera(sceneObj.Camera(), width, height)
	ray := camera.GetRay(x, height-1-y)

	result := InspectResult{Ray: ray, Hit: geometry.NearestHit(ray, sceneObj.Shapes()), Shadowed: []int{}}
	if !result.Hit.Ok() {
		return result
	}

	shapes := sceneObj.Shapes()
	result.Shape = shapes[result.Hit.Index]

	phong := integrator.NewPhongIntegrator()
	result.Color = phong.Shade(ray, result.Hit, sceneObj)

	point := ray.At(result.Hit.T)
	for i, light := range sceneObj.Lights() {
		if phong.InShadow(point, result.Hit.Index, light, shapes) {
			result.Shadowed = append(result.Shadowed, i)
		}
	}
	return result
}

// handleInspect reports the surface seen through one pixel of a built-in scene
func (s *Server) handleInspect(c echo.Context) error {
	sceneObj, err := scene.Lookup(c.Param("scene"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	req, err := parseRenderRequest(c, sceneObj)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid scene parameters: %v", err))
	}

	x, err := parseIntParam(c, "x", -1, 0, req.Width-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	y, err := parseIntParam(c, "y", -1, 0, req.Height-1)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if x < 0 || y < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "x and y are required")
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, x, y)
	if !result.Hit.Ok() {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, ShapeIndex: -1, Shadowed: result.Shadowed})
	}

	point := result.Ray.At(result.Hit.T)
	normal := result.Shape.NormalAt(point)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		ShapeIndex:   result.Hit.Index,
		GeometryType: geometryType,
		Point:        toArray(point),
		Normal:       toArray(normal),
		Distance:     result.Hit.T,
		Color:        toArray(result.Color),
		Shadowed:     result.Shadowed,
		Properties: map[string]interface{}{
			"geometry": geometryProps,
			"material": extractMaterialInfo(result.Shape.Material()),
		},
	})
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return geom.ObjectType(), properties
	case *geometry.Plane:
		properties["point"] = toArray(geom.Point)
		properties["normal"] = toArray(geom.Normal)
		return geom.ObjectType(), properties
	default:
		return "unknown", properties
	}
}

func extractMaterialInfo(mat material.Phong) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":      toArray(mat.Diffuse),
		"specular":     toArray(mat.Specular),
		"reflectivity": mat.Reflectivity,
		"refractivity": mat.Refractivity,
		"ior":          mat.IOR,
	}
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
