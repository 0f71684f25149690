package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vecJSON(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// colorHex formats a color as #aarrggbb
func colorHex(c core.Color) string {
	channel := func(v float64) int {
		return int(255*min(max(v, 0), 1) + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.A), channel(c.R), channel(c.G), channel(c.B))
}

// extractMaterialInfo describes a material and its parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color":   colorHex(mat.BaseColor()),
		"opacity": mat.Opacity(),
	}

	switch m := mat.(type) {
	case *material.Diffuse:
		return "diffuse", properties

	case *material.Specular:
		properties["specularity"] = m.Specularity
		properties["shininess"] = m.Shininess
		return "specular", properties

	case *material.Glow:
		properties["intensity"] = m.Intensity
		return "glow", properties

	case *material.Reflective:
		properties["reflectiveness"] = m.Reflectiveness
		underlyingType, underlyingProps := extractMaterialInfo(m.Underlying)
		properties["underlying"] = map[string]interface{}{
			"type":       underlyingType,
			"properties": underlyingProps,
		}
		return "reflective", properties

	case *material.Refractive:
		properties["refractiveness"] = m.Refractiveness
		properties["refractiveIndex"] = vecJSON(m.RefractiveIndex)
		underlyingType, underlyingProps := extractMaterialInfo(m.Underlying)
		properties["underlying"] = map[string]interface{}{
			"type":       underlyingType,
			"properties": underlyingProps,
		}
		return "refractive", properties

	default:
		panic(fmt.Sprintf("server: unsupported material %T", mat))
	}
}

// extractGeometryInfo describes a shape and its dimensions
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecJSON(geom.A), vecJSON(geom.B), vecJSON(geom.C)}
		return "triangle", properties

	case *geometry.Plane:
		first, second := geom.Triangles()
		properties["corners"] = [4][3]float64{vecJSON(first.A), vecJSON(first.B), vecJSON(second.B), vecJSON(first.C)}
		return "plane", properties

	case *geometry.Sphere:
		properties["center"] = vecJSON(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Volume:
		bbox := geom.BoundingBox()
		properties["center"] = vecJSON(geom.Center)
		properties["boundingBox"] = map[string]interface{}{
			"min": vecJSON(bbox.Min),
			"max": vecJSON(bbox.Max),
		}
		return "volume", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the center ray of pixel (x, y), row 0 at the top, and
// describes the first object it hits
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	camera := renderer.NewCamera(sc.Camera, sc.Sampling.Width, sc.Sampling.Height, 1)
	ray := camera.CenterRay(x, y)

	shape, hit, ok := sc.NearestHit(ray)
	if !ok {
		return InspectResponse{Hit: false}
	}

	point := ray.At(hit.Distance)
	materialType, materialProps := extractMaterialInfo(shape.Material())
	geometryType, geometryProps := extractGeometryInfo(shape)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecJSON(point),
		Normal:       vecJSON(shape.NormalAt(point)),
		Distance:     hit.Distance,
		Inside:       hit.Inside,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	req, err := parseRenderRequest(values)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	if pixelX < 0 || pixelX >= req.Sampling.Width || pixelY < 0 || pixelY >= req.Sampling.Height {
		return errorJSON(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	sc, err := scene.LoadByID(req.Scene, s.scenesDir, req.Sampling)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, inspectPixel(sc, pixelX, pixelY))
}
