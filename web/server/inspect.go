package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Primitive    int                    `json:"primitive"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo describes a material for the client
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	case material.KindEmissive:
		properties["emission"] = vecArray(mat.Emission)
		properties["color"] = hexColor(mat.Emission)
	}
	return mat.Kind.String(), properties
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// InspectResult describes the first surface seen through a pixel
type InspectResult struct {
	Hit       bool
	Record    core.HitRecord
	Primitive int // Index of the primitive hit, -1 when not found
}

// inspectPixel casts a ray through the center of pixel (pixelX, pixelY), with
// row 0 at the top, and returns the closest hit
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) (InspectResult, error) {
	camera, err := renderer.NewCamera(sc.CameraFor(width, height))
	if err != nil {
		return InspectResult{}, err
	}

	// A fixed generator keeps the lens sample stable between requests
	random := core.NewRandom(0, core.PixelStream(uint64(pixelY*width+pixelX)))
	s := (float64(pixelX) + 0.5) / float64(width)
	t := (float64(height-1-pixelY) + 0.5) / float64(height)
	ray := camera.GetRay(s, t, random)

	interval := core.NewInterval(renderer.ShadowEpsilon, math.Inf(1))
	bvh := geometry.NewBVH(sc.Primitives, geometry.DefaultBuildOptions())
	hit, isHit := bvh.Hit(ray, interval)
	if !isHit {
		return InspectResult{Hit: false, Primitive: -1}, nil
	}

	// The BVH reports the surface but not which primitive it belongs to
	for i, p := range sc.Primitives {
		if primHit, ok := p.Hit(ray, interval); ok && primHit.T == hit.T {
			return InspectResult{Hit: true, Record: hit, Primitive: i}, nil
		}
	}
	return InspectResult{Hit: true, Record: hit, Primitive: -1}, nil
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	req, err := parseRenderRequest(values)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, errors.New("invalid x coordinate"))
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, errors.New("invalid y coordinate"))
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		return jsonError(c, http.StatusBadRequest, errors.New("pixel coordinates out of bounds"))
	}

	sc, err := scene.Resolve(req.Scene, s.cfg.ScenesDir, req.Seed)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	result, err := inspectPixel(sc, req.Width, req.Height, pixelX, pixelY)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	if !result.Hit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, Primitive: -1})
	}

	materialType, properties := extractMaterialInfo(sc.Materials[result.Record.Material])
	if result.Primitive >= 0 {
		sphere := sc.Primitives[result.Primitive].Sphere
		properties["center"] = vecArray(sphere.Center)
		properties["radius"] = sphere.Radius
	}

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Primitive:    result.Primitive,
		Point:        vecArray(result.Record.Point),
		Normal:       vecArray(result.Record.Normal),
		Distance:     result.Record.T,
		FrontFace:    result.Record.FrontFace,
		Properties:   properties,
	})
}
