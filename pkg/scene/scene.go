package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering: a flat list of
// primitives, the material arena they index into, the camera and the
// background. Scenes are built once and treated as read-only afterwards.
type Scene struct {
	Name         string
	Materials    []material.Material
	Primitives   []geometry.Primitive
	CameraConfig renderer.CameraConfig
	Background   renderer.Background
}

// New creates an empty scene with the default camera and gradient sky
func New(name string) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: renderer.DefaultCameraConfig(),
		Background:   renderer.GradientBackground(),
	}
}

// AddMaterial appends a material to the arena and returns its handle
func (s *Scene) AddMaterial(m material.Material) material.ID {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSphere adds a sphere that uses the material with handle mat
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.ID) {
	s.Primitives = append(s.Primitives, geometry.NewSpherePrimitive(center, radius, mat))
}

// GetPrimitives returns the primitives of the scene
func (s *Scene) GetPrimitives() []geometry.Primitive {
	return s.Primitives
}

// GetMaterials returns the material arena of the scene
func (s *Scene) GetMaterials() []material.Material {
	return s.Materials
}

// CameraFor returns the scene camera with its aspect ratio matched to the image
func (s *Scene) CameraFor(width, height int) renderer.CameraConfig {
	cfg := s.CameraConfig
	if width > 0 && height > 0 {
		cfg.AspectRatio = float64(width) / float64(height)
	}
	return cfg
}

// Validate checks materials, primitive handles and the camera
func (s *Scene) Validate() error {
	for i := range s.Materials {
		if err := s.Materials[i].Validate(); err != nil {
			return fmt.Errorf("scene %q material %d: %w", s.Name, i, err)
		}
	}
	for i, p := range s.Primitives {
		if p.Material < 0 || p.Material >= len(s.Materials) {
			return fmt.Errorf("scene %q primitive %d references missing material %d", s.Name, i, p.Material)
		}
		if p.Kind == geometry.ShapeSphere && p.Sphere.Radius == 0 {
			return fmt.Errorf("scene %q primitive %d has zero radius", s.Name, i)
		}
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}
