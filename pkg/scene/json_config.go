package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalidScene is returned for scene files that cannot be turned into a scene
var ErrInvalidScene = errors.New("invalid scene")

// Vec3Cfg is a vector written as a JSON array of three numbers
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg is the camera block of a scene file
type CameraCfg struct {
	LookFrom      Vec3Cfg  `json:"lookFrom"`
	LookAt        Vec3Cfg  `json:"lookAt"`
	Up            *Vec3Cfg `json:"up,omitempty"` // defaults to +Y
	VFov          float64  `json:"vfov"`
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 focuses on lookAt
}

// BackgroundCfg selects the color of rays that escape the scene
type BackgroundCfg struct {
	Type   string   `json:"type"` // "gradient" or "solid"
	Color  *Vec3Cfg `json:"color,omitempty"`
	Top    *Vec3Cfg `json:"top,omitempty"`
	Bottom *Vec3Cfg `json:"bottom,omitempty"`
}

// MaterialCfg is a named material that spheres refer to by name
type MaterialCfg struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"` // lambertian, metal, dielectric or emissive
	Albedo   Vec3Cfg `json:"albedo,omitempty"`
	Fuzz     float64 `json:"fuzz,omitempty"`
	IOR      float64 `json:"ior,omitempty"`
	Emission Vec3Cfg `json:"emission,omitempty"`
}

// SphereCfg places a sphere using a material name from the materials list
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the JSON scene file format
type Config struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Camera      *CameraCfg     `json:"camera,omitempty"`
	Background  *BackgroundCfg `json:"background,omitempty"`
	Materials   []MaterialCfg  `json:"materials"`
	Spheres     []SphereCfg    `json:"spheres"`
}

// Build converts the camera section, falling back to +Y up
func (c CameraCfg) Build() renderer.CameraConfig {
	up := core.NewVec3(0, 1, 0)
	if c.Up != nil {
		up = c.Up.vec()
	}
	return renderer.CameraConfig{
		LookFrom:      c.LookFrom.vec(),
		LookAt:        c.LookAt.vec(),
		Up:            up,
		VFov:          c.VFov,
		AspectRatio:   renderer.DefaultCameraConfig().AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}
}

// Build converts the background section
func (b BackgroundCfg) Build() (renderer.Background, error) {
	switch strings.ToLower(b.Type) {
	case "", "gradient":
		bg := renderer.GradientBackground()
		if b.Top != nil {
			bg.Top = b.Top.vec()
		}
		if b.Bottom != nil {
			bg.Bottom = b.Bottom.vec()
		}
		return bg, nil
	case "solid":
		var color core.Vec3
		if b.Color != nil {
			color = b.Color.vec()
		}
		return renderer.SolidBackground(color), nil
	default:
		return renderer.Background{}, fmt.Errorf("%w: unknown background type %q", ErrInvalidScene, b.Type)
	}
}

// Build converts a material entry
func (m MaterialCfg) Build() (material.Material, error) {
	var mat material.Material
	switch strings.ToLower(m.Type) {
	case "lambertian":
		mat = material.NewLambertian(m.Albedo.vec())
	case "metal":
		mat = material.NewMetal(m.Albedo.vec(), m.Fuzz)
	case "dielectric":
		mat = material.NewDielectric(m.IOR)
	case "emissive":
		mat = material.NewEmissive(m.Emission.vec())
	default:
		return material.Material{}, fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidScene, m.Name, m.Type)
	}
	if err := mat.Validate(); err != nil {
		return material.Material{}, fmt.Errorf("%w: material %q: %v", ErrInvalidScene, m.Name, err)
	}
	return mat, nil
}

// Build turns the configuration into a validated scene
func (c Config) Build() (*Scene, error) {
	name := c.Name
	if name == "" {
		name = "untitled"
	}
	s := New(name)

	if c.Camera != nil {
		s.CameraConfig = c.Camera.Build()
	}
	if c.Background != nil {
		bg, err := c.Background.Build()
		if err != nil {
			return nil, err
		}
		s.Background = bg
	}

	handles := make(map[string]material.ID, len(c.Materials))
	for _, mc := range c.Materials {
		if _, dup := handles[mc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate material name %q", ErrInvalidScene, mc.Name)
		}
		mat, err := mc.Build()
		if err != nil {
			return nil, err
		}
		handles[mc.Name] = s.AddMaterial(mat)
	}

	for i, sc := range c.Spheres {
		id, ok := handles[sc.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d uses undefined material %q", ErrInvalidScene, i, sc.Material)
		}
		s.AddSphere(sc.Center.vec(), sc.Radius, id)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return s, nil
}

// DecodeJSON reads a JSON scene description
func DecodeJSON(r io.Reader) (*Scene, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.Build()
}

// LoadJSON reads a JSON scene file
func LoadJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := DecodeJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
