package scene

import (
	"fmt"
	"strings"
)

// Preset is a built-in scene
type Preset struct {
	ID          string
	Name        string
	Description string
	Build       func(seed uint64) *Scene // Only the random scene uses seed
}

var presets = []Preset{
	{
		ID:          "random",
		Name:        "Random Spheres",
		Description: "Ground sphere, 22x22 grid of small random spheres and three large spheres",
		Build:       NewRandomScene,
	},
	{
		ID:          "two-spheres",
		Name:        "Two Spheres",
		Description: "Diffuse sphere on a huge diffuse ground sphere (reference scene)",
		Build:       func(uint64) *Scene { return NewTwoSpheresScene() },
	},
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Diffuse, metal and glass spheres including hollow glass",
		Build:       func(uint64) *Scene { return NewDefaultScene() },
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		Description: "20x20 grid of rainbow-colored metallic spheres",
		Build:       func(uint64) *Scene { return NewSphereGridScene(20) },
	},
	{
		ID:          "glow",
		Name:        "Glow",
		Description: "Emissive spheres on a black background",
		Build:       func(uint64) *Scene { return NewGlowScene() },
	},
}

// Presets returns the built-in scenes in display order
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup finds a built-in scene by ID
func Lookup(id string) (Preset, error) {
	for _, p := range presets {
		if p.ID == strings.ToLower(strings.TrimSpace(id)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// Build creates the built-in scene with the given ID
func Build(id string, seed uint64) (*Scene, error) {
	p, err := Lookup(id)
	if err != nil {
		return nil, err
	}
	return p.Build(seed), nil
}
