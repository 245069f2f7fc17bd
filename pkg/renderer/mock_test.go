package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// MockWorld is a minimal World for renderer tests
type MockWorld struct {
	primitives []geometry.Primitive
	materials  []material.Material
}

func (m *MockWorld) GetPrimitives() []geometry.Primitive { return m.primitives }
func (m *MockWorld) GetMaterials() []material.Material   { return m.materials }

func (m *MockWorld) add(center core.Vec3, radius float64, mat material.Material) {
	m.materials = append(m.materials, mat)
	m.primitives = append(m.primitives, geometry.NewSpherePrimitive(center, radius, len(m.materials)-1))
}

// newEnclosedWorld surrounds the origin with a single sphere of the given material
func newEnclosedWorld(mat material.Material) *MockWorld {
	w := &MockWorld{}
	w.add(core.NewVec3(0, 0, 0), 100, mat)
	return w
}

// newMixedWorld exercises every material kind
func newMixedWorld() *MockWorld {
	w := &MockWorld{}
	w.add(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	w.add(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	w.add(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5))
	w.add(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	w.add(core.NewVec3(0, 2, -2), 0.5, material.NewEmissive(core.NewVec3(3, 3, 3)))
	return w
}

func tracerFor(w *MockWorld, bg Background) *PathTracer {
	return &PathTracer{
		World:      geometry.NewBVH(w.primitives, geometry.DefaultBuildOptions()),
		Materials:  w.materials,
		Background: bg,
	}
}

func testOptions(width, height, spp int) Options {
	opts := DefaultOptions()
	opts.Width = width
	opts.Height = height
	opts.SamplesPerPixel = spp
	opts.NumWorkers = 2
	return opts
}
