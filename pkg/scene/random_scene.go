package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Weights of the material mix of the small spheres
const (
	lambertianWeight = 10
	metalWeight      = 3
	dielectricWeight = 2
)

// NewRandomScene creates the classic cover scene: a huge ground sphere, a
// 22x22 grid of small randomly jittered spheres and three large spheres.
// The layout depends only on seed.
func NewRandomScene(seed uint64) *Scene {
	random := core.NewRandom(seed, 0)
	s := New("random")
	s.CameraConfig = renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   1200.0 / 800.0,
		Aperture:      0.1,
		FocusDistance: 10,
	}

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, ground)

	glass := s.AddMaterial(material.NewDielectric(1.5))

	// Keep the small spheres clear of the large metal sphere
	clearing := core.NewVec3(4, 0.2, 0)
	totalWeight := lambertianWeight + metalWeight + dielectricWeight

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch pick := random.IntN(totalWeight); {
			case pick < lambertianWeight:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				s.AddSphere(center, 0.2, s.AddMaterial(material.NewLambertian(albedo)))
			case pick < lambertianWeight+metalWeight:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				fuzz := 0.5 * random.Float64()
				s.AddSphere(center, 0.2, s.AddMaterial(material.NewMetal(albedo, fuzz)))
			default:
				// Glass is never tinted, so every glass sphere shares one material
				s.AddSphere(center, 0.2, glass)
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, glass)
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, s.AddMaterial(material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, s.AddMaterial(material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return s
}
