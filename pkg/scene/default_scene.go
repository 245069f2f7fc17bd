package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewTwoSpheresScene creates the small reference scene: one diffuse sphere
// resting on a huge diffuse ground sphere, seen by a pinhole camera at the
// origin
func NewTwoSpheresScene() *Scene {
	s := New("two-spheres")
	s.CameraConfig = renderer.DefaultCameraConfig()

	ground := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	center := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, ground)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, center)
	return s
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene() *Scene {
	s := New("default")
	s.CameraConfig = renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:      core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:          core.NewVec3(0, 1, 0),    // Standard up direction
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0, // Narrower field of view for focus effect
		Aperture:    0.05, // Strong depth of field blur
	}

	lambertianGreen := s.AddMaterial(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	lambertianBlue := s.AddMaterial(material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))
	lambertianRed := s.AddMaterial(material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2)))
	metalSilver := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0))
	metalGold := s.AddMaterial(material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)
	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass)

	// Hollow glass: the negative radius inner wall turns the normal inwards
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}

// NewGlowScene creates a dark scene lit only by emissive spheres
func NewGlowScene() *Scene {
	s := New("glow")
	s.Background = renderer.SolidBackground(core.Vec3{})
	s.CameraConfig = renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 1, 4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        45,
	}

	floor := s.AddMaterial(material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6)))
	warm := s.AddMaterial(material.NewEmissive(core.NewVec3(4.0, 2.8, 1.6)))
	cool := s.AddMaterial(material.NewEmissive(core.NewVec3(1.2, 2.0, 4.0)))
	mirror := s.AddMaterial(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.05))
	glass := s.AddMaterial(material.NewDielectric(1.5))

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, floor)
	s.AddSphere(core.NewVec3(-1.2, 0.4, 0), 0.4, warm)
	s.AddSphere(core.NewVec3(1.2, 0.4, 0), 0.4, cool)
	s.AddSphere(core.NewVec3(0, 0.5, -0.8), 0.5, mirror)
	s.AddSphere(core.NewVec3(0, 0.3, 0.8), 0.3, glass)
	s.AddSphere(core.NewVec3(0, 6, -2), 1.5, warm)
	return s
}
