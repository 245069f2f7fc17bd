package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDielectric_IndexOneIsTransparentAtNormalIncidence(t *testing.T) {
	air := NewDielectric(1.0)

	tests := []struct {
		name      string
		direction core.Vec3
		normal    core.Vec3
		frontFace bool
	}{
		{"entering", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), true},
		{"exiting", core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), false},
		{"entering along x", core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), true},
		{"unnormalized direction", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			random := core.NewRandom(11, 0)
			hit := core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: tt.normal, FrontFace: tt.frontFace}
			ray := core.NewRay(core.NewVec3(0, 0, 0).Subtract(tt.direction), tt.direction)

			for i := 0; i < 100; i++ {
				out := air.Scatter(ray, hit, random)
				if out.Kind != Scattered {
					t.Fatalf("Dielectric should always scatter, got %v", out.Kind)
				}
				expected := tt.direction.Normalize()
				if out.Ray.Direction.Subtract(expected).Length() > 1e-12 {
					t.Fatalf("Expected unbent direction %v, got %v", expected, out.Ray.Direction)
				}
			}
		})
	}
}

func TestDielectric_AttenuationIsWhite(t *testing.T) {
	glass := NewDielectric(1.5)
	random := core.NewRandom(42, 0)
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	out := glass.Scatter(ray, hit, random)
	if out.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", out.Attenuation)
	}
}

func TestDielectric_ReflectsAndRefracts(t *testing.T) {
	glass := NewDielectric(1.5)
	random := core.NewRandom(1, 2)

	// Steep incidence: refraction dominates, reflection still happens
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	hasReflection, hasRefraction := false, false
	for i := 0; i < 2000 && !(hasReflection && hasRefraction); i++ {
		out := glass.Scatter(ray, hit, random)
		if out.Ray.Direction.Y > 0 {
			hasReflection = true
			continue
		}
		hasRefraction = true

		// Snell: sin(θt) = sin(θi) / 1.5
		sinI := math.Sqrt(0.5)
		d := out.Ray.Direction.Normalize()
		sinT := math.Sqrt(d.X*d.X + d.Z*d.Z)
		if math.Abs(sinT-sinI/1.5) > 1e-9 {
			t.Fatalf("Refraction violates Snell's law: sinT=%f, expected %f", sinT, sinI/1.5)
		}
	}

	if !hasReflection || !hasRefraction {
		t.Errorf("Expected both reflection and refraction, got reflection=%t refraction=%t", hasReflection, hasRefraction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	random := core.NewRandom(8, 8)

	// Exiting glass at 60° is beyond the critical angle (41.8°)
	direction := core.NewVec3(math.Sin(math.Pi/3), -math.Cos(math.Pi/3), 0)
	ray := core.NewRay(core.NewVec3(0, 1, 0), direction)
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: false}

	for i := 0; i < 100; i++ {
		out := glass.Scatter(ray, hit, random)
		expected := core.NewVec3(direction.X, -direction.Y, 0)
		if out.Ray.Direction.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected total internal reflection %v, got %v", expected, out.Ray.Direction)
		}
	}
}

func TestReflectance_Schlick(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"normal incidence glass", 1.0, 1.0 / 1.5, 0.04},
		{"grazing incidence", 0.0, 1.0 / 1.5, 1.0},
		{"index matched", 1.0, 1.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}
