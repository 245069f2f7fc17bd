package material

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
			if err := metal.Validate(); err != nil {
				t.Errorf("Clamped metal should validate: %v", err)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	random := core.NewRandom(42, 0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := core.HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	out := metal.Scatter(rayIn, hit, random)
	if out.Kind != Scattered {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if out.Ray.Direction.Normalize().Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, out.Ray.Direction)
	}
	if out.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, out.Attenuation)
	}
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)
	random := core.NewRandom(42, 1)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	mirror := core.NewVec3(0, 0, 1)

	for i := 0; i < 500; i++ {
		out := metal.Scatter(rayIn, hit, random)
		if out.Kind != Scattered {
			// At normal incidence a fuzz of 0.3 can never push the ray below the surface
			t.Fatalf("Unexpected absorption at draw %d", i)
		}
		if out.Ray.Direction.Subtract(mirror).Length() > 0.3+1e-12 {
			t.Fatalf("Perturbation larger than fuzz: %v", out.Ray.Direction)
		}
	}
}

func TestMetal_GrazingFuzzAbsorbs(t *testing.T) {
	// A grazing ray with maximum fuzz must sometimes be pushed into the surface
	metal := NewMetal(core.NewVec3(1, 1, 1), 1.0)
	random := core.NewRandom(5, 5)

	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0), FrontFace: true}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		out := metal.Scatter(rayIn, hit, random)
		switch out.Kind {
		case Absorbed:
			absorbed++
		case Scattered:
			if out.Ray.Direction.Dot(hit.Normal) <= 0 {
				t.Fatalf("Scattered ray points into the surface: %v", out.Ray.Direction)
			}
		default:
			t.Fatalf("Metal should never emit, got %v", out.Kind)
		}
	}
	if absorbed == 0 {
		t.Error("Expected some grazing rays to be absorbed")
	}
}
