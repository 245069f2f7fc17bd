package material

import (
	"fmt"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind selects the scattering model of a Material
type Kind uint8

const (
	KindLambertian Kind = iota
	KindMetal
	KindDielectric
	KindEmissive
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	case KindEmissive:
		return "emissive"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Material is a closed set of surface models. Only the fields relevant to
// Kind are meaningful. Materials live in the scene's material arena, are
// referenced by index from primitives and are never mutated while rendering.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // Lambertian and metal reflectance
	Fuzz            float64   // Metal roughness in [0, 1]
	RefractiveIndex float64   // Dielectric index of refraction
	Emission        core.Vec3 // Emitted radiance
}

// OutcomeKind tells the path tracer how a path continues
type OutcomeKind uint8

const (
	Absorbed OutcomeKind = iota
	Scattered
	Emitted
)

// Outcome is the result of a material interaction
type Outcome struct {
	Kind        OutcomeKind
	Attenuation core.Vec3 // Valid for Scattered
	Ray         core.Ray  // Valid for Scattered
	Emitted     core.Vec3 // Valid for Emitted
}

// Scatter computes how the incoming ray interacts with the surface described
// by hit. The result depends only on the material, the inputs and the draws
// taken from random.
func (m *Material) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) Outcome {
	switch m.Kind {
	case KindLambertian:
		return scatterLambertian(m, hit, random)
	case KindMetal:
		return scatterMetal(m, rayIn, hit, random)
	case KindDielectric:
		return scatterDielectric(m, rayIn, hit, random)
	case KindEmissive:
		return Outcome{Kind: Emitted, Emitted: m.Emission}
	default:
		return Outcome{Kind: Absorbed}
	}
}

// Validate checks the parameters of the material
func (m *Material) Validate() error {
	switch m.Kind {
	case KindLambertian, KindEmissive:
		return nil
	case KindMetal:
		if m.Fuzz < 0 || m.Fuzz > 1 {
			return fmt.Errorf("metal fuzz %f outside [0, 1]", m.Fuzz)
		}
		return nil
	case KindDielectric:
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("dielectric refractive index must be positive, got %f", m.RefractiveIndex)
		}
		return nil
	default:
		return fmt.Errorf("unknown material %s", m.Kind)
	}
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// ID is an index into the scene's material arena. It aliases int so the core
// hit record can carry it without importing this package.
type ID = int
