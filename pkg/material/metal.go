package material

import (
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewMetal creates a reflective material. fuzz is clamped to [0, 1];
// 0 is a perfect mirror.
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	return Material{Kind: KindMetal, Albedo: albedo, Fuzz: max(0, min(1, fuzz))}
}

func scatterMetal(m *Material, rayIn core.Ray, hit core.HitRecord, random *rand.Rand) Outcome {
	reflected := reflect(rayIn.Direction.Normalize(), hit.Normal)

	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzz))
	}

	// Rough reflections that end up below the surface are absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return Outcome{Kind: Absorbed}
	}

	return Outcome{
		Kind:        Scattered,
		Attenuation: m.Albedo,
		Ray:         core.NewRay(hit.Point, reflected),
	}
}
