package material

import (
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian sends the ray towards normal + a random unit vector,
// which distributes directions with a cosine falloff around the normal.
func scatterLambertian(m *Material, hit core.HitRecord, random *rand.Rand) Outcome {
	direction := hit.Normal.Add(core.RandomUnitVector(random))

	// The random vector can cancel the normal almost exactly
	if direction.NearZero() {
		direction = hit.Normal
	}

	return Outcome{
		Kind:        Scattered,
		Attenuation: m.Albedo,
		Ray:         core.NewRay(hit.Point, direction),
	}
}
