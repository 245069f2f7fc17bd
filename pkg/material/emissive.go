package material

import "github.com/df07/go-pathtracer/pkg/core"

// NewEmissive creates a light-emitting material. Paths end when they reach it.
func NewEmissive(emission core.Vec3) Material {
	return Material{Kind: KindEmissive, Emission: emission}
}
