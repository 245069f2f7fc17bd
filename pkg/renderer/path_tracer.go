package renderer

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShadowEpsilon is the smallest accepted hit distance. It keeps a bounced ray
// from re-hitting the surface it just left.
const ShadowEpsilon = 0.001

// IterativeDepthThreshold is the bounce limit above which the sampler uses
// RayColorIterative instead of recursion
const IterativeDepthThreshold = 64

// BackgroundKind selects how rays that escape the scene are colored
type BackgroundKind uint8

const (
	BackgroundGradient BackgroundKind = iota
	BackgroundSolid
)

// Background is the radiance seen along rays that hit nothing
type Background struct {
	Kind   BackgroundKind
	Top    core.Vec3 // Gradient color looking straight up
	Bottom core.Vec3 // Gradient color looking straight down
	Solid  core.Vec3 // Color of a solid background
}

// GradientBackground returns the white to sky blue gradient
func GradientBackground() Background {
	return Background{
		Kind:   BackgroundGradient,
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// SolidBackground returns a background of a single color
func SolidBackground(color core.Vec3) Background {
	return Background{Kind: BackgroundSolid, Solid: color}
}

// Color returns the background radiance for a ray direction
func (b Background) Color(ray core.Ray) core.Vec3 {
	if b.Kind == BackgroundSolid {
		return b.Solid
	}
	// Map unit-direction y from [-1,1] to [0,1]
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return b.Bottom.Lerp(b.Top, t)
}

// PathTracer estimates the radiance carried back along a ray. It only reads
// the world and the material arena.
type PathTracer struct {
	World      geometry.Hittable
	Materials  []material.Material
	Background Background
}

// RayColor follows a path recursively for at most depth bounces
func (pt *PathTracer) RayColor(ray core.Ray, depth int, random *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := pt.World.Hit(ray, core.NewInterval(ShadowEpsilon, math.Inf(1)))
	if !isHit {
		return pt.Background.Color(ray)
	}

	outcome := pt.Materials[hit.Material].Scatter(ray, hit, random)
	switch outcome.Kind {
	case material.Emitted:
		return outcome.Emitted
	case material.Scattered:
		return outcome.Attenuation.MultiplyVec(pt.RayColor(outcome.Ray, depth-1, random))
	default:
		return core.Vec3{}
	}
}

// RayColorIterative computes the same estimate as RayColor with a loop and a
// running attenuation product, so deep paths do not grow the stack
func (pt *PathTracer) RayColorIterative(ray core.Ray, depth int, random *rand.Rand) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	for ; depth > 0; depth-- {
		hit, isHit := pt.World.Hit(ray, core.NewInterval(ShadowEpsilon, math.Inf(1)))
		if !isHit {
			return throughput.MultiplyVec(pt.Background.Color(ray))
		}

		outcome := pt.Materials[hit.Material].Scatter(ray, hit, random)
		switch outcome.Kind {
		case material.Emitted:
			return throughput.MultiplyVec(outcome.Emitted)
		case material.Scattered:
			throughput = throughput.MultiplyVec(outcome.Attenuation)
			ray = outcome.Ray
		default:
			return core.Vec3{}
		}
	}
	return core.Vec3{}
}
