package renderer

import (
	"math"
	"math/rand/v2"

	"github.com/df07/go-pathtracer/pkg/core"
)

// pixelSampler turns pixel coordinates into a display color. It is shared by
// all workers and holds no mutable state.
type pixelSampler struct {
	camera    *Camera
	tracer    *PathTracer
	width     int
	height    int
	samples   int
	maxDepth  int
	iterative bool
}

func newPixelSampler(camera *Camera, tracer *PathTracer, opts Options) *pixelSampler {
	return &pixelSampler{
		camera:    camera,
		tracer:    tracer,
		width:     opts.Width,
		height:    opts.Height,
		samples:   opts.SamplesPerPixel,
		maxDepth:  opts.MaxDepth,
		iterative: opts.MaxDepth > IterativeDepthThreshold,
	}
}

// strata returns n = ⌊√samples⌋, the side of the jittered sub-cell grid
func strata(samples int) int {
	n := int(math.Sqrt(float64(samples)))
	for n*n > samples {
		n--
	}
	for (n+1)*(n+1) <= samples {
		n++
	}
	return n
}

// SamplePixel averages the radiance of all samples through pixel (px, py),
// where py = 0 is the top row, and returns it gamma corrected and clamped.
// The first n² samples are stratified over an n×n grid; the remainder are
// spread uniformly over the whole pixel.
func (ps *pixelSampler) SamplePixel(px, py int, random *rand.Rand) core.Vec3 {
	n := strata(ps.samples)
	row := float64(ps.height - 1 - py)

	var sum core.Vec3
	for sy := 0; sy < n; sy++ {
		for sx := 0; sx < n; sx++ {
			u := (float64(sx) + random.Float64()) / float64(n)
			v := (float64(sy) + random.Float64()) / float64(n)
			sum = sum.Add(ps.sample(float64(px)+u, row+v, random))
		}
	}
	for i := n * n; i < ps.samples; i++ {
		u := random.Float64()
		v := random.Float64()
		sum = sum.Add(ps.sample(float64(px)+u, row+v, random))
	}

	return sum.Divide(float64(ps.samples)).GammaCorrect().Clamp(0, 1)
}

// sample traces one camera ray through image-plane position (x, y) in pixels
func (ps *pixelSampler) sample(x, y float64, random *rand.Rand) core.Vec3 {
	ray := ps.camera.GetRay(x/float64(ps.width), y/float64(ps.height), random)
	if ps.iterative {
		return ps.tracer.RayColorIterative(ray, ps.maxDepth, random)
	}
	return ps.tracer.RayColor(ray, ps.maxDepth, random)
}
