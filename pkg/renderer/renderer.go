package renderer

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrInvalidOptions is returned by Render for unusable render options
var ErrInvalidOptions = errors.New("invalid render options")

// DefaultSeed is the seed of deterministic renders when none is given
const DefaultSeed uint64 = 171

// World is the renderable content of a scene: a flat list of primitives and
// the material arena their handles index into
type World interface {
	GetPrimitives() []geometry.Primitive
	GetMaterials() []material.Material
}

// Granularity selects how the image is split into worker tasks
type Granularity int

const (
	GranularityPixel Granularity = iota
	GranularityRow
	GranularityTile
)

func (g Granularity) String() string {
	switch g {
	case GranularityPixel:
		return "pixel"
	case GranularityRow:
		return "row"
	case GranularityTile:
		return "tile"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// ParseGranularity parses "pixel", "row" or "tile"
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pixel":
		return GranularityPixel, nil
	case "row", "":
		return GranularityRow, nil
	case "tile":
		return GranularityTile, nil
	default:
		return 0, fmt.Errorf("%w: unknown granularity %q", ErrInvalidOptions, s)
	}
}

// Options contains everything that controls a render besides the scene and camera
type Options struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int  // Maximum ray bounce depth
	Deterministic   bool // Use Seed; otherwise a fresh seed is drawn per render
	Seed            uint64
	NumWorkers      int // 0 = use CPU count
	Granularity     Granularity
	TileSize        int // Edge length of GranularityTile tasks
	BVH             geometry.BuildOptions
	Background      Background
	Logger          core.Logger
}

// DefaultOptions returns the settings of the classic 1200x800 render
func DefaultOptions() Options {
	return Options{
		Width:           1200,
		Height:          800,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		Deterministic:   true,
		Seed:            DefaultSeed,
		NumWorkers:      0,
		Granularity:     GranularityRow,
		TileSize:        16,
		BVH:             geometry.DefaultBuildOptions(),
		Background:      GradientBackground(),
		Logger:          core.NopLogger{},
	}
}

// Validate checks the options and wraps ErrInvalidOptions with the reason
func (o Options) Validate() error {
	switch {
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidOptions, o.Width, o.Height)
	case o.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidOptions, o.SamplesPerPixel)
	case o.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidOptions, o.MaxDepth)
	case o.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidOptions, o.NumWorkers)
	case o.Granularity < GranularityPixel || o.Granularity > GranularityTile:
		return fmt.Errorf("%w: %s", ErrInvalidOptions, o.Granularity)
	case o.Granularity == GranularityTile && o.TileSize <= 0:
		return fmt.Errorf("%w: tile size %d must be positive", ErrInvalidOptions, o.TileSize)
	}
	return nil
}

// Render traces the world through the camera and returns the finished frame
// buffer. With Deterministic set the result depends only on the world, the
// camera and the options other than NumWorkers and Granularity.
func Render(world World, cam CameraConfig, opts Options) (*FrameBuffer, RenderStats, error) {
	if err := opts.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}

	camera, err := NewCamera(cam)
	if err != nil {
		return nil, RenderStats{}, err
	}

	materials := world.GetMaterials()
	primitives := world.GetPrimitives()
	for i, p := range primitives {
		if p.Material < 0 || p.Material >= len(materials) {
			return nil, RenderStats{}, fmt.Errorf("%w: primitive %d references material %d of %d", ErrInvalidOptions, i, p.Material, len(materials))
		}
	}

	start := time.Now()
	bvh := geometry.NewBVH(primitives, opts.BVH)
	bvhStats := bvh.Stats()
	logger.Debugf("BVH built in %s: %d primitives, %d nodes, %d leaves, max depth %d, largest leaf %d",
		time.Since(start), bvhStats.Primitives, bvhStats.Nodes, bvhStats.Leaves, bvhStats.MaxDepth, bvhStats.LargestLeaf)

	seed := opts.Seed
	if !opts.Deterministic {
		seed = rand.Uint64()
	}

	tracer := &PathTracer{World: bvh, Materials: materials, Background: opts.Background}
	sampler := newPixelSampler(camera, tracer, opts)
	frame := NewFrameBuffer(opts.Width, opts.Height)
	tasks := PlanTasks(opts.Width, opts.Height, opts.Granularity, opts.TileSize)

	pool := NewWorkerPool(sampler, frame, seed, len(tasks), opts.NumWorkers)
	pool.Start()
	for _, task := range tasks {
		pool.SubmitTask(task)
	}

	progress := newProgress(len(tasks), logger)
	totalSamples := 0
	for range tasks {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		totalSamples += result.Samples
		progress.taskDone()
	}
	pool.Stop()

	stats := RenderStats{
		Width:           opts.Width,
		Height:          opts.Height,
		SamplesPerPixel: opts.SamplesPerPixel,
		MaxDepth:        opts.MaxDepth,
		TotalPixels:     opts.Width * opts.Height,
		TotalSamples:    totalSamples,
		Tasks:           len(tasks),
		Workers:         pool.GetNumWorkers(),
		Granularity:     opts.Granularity,
		Seed:            seed,
		Elapsed:         time.Since(start),
		BVH:             bvhStats,
	}
	logger.Noticef("Rendered %dx%d in %.1fs", opts.Width, opts.Height, stats.Elapsed.Seconds())

	return frame, stats, nil
}

// PlanTasks splits a width x height image into non-overlapping tasks that
// together cover every pixel exactly once
func PlanTasks(width, height int, granularity Granularity, tileSize int) []RenderTask {
	var tasks []RenderTask
	add := func(bounds image.Rectangle) {
		tasks = append(tasks, RenderTask{TaskID: len(tasks), Bounds: bounds})
	}

	switch granularity {
	case GranularityPixel:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				add(image.Rect(x, y, x+1, y+1))
			}
		}
	case GranularityTile:
		// Calculate number of tiles in each dimension
		tilesX := (width + tileSize - 1) / tileSize // Ceiling division
		tilesY := (height + tileSize - 1) / tileSize
		for tileY := 0; tileY < tilesY; tileY++ {
			for tileX := 0; tileX < tilesX; tileX++ {
				x0 := tileX * tileSize
				y0 := tileY * tileSize
				add(image.Rect(x0, y0, min(x0+tileSize, width), min(y0+tileSize, height)))
			}
		}
	default:
		for y := 0; y < height; y++ {
			add(image.Rect(0, y, width, y+1))
		}
	}
	return tasks
}
