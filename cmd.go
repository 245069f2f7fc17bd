package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/web/server"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	defaults := renderer.DefaultOptions()

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in or JSON scene and write the frame as PNG or PPM. The output
format follows the file extension unless --format is given; "-" writes to
standard output.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "random",
					Usage: "built-in scene id, or file:<name> for a file in --scenes-dir",
				},
				cli.StringFlag{
					Name:  "scene-file",
					Usage: "path to a JSON scene file (overrides --scene)",
				},
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: defaults.MaxDepth,
					Usage: "maximum number of bounces",
				},
				cli.BoolTFlag{
					Name:  "deterministic",
					Usage: "derive all random numbers from --seed (use --deterministic=false for a fresh seed)",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Value: renderer.DefaultSeed,
					Usage: "seed for deterministic renders and the random scene",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers, 0 uses every logical CPU",
				},
				cli.StringFlag{
					Name:  "granularity",
					Value: defaults.Granularity.String(),
					Usage: "work unit handed to workers: pixel, row or tile",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: defaults.TileSize,
					Usage: "tile edge length for --granularity tile",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file, default output/<scene>/render_<timestamp>.png",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "output format: png, ppm (P3) or p6",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print a render statistics table",
				},
			},
			Action: renderAction,
		},
		{
			Name:  "scenes",
			Usage: "list built-in and file scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory holding JSON scene files",
				},
			},
			Action: scenesAction,
		},
		{
			Name:   "info",
			Usage:  "show the CPUs available for rendering",
			Action: infoAction,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: server.DefaultConfig().Port,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: server.DefaultConfig().ScenesDir,
					Usage: "directory holding JSON scene files",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "render workers per request, 0 uses every logical CPU",
				},
			},
			Action: serveAction,
		},
	}
	return app
}

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.LevelFromVerbosity(verbosity))
}

// defaultWorkers returns the logical CPU count, or 0 to let the renderer decide
func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// loadScene reads sceneFile when given, otherwise resolves the scene id
func loadScene(id, sceneFile, scenesDir string, seed uint64) (*scene.Scene, error) {
	if sceneFile != "" {
		return scene.LoadJSON(sceneFile)
	}
	return scene.Resolve(id, scenesDir, seed)
}

// sceneSlug names the output directory of a scene
func sceneSlug(id, sceneFile string) string {
	if sceneFile != "" {
		base := filepath.Base(sceneFile)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name := strings.TrimPrefix(id, "file:"); name != "" {
		return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}
	return "scene"
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(slug string, now time.Time) string {
	return filepath.Join("output", slug, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func renderAction(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneID := ctx.String("scene")
	sceneFile := ctx.String("scene-file")
	seed := ctx.Uint64("seed")

	sc, err := loadScene(sceneID, sceneFile, ctx.String("scenes-dir"), seed)
	if err != nil {
		return err
	}

	granularity, err := renderer.ParseGranularity(ctx.String("granularity"))
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = defaultOutputPath(sceneSlug(sceneID, sceneFile), time.Now())
	}
	var format output.Format
	switch {
	case ctx.String("format") != "":
		format, err = output.ParseFormat(ctx.String("format"))
	case out == "-":
		format = output.FormatPPM
	default:
		format, err = output.FormatFromPath(out)
	}
	if err != nil {
		return err
	}

	opts := renderer.DefaultOptions()
	opts.Width = ctx.Int("width")
	opts.Height = ctx.Int("height")
	opts.SamplesPerPixel = ctx.Int("spp")
	opts.MaxDepth = ctx.Int("depth")
	opts.Deterministic = ctx.BoolT("deterministic")
	opts.Seed = seed
	opts.NumWorkers = ctx.Int("workers")
	if opts.NumWorkers == 0 {
		opts.NumWorkers = defaultWorkers()
	}
	opts.Granularity = granularity
	opts.TileSize = ctx.Int("tile-size")
	opts.Background = sc.Background
	opts.Logger = logger

	logger.Noticef("Rendering %q: %dx%d, %d spp, depth %d, %d spheres",
		sc.Name, opts.Width, opts.Height, opts.SamplesPerPixel, opts.MaxDepth, len(sc.Primitives))

	fb, stats, err := renderer.Render(sc, sc.CameraFor(opts.Width, opts.Height), opts)
	if err != nil {
		return err
	}

	if out == "-" {
		if err := output.Encode(ctx.App.Writer, fb, format); err != nil {
			return err
		}
	} else {
		if err := output.Save(out, fb, format); err != nil {
			return err
		}
		logger.Noticef("Render saved as %s", out)
	}

	if ctx.Bool("stats") {
		fmt.Fprint(ctx.App.ErrWriter, stats.Table())
	}
	return nil
}

func scenesAction(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, group := range scenes.Groups {
		for _, s := range group.Scenes {
			table.Append([]string{s.ID, s.Name, group.Name, s.Description})
		}
	}
	table.Render()

	_, err = fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}

func infoAction(ctx *cli.Context) error {
	setupLogging(ctx)

	logical, err := cpu.Counts(true)
	if err != nil {
		return fmt.Errorf("failed to count CPUs: %w", err)
	}
	physical, err := cpu.Counts(false)
	if err != nil {
		physical = 0
	}
	model := "unknown"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		model = infos[0].ModelName
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"CPU model", model})
	table.Append([]string{"Logical CPUs", fmt.Sprintf("%d", logical)})
	table.Append([]string{"Physical cores", fmt.Sprintf("%d", physical)})
	table.Append([]string{"Default workers", fmt.Sprintf("%d", defaultWorkers())})
	table.Render()

	_, err = fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}

func serveAction(ctx *cli.Context) error {
	setupLogging(ctx)

	srv := server.New(server.Config{
		Port:       ctx.Int("port"),
		ScenesDir:  ctx.String("scenes-dir"),
		NumWorkers: ctx.Int("workers"),
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("shutdown: %v", err)
		}
	}()

	return srv.Start()
}
