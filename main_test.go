package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"pathtracer"}, args...))
	return stdout.String(), err
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "single.json")
	content := `{"name": "Single", "materials": [{"name": "m", "type": "lambertian", "albedo": [1, 1, 1]}],
		"spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "m"}]}`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	tests := []struct {
		name      string
		id        string
		sceneFile string
		spheres   int
		err       error
	}{
		{"built-in", "two-spheres", "", 2, nil},
		{"built-in any case", "Two-Spheres", "", 2, nil},
		{"file by id", "file:single", "", 1, nil},
		{"file by path", "", file, 1, nil},
		{"scene file wins", "two-spheres", file, 1, nil},
		{"unknown scene", "nonexistent", "", 0, scene.ErrUnknownScene},
		{"empty scene name", "", "", 0, scene.ErrUnknownScene},
		{"unknown file id", "file:missing", "", 0, scene.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := loadScene(tt.id, tt.sceneFile, dir, renderer.DefaultSeed)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("Expected %v, got %v", tt.err, err)
				}
				if sc != nil {
					t.Errorf("Expected nil scene on error, got %v", sc.Name)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(sc.Primitives) != tt.spheres {
				t.Errorf("Expected %d spheres, got %d", tt.spheres, len(sc.Primitives))
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name      string
		id        string
		sceneFile string
		expected  string
	}{
		{"built-in", "random", "", filepath.Join("output", "random", "render_20240309_140507.png")},
		{"file id", "file:glass-trio", "", filepath.Join("output", "glass-trio", "render_20240309_140507.png")},
		{"scene file", "random", "scenes/sub/my-scene.json", filepath.Join("output", "my-scene", "render_20240309_140507.png")},
		{"empty id", "", "", filepath.Join("output", "scene", "render_20240309_140507.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultOutputPath(sceneSlug(tt.id, tt.sceneFile), now); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderCommand_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "two.png")
	_, err := runApp(t, "render", "--scene", "two-spheres", "--width", "8", "--height", "4",
		"--spp", "2", "--depth", "5", "--workers", "2", "--granularity", "tile", "--tile-size", "3", "--out", out)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	file, err := os.Open(out)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
		t.Errorf("Expected 8x4, got %v", b)
	}
}

func TestRenderCommand_StdoutMatchesAcrossWorkers(t *testing.T) {
	args := []string{"render", "--scene", "random", "--width", "6", "--height", "4", "--spp", "1", "--depth", "3", "--out", "-"}

	one, err := runApp(t, append(args, "--workers", "1")...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	many, err := runApp(t, append(args, "--workers", "3", "--granularity", "pixel")...)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.HasPrefix(one, "P3\n6 4\n255\n") {
		t.Errorf("Expected a P3 image on stdout, got %q", one)
	}
	if one != many {
		t.Error("Deterministic renders differ between worker counts")
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"unknown scene", []string{"--scene", "teapot"}, scene.ErrUnknownScene},
		{"zero width", []string{"--width", "0"}, renderer.ErrInvalidOptions},
		{"bad granularity", []string{"--granularity", "block"}, renderer.ErrInvalidOptions},
		{"bad format", []string{"--format", "gif"}, output.ErrUnknownFormat},
		{"bad extension", []string{"--out", filepath.Join(dir, "frame.bmp")}, output.ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"render", "--scene", "two-spheres", "--width", "4", "--height", "2", "--spp", "1",
				"--out", filepath.Join(dir, "frame.ppm")}, tt.args...)
			if _, err := runApp(t, args...); !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestScenesCommand(t *testing.T) {
	out, err := runApp(t, "scenes", "--scenes-dir", t.TempDir())
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, p := range scene.Presets() {
		if !strings.Contains(out, p.ID) {
			t.Errorf("Expected %q in listing:\n%s", p.ID, out)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := runApp(t, "info")
	if err != nil {
		t.Skipf("CPU information unavailable: %v", err)
	}
	for _, want := range []string{"Logical CPUs", "Default workers"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}
