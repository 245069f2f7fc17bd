package renderer_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var update = flag.Bool("update", false, "rewrite the reference images in testdata")

func renderReference(t *testing.T, workers int, granularity renderer.Granularity) []byte {
	t.Helper()
	s := scene.NewTwoSpheresScene()

	opts := renderer.DefaultOptions()
	opts.Width = 20
	opts.Height = 10
	opts.SamplesPerPixel = 4
	opts.Seed = 7
	opts.NumWorkers = workers
	opts.Granularity = granularity
	opts.Background = s.Background

	fb, _, err := renderer.Render(s, s.CameraFor(opts.Width, opts.Height), opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, output.FormatPPM); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return buf.Bytes()
}

// TestRender_MatchesReferenceImage compares a small deterministic render
// byte for byte against a stored P3 image. Run with -update to regenerate.
func TestRender_MatchesReferenceImage(t *testing.T) {
	path := filepath.Join("testdata", "two_spheres_20x10.ppm")
	got := renderReference(t, 4, renderer.GranularityTile)

	if *update {
		if err := os.WriteFile(path, got, 0o644); err != nil {
			t.Fatalf("Failed to write reference: %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Fatalf("Reference %s is missing; run go test ./pkg/renderer -run TestRender_MatchesReferenceImage -update", path)
	}
	if err != nil {
		t.Fatalf("Failed to read reference: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Render differs from %s; rerun with -update if the change is intended", path)
	}

	// The scheduling must not matter for the reference either
	if single := renderReference(t, 1, renderer.GranularityPixel); !bytes.Equal(single, got) {
		t.Error("Single worker pixel render differs from the tiled render")
	}
}
