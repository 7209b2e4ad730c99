package main

import (
	"bytes"
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-smallpt/pkg/loaders"
	"github.com/df07/go-smallpt/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	dir := t.TempDir()
	jsonScene := filepath.Join(dir, "scene.json")
	sceneJSON := `{"spheres": [{"material": "diffuse", "radius": 1, "center": [0, 0, 0], "emission": [1, 1, 1]}]}`
	if err := os.WriteFile(jsonScene, []byte(sceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"cornell scene", "cornell", false},
		{"simple scene", "simple", false},

		// Scene files
		{"json scene", jsonScene, false},
		{"missing json scene", filepath.Join(dir, "missing.json"), true},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := createScene(tt.sceneType)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene.Len() == 0 || len(scene.Lights()) == 0 {
				t.Errorf("Scene '%s' should have primitives and lights", tt.sceneType)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(t *testing.T, opts options)
	}{
		{"defaults", nil, false, func(t *testing.T, opts options) {
			if opts.output != "image.png" || opts.sceneName != "cornell" || opts.logFormat != "plain" {
				t.Errorf("Unexpected defaults %+v", opts)
			}
			if opts.config != renderer.DefaultConfig() {
				t.Errorf("Expected default render config, got %+v", opts.config)
			}
		}},
		{"samples split over sub-pixels", []string{"-samples", "40"}, false, func(t *testing.T, opts options) {
			if opts.config.SamplesPerSubpixel != 10 {
				t.Errorf("Expected 10 samples per sub-pixel, got %d", opts.config.SamplesPerSubpixel)
			}
		}},
		{"at least one sample", []string{"-samples", "2"}, false, func(t *testing.T, opts options) {
			if opts.config.SamplesPerSubpixel != 1 {
				t.Errorf("Expected 1 sample per sub-pixel, got %d", opts.config.SamplesPerSubpixel)
			}
		}},
		{"partial default output", []string{"-partial"}, false, func(t *testing.T, opts options) {
			if opts.output != "image.part" || !opts.partial {
				t.Errorf("Expected image.part, got %q", opts.output)
			}
		}},
		{"everything", []string{"-o", "x.bmp", "-width", "64", "-height", "48", "-num-threads", "3", "-seed", "7", "-sample-offset", "5", "-scene", "simple", "-quiet"}, false, func(t *testing.T, opts options) {
			c := opts.config
			if opts.output != "x.bmp" || c.Width != 64 || c.Height != 48 || c.NumWorkers != 3 || c.Seed != 7 || c.SampleOffset != 5 {
				t.Errorf("Flags not applied: %+v", opts)
			}
			if opts.sceneName != "simple" || !opts.quiet {
				t.Errorf("Flags not applied: %+v", opts)
			}
		}},
		{"json logs", []string{"-log-format", "json"}, false, func(t *testing.T, opts options) {
			if opts.logFormat != "json" {
				t.Errorf("Expected json log format, got %q", opts.logFormat)
			}
		}},
		{"unknown log format", []string{"-log-format", "xml"}, true, nil},
		{"zero width", []string{"-width", "0"}, true, nil},
		{"unknown flag", []string{"-bogus"}, true, nil},
		{"stray argument", []string{"extra"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(tt.args, io.Discard)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.check(t, opts)
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name         string
		opts         options
		expected     string
		wantProgress bool
	}{
		{"plain", options{logFormat: "plain"}, "Rendered 3 rows\n", true},
		{"text", options{logFormat: "text"}, `msg="Rendered 3 rows"`, false},
		{"json", options{logFormat: "json"}, `"msg":"Rendered 3 rows"`, false},
		{"quiet", options{logFormat: "json", quiet: true}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			logger, progress := newLogger(tt.opts, &out)
			logger.Printf("Rendered %d rows\n", 3)

			if tt.expected == "" {
				if out.Len() != 0 {
					t.Errorf("Expected no output, got %q", out.String())
				}
			} else if !strings.Contains(out.String(), tt.expected) {
				t.Errorf("Expected %q in output, got %q", tt.expected, out.String())
			}
			if (progress != nil) != tt.wantProgress {
				t.Errorf("Expected progress callback: %v", tt.wantProgress)
			}
		})
	}
}

func TestRun_PartialThenImage(t *testing.T) {
	dir := t.TempDir()

	partialOpts, err := parseOptions([]string{"-scene", "simple", "-width", "12", "-height", "8", "-samples", "4", "-partial", "-o", filepath.Join(dir, "a.part")}, io.Discard)
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}
	var out bytes.Buffer
	if err := run(context.Background(), partialOpts, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Writing partial output") {
		t.Errorf("Expected partial output message, got %q", out.String())
	}

	buf, err := loaders.LoadPartial(filepath.Join(dir, "a.part"))
	if err != nil {
		t.Fatalf("LoadPartial failed: %v", err)
	}
	if buf.Width != 12 || buf.Height != 8 || buf.Samples != 4 {
		t.Errorf("Expected 12x8 with 4 samples, got %dx%d with %d", buf.Width, buf.Height, buf.Samples)
	}

	imageOpts := partialOpts
	imageOpts.partial = false
	imageOpts.quiet = true
	imageOpts.output = filepath.Join(dir, "a.png")
	if err := run(context.Background(), imageOpts, io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	img, err := loaders.LoadImage(imageOpts.output)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	// The image is the tone-mapped partial
	expected := buf.ToImage()
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			c := expected.RGBAAt(x, y)
			got := img.At(x, y)
			r, g, b := uint8(math.Round(got.X*255)), uint8(math.Round(got.Y*255)), uint8(math.Round(got.Z*255))
			if r != c.R || g != c.G || b != c.B {
				t.Fatalf("Pixel (%d,%d): expected %v, got (%d,%d,%d)", x, y, c, r, g, b)
			}
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	opts, err := parseOptions([]string{"-scene", "simple", "-width", "8", "-height", "8", "-quiet", "-o", filepath.Join(t.TempDir(), "x.png")}, io.Discard)
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := run(ctx, opts, io.Discard); err == nil {
		t.Error("Expected error from a cancelled render")
	}
	if _, statErr := os.Stat(opts.output); !os.IsNotExist(statErr) {
		t.Error("No image should be written after cancellation")
	}
}
