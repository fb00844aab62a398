package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const redSphereJSON = `[
	{"type": "camera", "width": 2, "height": 2},
	{"type": "sphere", "position": [0, 0, 5], "radius": 1, "diffuse_color": [1, 0, 0]},
	{"type": "light", "position": [0, 0, 0], "color": [1, 1, 1], "radial-a0": 1}
]`

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	return path
}

func TestRun_RendersScene(t *testing.T) {
	sceneFile := writeScene(t, redSphereJSON)

	for _, format := range []string{"p3", "p6"} {
		t.Run(format, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "output.ppm")
			var stderr bytes.Buffer
			args := []string{"-quiet", "-format", format, "-workers", "2", "3", "3", sceneFile, output}
			if err := run(args, &stderr); err != nil {
				t.Fatalf("run failed: %v (%s)", err, stderr.String())
			}

			frame, err := loaders.LoadImage(output)
			if err != nil {
				t.Fatalf("Failed to read output: %v", err)
			}
			if frame.Width != 3 || frame.Height != 3 {
				t.Fatalf("Expected 3x3 output, got %dx%d", frame.Width, frame.Height)
			}
			if r, g, b := frame.At(1, 1); r != 255 || g != 0 || b != 0 {
				t.Errorf("Expected red center pixel, got (%d,%d,%d)", r, g, b)
			}
			if r, g, b := frame.At(0, 0); r != 0 || g != 0 || b != 0 {
				t.Errorf("Expected black corner pixel, got (%d,%d,%d)", r, g, b)
			}
		})
	}
}

func TestRun_PNGOutput(t *testing.T) {
	sceneFile := writeScene(t, redSphereJSON)
	output := filepath.Join(t.TempDir(), "render.png")

	if err := run([]string{"-quiet", "4", "2", sceneFile, output}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("Expected PNG output for .png extension")
	}
}

func TestRun_Errors(t *testing.T) {
	sceneFile := writeScene(t, redSphereJSON)
	noSurfaces := writeScene(t, `[{"type": "camera", "width": 1, "height": 1}]`)
	noCamera := writeScene(t, `[{"type": "sphere", "position": [0, 0, 5], "radius": 1}]`)
	output := filepath.Join(t.TempDir(), "out.ppm")

	tests := []struct {
		name        string
		args        []string
		expectedErr error
		errContains string
	}{
		{"too few arguments", []string{"3", "3", sceneFile}, nil, "expected 4 arguments"},
		{"too many arguments", []string{"3", "3", sceneFile, output, "extra"}, nil, "expected 4 arguments"},
		{"zero width", []string{"0", "3", sceneFile, output}, renderer.ErrInvalidDimensions, ""},
		{"negative height", []string{"3", "-1", sceneFile, output}, renderer.ErrInvalidDimensions, ""},
		{"non-numeric width", []string{"wide", "3", sceneFile, output}, nil, "invalid width"},
		{"bad format", []string{"-format", "p5", "3", "3", sceneFile, output}, nil, "unknown PPM format"},
		{"missing scene", []string{"3", "3", filepath.Join(t.TempDir(), "none.json"), output}, nil, "failed to open"},
		{"no camera", []string{"3", "3", noCamera, output}, scene.ErrMissingCamera, ""},
		{"no surfaces", []string{"3", "3", noSurfaces, output}, renderer.ErrNoSurfaces, ""},
		{"unknown flag", []string{"-samples", "4", "3", "3", sceneFile, output}, nil, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(append([]string{"-quiet"}, tt.args...), &bytes.Buffer{})
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) {
				t.Errorf("Expected %v, got %v", tt.expectedErr, err)
			}
			if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("Expected no output file to be written on failure")
	}
}
