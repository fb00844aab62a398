package renderer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
	"github.com/df07/go-raycaster/pkg/scene"
)

func redSphereScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(
		scene.NewCamera(2, 2),
		geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewPhong(core.NewVec3(1, 0, 0), core.Vec3{})),
		lights.NewPointLight(core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0, 0),
	)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func render(t *testing.T, s *scene.Scene, config Config) (*core.FrameBuffer, RenderStats) {
	t.Helper()
	frame, stats, err := NewRaycaster(s, config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return frame, stats
}

func TestRaycaster_RedSphereScenario(t *testing.T) {
	frame, stats := render(t, redSphereScene(t), Config{Width: 3, Height: 3, NumWorkers: 2})

	if frame.Width != 3 || frame.Height != 3 || len(frame.Pix) != 27 {
		t.Fatalf("Expected 3x3 frame, got %dx%d with %d bytes", frame.Width, frame.Height, len(frame.Pix))
	}

	r, g, b := frame.At(1, 1)
	if r < 250 || g != 0 || b != 0 {
		t.Errorf("Expected saturated red center pixel, got (%d,%d,%d)", r, g, b)
	}

	corners := [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}}
	for _, c := range corners {
		r, g, b := frame.At(c[0], c[1])
		if r != 0 || g != 0 || b != 0 {
			t.Errorf("Expected black corner pixel at %v, got (%d,%d,%d)", c, r, g, b)
		}
	}

	if stats.TotalPixels != 9 || stats.Rows != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.PixelsLit < 1 || stats.PixelsLit > 5 {
		t.Errorf("Expected center and edge pixels only to be lit, got %d", stats.PixelsLit)
	}
}

func TestRaycaster_PlaneWithoutLightsIsBlack(t *testing.T) {
	frame, stats := render(t, scene.NewPlaneOnlyScene(), Config{Width: 8, Height: 8, NumWorkers: 1})

	for i, v := range frame.Pix {
		if v != 0 {
			t.Fatalf("Expected black frame without lights, byte %d is %d", i, v)
		}
	}
	if stats.PixelsLit != 0 {
		t.Errorf("Expected no lit pixels, got %d", stats.PixelsLit)
	}
}

func TestRaycaster_VerticalFlip(t *testing.T) {
	// A sphere above the eye line shows up in the top buffer row
	s, err := scene.New(
		scene.NewCamera(2, 2),
		geometry.NewSphere(core.NewVec3(0, 2.5, 5), 1, material.NewPhong(core.NewVec3(1, 1, 1), core.Vec3{})),
		lights.NewPointLight(core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0, 0),
	)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	frame, _ := render(t, s, Config{Width: 1, Height: 2, NumWorkers: 1})

	if r, _, _ := frame.At(0, 0); r == 0 {
		t.Error("Expected top row to show the sphere")
	}
	if r, g, b := frame.At(0, 1); r != 0 || g != 0 || b != 0 {
		t.Errorf("Expected bottom row to be black, got (%d,%d,%d)", r, g, b)
	}
}

func TestRaycaster_Idempotent(t *testing.T) {
	s := scene.NewDefaultScene()
	config := Config{Width: 64, Height: 36, NumWorkers: 4}

	first, _ := render(t, s, config)
	second, _ := render(t, s, config)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected identical frame buffers for repeated renders")
	}
}

func TestRaycaster_WorkerCountDoesNotChangeOutput(t *testing.T) {
	s := scene.NewSpotlightScene()

	reference, _ := render(t, s, Config{Width: 40, Height: 40, NumWorkers: 1})
	for _, workers := range []int{2, 3, 8, 100} {
		frame, stats := render(t, s, Config{Width: 40, Height: 40, NumWorkers: workers})
		if !bytes.Equal(reference.Pix, frame.Pix) {
			t.Errorf("Render with %d workers differs from single worker render", workers)
		}
		if stats.Workers > 40 {
			t.Errorf("Expected at most one worker per row, got %d", stats.Workers)
		}
	}
}

func TestRaycaster_Validation(t *testing.T) {
	cameraOnly, err := scene.New(scene.NewCamera(1, 1), lights.NewPointLight(core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0, 0))
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	tests := []struct {
		name        string
		scene       *scene.Scene
		config      Config
		expectedErr error
	}{
		{"zero width", redSphereScene(t), Config{Width: 0, Height: 3}, ErrInvalidDimensions},
		{"negative height", redSphereScene(t), Config{Width: 3, Height: -1}, ErrInvalidDimensions},
		{"nil scene", nil, Config{Width: 3, Height: 3}, scene.ErrEmptyScene},
		{"no surfaces", cameraOnly, Config{Width: 3, Height: 3}, ErrNoSurfaces},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, _, err := NewRaycaster(tt.scene, tt.config, nil).Render(context.Background())
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("Expected error %v, got %v", tt.expectedErr, err)
			}
			if frame != nil {
				t.Error("Expected no frame buffer on validation failure")
			}
		})
	}
}

func TestRaycaster_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := NewRaycaster(redSphereScene(t), Config{Width: 16, Height: 16}, nil).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame buffer for a cancelled render")
	}
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

func TestRaycaster_Logs(t *testing.T) {
	logger := &recordingLogger{}
	if _, _, err := NewRaycaster(redSphereScene(t), Config{Width: 2, Height: 2}, logger).Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(logger.messages) != 2 {
		t.Errorf("Expected start and completion messages, got %v", logger.messages)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("Expected at least one worker, got %d", n)
	}
}

func TestRaycaster_AutoWorkers(t *testing.T) {
	_, stats := render(t, redSphereScene(t), Config{Width: 3, Height: 3})
	if stats.Workers < 1 || stats.Workers > 3 {
		t.Errorf("Expected between 1 and 3 workers for 3 rows, got %d", stats.Workers)
	}
}

func TestRaycaster_PixelsLitMatchesFrame(t *testing.T) {
	dim, err := scene.New(
		scene.NewCamera(2, 2),
		geometry.NewSphere(core.NewVec3(0, 0, 5), 1, material.NewPhong(core.NewVec3(0.001, 0, 0), core.Vec3{})),
		lights.NewPointLight(core.Vec3{}, core.NewVec3(1, 1, 1), 1, 0, 0),
	)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}

	tests := []struct {
		name  string
		scene *scene.Scene
	}{
		{"color below one byte", dim},
		{"default scene", scene.NewDefaultScene()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, stats := render(t, tt.scene, Config{Width: 16, Height: 9, NumWorkers: 2})

			nonBlack := 0
			for y := 0; y < frame.Height; y++ {
				for x := 0; x < frame.Width; x++ {
					if r, g, b := frame.At(x, y); r|g|b != 0 {
						nonBlack++
					}
				}
			}
			if stats.PixelsLit != nonBlack {
				t.Errorf("Expected PixelsLit %d to match non-black pixels %d", stats.PixelsLit, nonBlack)
			}
		})
	}

	_, stats := render(t, dim, Config{Width: 3, Height: 3, NumWorkers: 1})
	if stats.PixelsLit != 0 {
		t.Errorf("Expected a color that quantizes to black to count as unlit, got %d", stats.PixelsLit)
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.Width <= 0 || config.Height <= 0 {
		t.Errorf("Expected positive default size, got %dx%d", config.Width, config.Height)
	}
	if config.NumWorkers != 0 {
		t.Errorf("Expected auto-detected workers by default, got %d", config.NumWorkers)
	}
}
