package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/scene"
)

var (
	// ErrInvalidDimensions is returned for a non-positive output size
	ErrInvalidDimensions = errors.New("output width and height must be positive")
	// ErrNoSurfaces is returned when the scene has nothing for rays to hit
	ErrNoSurfaces = errors.New("scene has no spheres or planes")
)

// Config contains rendering configuration
type Config struct {
	Width      int // Output width in pixels
	Height     int // Output height in pixels
	NumWorkers int // Number of parallel workers (0 = DefaultWorkers)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:      400,
		Height:     400,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raycaster casts one ray per pixel and shades the nearest hit.
// It holds no mutable state, so a render is a pure function of scene and config.
type Raycaster struct {
	scene      *scene.Scene
	config     Config
	camera     *Camera
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaycaster creates a new raycaster
func NewRaycaster(s *scene.Scene, config Config, logger core.Logger) *Raycaster {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	rc := &Raycaster{
		scene:      s,
		config:     config,
		integrator: integrator.NewPhongIntegrator(),
		logger:     logger,
	}
	if s != nil && s.Camera() != nil && config.Width > 0 && config.Height > 0 {
		rc.camera = NewCamera(s.Camera(), config.Width, config.Height)
	}
	return rc
}

// Validate checks every render precondition before any pixel is produced
func (rc *Raycaster) Validate() error {
	if rc.config.Width <= 0 || rc.config.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rc.config.Width, rc.config.Height)
	}
	if rc.scene == nil {
		return scene.ErrEmptyScene
	}
	if rc.scene.Camera() == nil {
		return scene.ErrMissingCamera
	}
	if !rc.scene.HasSurfaces() {
		return ErrNoSurfaces
	}
	return nil
}

// Render produces the frame buffer. Scan row k is stored at buffer row height-1-k.
func (rc *Raycaster) Render(ctx context.Context) (*core.FrameBuffer, RenderStats, error) {
	if err := rc.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := rc.config.Width, rc.config.Height
	frame := core.NewFrameBuffer(width, height)

	numWorkers := rc.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultWorkers()
	}
	numWorkers = min(numWorkers, height)

	rc.logger.Printf("Rendering %dx%d with %d workers (%d surfaces, %d lights)\n",
		width, height, numWorkers, len(rc.scene.Shapes()), len(rc.scene.Lights()))

	pool := NewWorkerPool(rc, frame, numWorkers)
	pool.Start(ctx)
	for k := 0; k < height; k++ {
		pool.SubmitTask(RowTask{Row: k})
	}
	pool.Stop()

	stats := RenderStats{
		TotalPixels: width * height,
		Workers:     pool.GetNumWorkers(),
	}
	var renderErr error
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			renderErr = result.Error
			continue
		}
		stats.Rows++
		stats.PixelsLit += result.PixelsLit
	}
	stats.Elapsed = time.Since(start)

	if renderErr != nil {
		return nil, stats, renderErr
	}

	rc.logger.Printf("Render completed in %v (%d of %d pixels lit)\n",
		stats.Elapsed, stats.PixelsLit, stats.TotalPixels)
	return frame, stats, nil
}

// RenderRow shades every pixel of scan row k into frame and returns how many came out non-black
func (rc *Raycaster) RenderRow(k int, frame *core.FrameBuffer) int {
	lit := 0
	y := rc.config.Height - 1 - k

	for j := 0; j < rc.config.Width; j++ {
		ray := rc.camera.GetRay(j, k)
		r, g, b := core.QuantizeColor(rc.integrator.RayColor(ray, rc.scene))
		if r|g|b != 0 {
			lit++
		}
		frame.Set(j, y, r, g, b)
	}

	return lit
}
