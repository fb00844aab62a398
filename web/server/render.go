package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/loaders"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const consoleBufferSize = 16

// RenderRequest holds the validated query parameters of a render call
type RenderRequest struct {
	Width  int
	Height int
	Format string // "png", "p3", "p6" or "json"
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	PixelsLit   int     `json:"pixelsLit"`
	LitRatio    float64 `json:"litRatio"`
	Workers     int     `json:"workers"`
	ElapsedMs   int64   `json:"elapsedMs"`
}

// RenderResponse is returned for format=json
type RenderResponse struct {
	ID        string           `json:"id"`
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// handleRender renders a JSON scene posted in the request body
func (s *Server) handleRender(c echo.Context) error {
	sceneObj, err := loaders.ParseScene(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid scene: %v", err))
	}
	return s.render(c, "custom", sceneObj)
}

// handleRenderBuiltin renders one of the built-in scenes
func (s *Server) handleRenderBuiltin(c echo.Context) error {
	name := c.Param("scene")
	sceneObj, err := scene.Lookup(name)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return s.render(c, name, sceneObj)
}

func (s *Server) render(c echo.Context, name string, sceneObj *scene.Scene) error {
	req, err := parseRenderRequest(c, sceneObj)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	renderID := nextRenderID()
	consoleChan := make(chan ConsoleMessage, consoleBufferSize)
	logger := NewWebLogger(renderID, consoleChan, c.Logger())

	config := renderer.DefaultConfig()
	config.Width, config.Height = req.Width, req.Height
	if s.workers > 0 {
		config.NumWorkers = s.workers
	}
	frame, stats, err := renderer.NewRaycaster(sceneObj, config, logger).Render(c.Request().Context())
	if err != nil {
		return renderError(err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	header.Set("X-Pixels-Lit", strconv.Itoa(stats.PixelsLit))

	if req.Format == "json" {
		imageData, err := frameToBase64PNG(frame)
		if err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
		return c.JSON(http.StatusOK, RenderResponse{
			ID:        renderID,
			Scene:     name,
			Width:     req.Width,
			Height:    req.Height,
			ImageData: imageData,
			Stats:     toStats(stats),
			Console:   drainConsole(consoleChan),
		})
	}

	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, frame, req.Format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return c.Blob(http.StatusOK, contentType(req.Format), buf.Bytes())
}

// parseRenderRequest parses request parameters. Missing dimensions follow the
// camera's aspect ratio.
func parseRenderRequest(c echo.Context, sceneObj *scene.Scene) (*RenderRequest, error) {
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(c, "width", renderer.DefaultConfig().Width, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(c, "height", aspectHeight(sceneObj, req.Width), 1, maxDimension); err != nil {
		return nil, err
	}

	switch format := strings.ToLower(c.QueryParam("format")); format {
	case "", "png":
		req.Format = "png"
	case "ppm", "p6":
		req.Format = "p6"
	case "p3", "json":
		req.Format = format
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return req, nil
}

// aspectHeight returns the pixel height matching the camera's aspect ratio
func aspectHeight(sceneObj *scene.Scene, width int) int {
	cam := sceneObj.Camera()
	h := int(math.Round(float64(width) * cam.Height / cam.Width))
	return max(1, min(h, maxDimension))
}

// parseIntParam parses an integer query parameter with validation
func parseIntParam(c echo.Context, key string, defaultValue, min, max int) (int, error) {
	if value := c.QueryParam(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// renderError maps render failures onto HTTP statuses
func renderError(err error) error {
	switch {
	case errors.Is(err, renderer.ErrNoSurfaces), errors.Is(err, renderer.ErrInvalidDimensions):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "render cancelled")
	default:
		return fmt.Errorf("render error: %w", err)
	}
}

func contentType(format string) string {
	if format == "png" {
		return "image/png"
	}
	return "image/x-portable-pixmap"
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels: stats.TotalPixels,
		PixelsLit:   stats.PixelsLit,
		LitRatio:    stats.LitRatio(),
		Workers:     stats.Workers,
		ElapsedMs:   stats.Elapsed.Milliseconds(),
	}
}

// frameToBase64PNG converts a frame buffer to base64-encoded PNG
func frameToBase64PNG(frame *core.FrameBuffer) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodeImage(&buf, frame, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
