package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

const (
	maxDimension = 4096
	maxSceneBody = "2M"
)

// Server handles web requests for the raycaster
type Server struct {
	port    int
	workers int
	echo    *echo.Echo
}

// NewServer creates a new web server. workers <= 0 renders with one worker per logical CPU.
func NewServer(port, workers int) *Server {
	s := &Server{port: port, workers: workers}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/scenes", s.handleScenes)
	api.POST("/render", s.handleRender, middleware.BodyLimit(maxSceneBody))
	api.GET("/render/:scene", s.handleRenderBuiltin)
	api.GET("/inspect/:scene", s.handleInspect)

	s.echo = e
	return s
}

// Handler exposes the routes, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.echo.Logger.Infof("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string               `json:"status"`
	Workers int                  `json:"workers"`
	System  *renderer.SystemInfo `json:"system,omitempty"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{Status: "ok", Workers: s.workers}
	if response.Workers <= 0 {
		response.Workers = renderer.DefaultWorkers()
	}
	if info, err := renderer.GetSystemInfo(); err == nil {
		response.System = &info
	} else {
		c.Logger().Warnf("system info unavailable: %v", err)
	}
	return c.JSON(http.StatusOK, response)
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListBuiltin())
}
