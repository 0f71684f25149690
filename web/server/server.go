package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Request parameter limits shared by /api/render, /api/inspect and /api/scene-config
const (
	minImageSize = 16
	maxImageSize = 4096
	maxSubpixels = 16
	maxSamples   = 10000
	maxDepth     = 4096
	minGamma     = 0.1
	maxGamma     = 5.0
)

// Server serves the live preview API of the path tracer
type Server struct {
	port      int
	scenesDir string
	echo      *echo.Echo
	console   *ConsoleHistory

	hostOnce sync.Once
	host     renderer.HostInfo

	mu      sync.Mutex
	current *activeRender // Most recent render, nil before the first one
}

// activeRender tracks the render whose framebuffer /api/snapshot serves
type activeRender struct {
	id          string
	sceneID     string
	width       int
	height      int
	totalPasses int
	pass        int
	rays        int64
	started     time.Time
	finished    time.Time
	frame       *renderer.Framebuffer
}

// RenderStatus describes the current render in /api/status
type RenderStatus struct {
	ID          string `json:"id"`
	Scene       string `json:"scene"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Pass        int    `json:"pass"`
	TotalPasses int    `json:"totalPasses"`
	Rays        int64  `json:"rays"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Done        bool   `json:"done"`
}

// StatusResponse is the body of /api/status
type StatusResponse struct {
	Host   renderer.HostInfo `json:"host"`
	Render *RenderStatus     `json:"render"`
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		console:   NewConsoleHistory(DefaultConsoleHistory),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/status", s.handleStatus)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/snapshot", s.handleSnapshot)
	e.GET("/api/console", s.handleConsole)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the configured port until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %v", err)
	}
	return nil
}

// Shutdown stops the server, waiting for active requests until ctx expires
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// errorJSON writes {"error": message} with the given status
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus reports the host machine and the progress of the current render
func (s *Server) handleStatus(c echo.Context) error {
	s.hostOnce.Do(func() {
		var err error
		if s.host, err = renderer.DescribeHost(); err != nil {
			log.Printf("Host description incomplete: %v", err)
		}
	})

	response := StatusResponse{Host: s.host}

	s.mu.Lock()
	if r := s.current; r != nil {
		end := r.finished
		if end.IsZero() {
			end = time.Now()
		}
		response.Render = &RenderStatus{
			ID:          r.id,
			Scene:       r.sceneID,
			Width:       r.width,
			Height:      r.height,
			Pass:        r.pass,
			TotalPasses: r.totalPasses,
			Rays:        r.rays,
			ElapsedMs:   end.Sub(r.started).Milliseconds(),
			Done:        !r.finished.IsZero(),
		}
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, response)
}

// handleScenes lists the built-in scenes and the scene files
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleSnapshot returns the current framebuffer as PNG
func (s *Server) handleSnapshot(c echo.Context) error {
	s.mu.Lock()
	var frame *renderer.Framebuffer
	if s.current != nil {
		frame = s.current.frame
	}
	s.mu.Unlock()

	if frame == nil {
		return errorJSON(c, http.StatusNotFound, "no render has been started")
	}

	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, frame.Snapshot()); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

// handleConsole returns the recent console messages of all renders
func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneID := c.QueryParam("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sc, err := scene.LoadByID(sceneID, s.scenesDir, scene.DefaultSamplingConfig())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	config := sc.Sampling
	response := map[string]interface{}{
		"scene":   sceneID,
		"objects": len(sc.Objects),
		"lights":  len(sc.Lights),
		"defaults": map[string]interface{}{
			"width":     config.Width,
			"height":    config.Height,
			"subpixels": config.Subpixels,
			"samples":   config.Samples,
			"maxDepth":  config.MaxDepth,
			"gamma":     config.Gamma,
			"mode":      config.Mode.String(),
		},
		"limits": map[string]interface{}{
			"width":     map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":    map[string]int{"min": minImageSize, "max": maxImageSize},
			"subpixels": map[string]int{"min": 1, "max": maxSubpixels},
			"samples":   map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":  map[string]int{"min": 1, "max": maxDepth},
			"gamma":     map[string]float64{"min": minGamma, "max": maxGamma},
		},
	}

	if bounds, ok := sc.Bounds(); ok {
		response["bounds"] = map[string]interface{}{
			"min":    vecJSON(bounds.Min),
			"max":    vecJSON(bounds.Max),
			"center": vecJSON(bounds.Center()),
			"size":   vecJSON(bounds.Size()),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
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

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
