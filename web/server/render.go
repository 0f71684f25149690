package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Scene ID, built-in or "file:<name>"
	Sampling scene.SamplingConfig
	Seed     uint64
}

// PassStats represents render statistics of a completed pass
type PassStats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	MinSamples       int     `json:"minSamples"`
	MaxSamplesUsed   int     `json:"maxSamplesUsed"`
	Rays             int64   `json:"rays"`
	TotalRays        int64   `json:"totalRays"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// PassUpdate is the payload of a passComplete event
type PassUpdate struct {
	PassNumber  int       `json:"passNumber"`
	TotalPasses int       `json:"totalPasses"`
	ImageData   string    `json:"imageData"` // Base64 encoded PNG
	Stats       PassStats `json:"stats"`
	ObjectCount int       `json:"objectCount"`
	IsComplete  bool      `json:"isComplete"`
	ElapsedMs   int64     `json:"elapsedMs"`
}

// parseRenderRequest parses and validates the render parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	defaults := scene.DefaultSamplingConfig()
	sampling := defaults

	var err error
	if sampling.Width, err = parseIntParam(values, "width", defaults.Width, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if sampling.Height, err = parseIntParam(values, "height", defaults.Height, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if sampling.Subpixels, err = parseIntParam(values, "subpixels", defaults.Subpixels, 1, maxSubpixels); err != nil {
		return nil, err
	}
	if sampling.Samples, err = parseIntParam(values, "samples", defaults.Samples, 1, maxSamples); err != nil {
		return nil, err
	}
	if sampling.MaxDepth, err = parseIntParam(values, "maxDepth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}
	if sampling.Gamma, err = parseFloatParam(values, "gamma", defaults.Gamma, minGamma, maxGamma); err != nil {
		return nil, err
	}

	if mode := values.Get("mode"); mode != "" {
		if sampling.Mode, err = scene.ParseRenderMode(mode); err != nil {
			return nil, err
		}
	}

	if value := values.Get("diffuseBounces"); value != "" {
		if sampling.DiffuseBounces, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid diffuseBounces: %s", value)
		}
	}

	req.Seed = renderer.DefaultProgressiveConfig().Seed
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseUint(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	}

	req.Sampling = sampling
	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(c echo.Context) {
	header := c.Response().Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
}

// sendSSEEvent writes one event. Strings are sent as is, anything else as JSON.
func sendSSEEvent(c echo.Context, event string, payload interface{}) error {
	data, ok := payload.(string)
	if !ok {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode %s event: %v", event, err)
		}
		data = string(encoded)
	}

	if _, err := fmt.Fprintf(c.Response(), "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}

// handleRender streams a progressive render via SSE. The handler goroutine is
// the only writer: it multiplexes pass results, console messages and errors.
func (s *Server) handleRender(c echo.Context) error {
	setSSEHeaders(c)
	ctx := c.Request().Context()

	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return sendSSEEvent(c, "error", fmt.Sprintf("Invalid request: %v", err))
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 100)
	webLogger := NewWebLogger(renderID, consoleChan, s.console)

	sc, err := scene.LoadByID(req.Scene, s.scenesDir, req.Sampling)
	if err != nil {
		return sendSSEEvent(c, "error", err.Error())
	}

	config := renderer.DefaultProgressiveConfig()
	config.Seed = req.Seed
	raytracer, err := renderer.NewProgressiveRaytracer(sc, config, webLogger)
	if err != nil {
		return sendSSEEvent(c, "error", err.Error())
	}

	state := &activeRender{
		id:          renderID,
		sceneID:     req.Scene,
		width:       req.Sampling.Width,
		height:      req.Sampling.Height,
		totalPasses: req.Sampling.Samples,
		started:     time.Now(),
		frame:       raytracer.Framebuffer(),
	}
	s.mu.Lock()
	s.current = state
	s.mu.Unlock()

	webLogger.Printf("Rendering %s at %dx%d with %d workers\n", req.Scene, req.Sampling.Width, req.Sampling.Height, raytracer.NumWorkers())
	passChan, errChan := raytracer.RenderProgressive(ctx)

	for passChan != nil || errChan != nil {
		select {
		case msg := <-consoleChan:
			if err := sendSSEEvent(c, "console", msg); err != nil {
				return nil
			}

		case result, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.recordPass(state, result)
			if err := s.sendPassComplete(c, state, result, sc.ShapeCount()); err != nil {
				log.Printf("Render %s: %v", renderID, err)
				return nil
			}

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				s.finish(state)
				return sendSSEEvent(c, "error", fmt.Sprintf("Rendering failed: %v", err))
			}

		case <-ctx.Done():
			// Client disconnected; the render stops after its current pass
			s.finish(state)
			return nil
		}
	}

	s.finish(state)

	// Forward whatever the render logged after its last pass
	for {
		select {
		case msg := <-consoleChan:
			if err := sendSSEEvent(c, "console", msg); err != nil {
				return nil
			}
		default:
			return sendSSEEvent(c, "complete", "Rendering completed")
		}
	}
}

// recordPass updates the progress reported by /api/status
func (s *Server) recordPass(state *activeRender, result renderer.PassResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.pass = result.PassNumber
	state.rays = result.Stats.TotalRays
}

// finish marks the render as no longer running
func (s *Server) finish(state *activeRender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.finished.IsZero() {
		state.finished = time.Now()
	}
}

// sendPassComplete encodes the pass image and sends a passComplete event
func (s *Server) sendPassComplete(c echo.Context, state *activeRender, result renderer.PassResult, objectCount int) error {
	imageData, err := imageToBase64PNG(result.Image)
	if err != nil {
		return fmt.Errorf("failed to encode pass %d: %v", result.PassNumber, err)
	}

	stats := result.Stats
	update := PassUpdate{
		PassNumber:  result.PassNumber,
		TotalPasses: state.totalPasses,
		ImageData:   imageData,
		Stats: PassStats{
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			AverageSamples:   stats.AverageSamples,
			MinSamples:       stats.MinSamples,
			MaxSamplesUsed:   stats.MaxSamplesUsed,
			Rays:             stats.Rays,
			TotalRays:        stats.TotalRays,
			AverageLuminance: stats.AverageLuminance,
		},
		ObjectCount: objectCount,
		IsComplete:  result.IsLast,
		ElapsedMs:   time.Since(state.started).Milliseconds(),
	}

	return sendSSEEvent(c, "passComplete", update)
}
