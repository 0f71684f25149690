package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-path-tracer/pkg/core"
)

// RenderMode selects what the tracer writes into each pixel
type RenderMode int

const (
	ModeColor        RenderMode = iota // Full light transport
	ModeDepth                          // Normalized distance to the first hit
	ModeNormal                         // Surface normal mapped to [0,1]
	ModeNormalAbs                      // Absolute surface normal
	ModeRayDirection                   // Direction of the last traced ray
	ModeRayDepth                       // Bounce count of the last traced ray
)

var renderModeNames = map[RenderMode]string{
	ModeColor:        "color",
	ModeDepth:        "depth",
	ModeNormal:       "normal",
	ModeNormalAbs:    "normal-abs",
	ModeRayDirection: "ray-dir",
	ModeRayDepth:     "ray-depth",
}

// String returns the flag name of the mode
func (m RenderMode) String() string {
	if name, ok := renderModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// ParseRenderMode parses a mode name as produced by String
func ParseRenderMode(s string) (RenderMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for mode, name := range renderModeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeColor, fmt.Errorf("unknown render mode %q", s)
}

// CameraConfig describes the pinhole camera
type CameraConfig struct {
	Eye      core.Vec3 // Camera position
	LookAt   core.Vec3 // Point the camera is aimed at
	Distance float64   // Distance from the eye at which primary rays start
	FOV      float64   // Field of view scale of the image plane
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width          int        // Image width
	Height         int        // Image height
	Subpixels      int        // Sub-pixel grid size per axis (Subpixels² rays per pixel per pass)
	Samples        int        // Number of progressive passes
	MaxDepth       int        // Maximum ray bounce depth
	Ambient        core.Vec3  // Ambient light added to every lit surface
	Gamma          float64    // Display gamma
	Mode           RenderMode // What the tracer writes into each pixel
	DiffuseBounces bool       // Continue paths off diffuse surfaces with Russian roulette
}

// DefaultCameraConfig returns the camera used when a scene does not provide one
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Eye:      core.NewVec3(-50, 90, 300),
		LookAt:   core.NewVec3(10, 30, 0),
		Distance: 130,
		FOV:      0.5135,
	}
}

// DefaultSamplingConfig returns a fast preview configuration
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:     640,
		Height:    360,
		Subpixels: 1,
		Samples:   2,
		MaxDepth:  4,
		Ambient:   core.Splat(0.01),
		Gamma:     2.2,
		Mode:      ModeColor,
	}
}

// HighQualitySamplingConfig returns a configuration for final renders
func HighQualitySamplingConfig() SamplingConfig {
	config := DefaultSamplingConfig()
	config.Width = 1920
	config.Height = 1080
	config.Subpixels = 4
	config.Samples = 128
	config.MaxDepth = 2048
	return config
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.Subpixels != 0 {
		result.Subpixels = override.Subpixels
	}
	if override.Samples != 0 {
		result.Samples = override.Samples
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if !override.Ambient.IsZero() {
		result.Ambient = override.Ambient
	}
	if override.Gamma != 0 {
		result.Gamma = override.Gamma
	}
	if override.Mode != ModeColor {
		result.Mode = override.Mode
	}
	if override.DiffuseBounces {
		result.DiffuseBounces = true
	}
	return result
}

// Validate checks that the configuration can be rendered
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	case c.Subpixels <= 0:
		return fmt.Errorf("subpixels must be positive, got %d", c.Subpixels)
	case c.Samples <= 0:
		return fmt.Errorf("samples must be positive, got %d", c.Samples)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	case c.Gamma <= 0:
		return fmt.Errorf("gamma must be positive, got %f", c.Gamma)
	}
	return nil
}

// MinRays returns the number of primary rays a full render generates
func (c SamplingConfig) MinRays() int64 {
	return int64(c.Width) * int64(c.Height) * int64(c.Subpixels) * int64(c.Subpixels) * int64(c.Samples)
}

// MaxRays returns the ray count if every primary path reaches MaxDepth
func (c SamplingConfig) MaxRays() int64 {
	return c.MinRays() * int64(c.MaxDepth)
}
