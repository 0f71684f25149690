package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/integrator"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	ChunkSize  int    // Pixels per worker task
	NumWorkers int    // Number of parallel workers (0 = use CPU count)
	Seed       uint64 // Seeds the first-pass permutation and the worker random streams
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		ChunkSize:  1024,
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       42,
	}
}

// ProgressiveRaytracer manages progressive rendering with multiple passes.
// Every pass adds one sample to every pixel; the pass count comes from the
// scene's sampling config.
type ProgressiveRaytracer struct {
	scene       *scene.Scene
	config      ProgressiveConfig
	raytracer   *Raytracer  // Shared by all workers
	workerPool  *WorkerPool // Worker pool for parallel processing
	logger      core.Logger // Logger for rendering output
	firstOrder  []int       // Visit order of the first pass
	stripeOrder []int       // Visit order of every later pass
	currentPass int
	totalRays   int64
}

// NewProgressiveRaytracer creates a new progressive raytracer for the scene
func NewProgressiveRaytracer(s *scene.Scene, config ProgressiveConfig, logger core.Logger) (*ProgressiveRaytracer, error) {
	if err := s.Sampling.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %v", err)
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultProgressiveConfig().ChunkSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	raytracer := NewRaytracer(s, integrator.NewTracer(s))
	n := s.Sampling.Width * s.Sampling.Height
	chunks := (n + config.ChunkSize - 1) / config.ChunkSize

	return &ProgressiveRaytracer{
		scene:       s,
		config:      config,
		raytracer:   raytracer,
		workerPool:  NewWorkerPool(raytracer, config.NumWorkers, chunks, config.Seed),
		logger:      logger,
		firstOrder:  RandomOrder(n, core.NewXorShift(config.Seed)),
		stripeOrder: StripedOrder(n, stripeStride),
	}, nil
}

// Framebuffer returns the buffer passes are published to. It may be read
// concurrently with rendering.
func (pr *ProgressiveRaytracer) Framebuffer() *Framebuffer {
	return pr.raytracer.Framebuffer()
}

// TotalRays returns the number of rays constructed by completed passes
func (pr *ProgressiveRaytracer) TotalRays() int64 {
	return pr.totalRays
}

// NumWorkers returns the number of render workers
func (pr *ProgressiveRaytracer) NumWorkers() int {
	return pr.workerPool.GetNumWorkers()
}

// Close stops the worker pool. RenderProgressive closes it on return.
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

// orderForPass returns the visit order for a 1-based pass number
func (pr *ProgressiveRaytracer) orderForPass(passNumber int) []int {
	if passNumber == 1 {
		return pr.firstOrder
	}
	return pr.stripeOrder
}

// RenderPass renders a single progressive pass using parallel processing
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (*image.RGBA, RenderStats, error) {
	pr.currentPass = passNumber
	order := pr.orderForPass(passNumber)

	pr.logger.Printf("Pass %d: sampling %d pixels (using %d workers)...\n",
		passNumber, len(order), pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	// Submit the visit order in contiguous chunks
	taskCount := 0
	for start := 0; start < len(order); start += pr.config.ChunkSize {
		end := min(start+pr.config.ChunkSize, len(order))
		pr.workerPool.SubmitTask(PixelTask{TaskID: taskCount, Indices: order[start:end]})
		taskCount++
	}

	var passRays int64
	for i := 0; i < taskCount; i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		passRays += result.Rays
	}
	pr.totalRays += passRays

	// Every pixel is rewritten once the pass is complete
	pr.raytracer.PublishAll()

	img := pr.raytracer.Framebuffer().Snapshot()
	stats := pr.raytracer.collectStats()
	stats.Rays = passRays
	stats.TotalRays = pr.totalRays
	stats.AverageLuminance = CalculateAverageLuminance(img)

	return img, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// RenderProgressive renders with channel-based communication (idiomatic Go)
// Returns channels for events. The caller should read from these channels in separate goroutines.
// Cancellation is observed between passes only.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.workerPool.Stop()

		maxPasses := pr.scene.Sampling.Samples
		pr.logger.Printf("Starting progressive rendering with %d passes...\n", maxPasses)

		for pass := 1; pass <= maxPasses; pass++ {
			// Check if the caller gave up before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()

			img, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%d rays)\n", pass, time.Since(startTime), stats.Rays)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				IsLast:     pass == maxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
