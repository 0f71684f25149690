package renderer

import (
	"sync"

	"github.com/df07/go-path-tracer/pkg/core"
)

// PixelTask represents a chunk of a pass's visit order for the worker pool
type PixelTask struct {
	TaskID  int   // For deterministic ordering
	Indices []int // Visit indices to sample, each appears in exactly one task per pass
}

// PixelResult contains the result from rendering a chunk
type PixelResult struct {
	TaskID int
	Pixels int   // Number of pixels sampled
	Rays   int64 // Rays constructed while sampling the chunk
}

// WorkerPool manages parallel pixel rendering
type WorkerPool struct {
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
}

// Worker handles individual chunk rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	ctx         *core.RenderContext // Worker-owned random stream and ray counter
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Workers share the raytracer; each gets its own render context seeded from seed.
func NewWorkerPool(raytracer *Raytracer, numWorkers, queueSize int, seed uint64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	if queueSize < 1 {
		queueSize = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PixelTask, queueSize),
		resultQueue: make(chan PixelResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			ctx:         core.NewRenderContext(seed + uint64(i)*0x9e3779b97f4a7c15),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers. Calling it again has no effect.
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for _, worker := range wp.workers {
			wp.wg.Add(1)
			go worker.run(&wp.wg)
		}
	})
}

// Stop gracefully shuts down all workers. Calling it again has no effect.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue) // No more tasks
		wp.wg.Wait()        // Wait for workers to finish
		close(wp.resultQueue)
	})
}

// SubmitTask submits a chunk to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed chunk result
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		for _, i := range task.Indices {
			w.raytracer.RenderPixel(i, w.ctx)
		}

		w.resultQueue <- PixelResult{
			TaskID: task.TaskID,
			Pixels: len(task.Indices),
			Rays:   w.ctx.TakeRays(),
		}
	}
}
