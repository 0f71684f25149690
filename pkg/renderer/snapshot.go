package renderer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
)

// SnapshotSink receives the framebuffer whenever a preview is due
type SnapshotSink func(frame *Framebuffer) error

// SnapshotWriter periodically hands the framebuffer to a sink while a render
// runs, then flushes once more when stopped
type SnapshotWriter struct {
	frame    *Framebuffer
	sink     SnapshotSink
	interval time.Duration
	logger   core.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	flushes atomic.Int64
}

// NewSnapshotWriter creates a writer that flushes frame to sink every interval
func NewSnapshotWriter(frame *Framebuffer, interval time.Duration, sink SnapshotSink, logger core.Logger) *SnapshotWriter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &SnapshotWriter{
		frame:    frame,
		sink:     sink,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the background flush loop. A non-positive interval leaves
// only the final flush done by Stop.
func (w *SnapshotWriter) Start() {
	if w.interval <= 0 {
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				// Intermediate failures are not fatal, the next tick retries
				if err := w.flush(); err != nil {
					w.logger.Printf("Snapshot failed: %v\n", err)
				}
			}
		}
	}()
}

// Stop ends the flush loop and writes the final image
func (w *SnapshotWriter) Stop() error {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
	return w.flush()
}

// Flushes returns how many times the sink has been called successfully
func (w *SnapshotWriter) Flushes() int64 {
	return w.flushes.Load()
}

func (w *SnapshotWriter) flush() error {
	if err := w.sink(w.frame); err != nil {
		return err
	}
	w.flushes.Add(1)
	return nil
}
