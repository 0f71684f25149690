package renderer

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestSnapshotWriter_FlushesPeriodicallyAndOnStop(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	var calls atomic.Int64

	w := NewSnapshotWriter(fb, time.Millisecond, func(frame *Framebuffer) error {
		if frame != fb {
			t.Error("Sink received a different framebuffer")
		}
		calls.Add(1)
		return nil
	}, nil)

	w.Start()
	deadline := time.Now().Add(2 * time.Second)
	for calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	if calls.Load() < 3 {
		t.Errorf("Expected periodic flushes plus a final one, got %d", calls.Load())
	}
	if w.Flushes() != calls.Load() {
		t.Errorf("Flushes() = %d, sink saw %d", w.Flushes(), calls.Load())
	}
}

func TestSnapshotWriter_FinalFlushError(t *testing.T) {
	sinkErr := errors.New("disk full")
	w := NewSnapshotWriter(NewFramebuffer(1, 1), time.Hour, func(*Framebuffer) error {
		return sinkErr
	}, nil)

	w.Start()
	if err := w.Stop(); !errors.Is(err, sinkErr) {
		t.Errorf("Expected final flush error, got %v", err)
	}
	if w.Flushes() != 0 {
		t.Errorf("Failed flushes should not be counted, got %d", w.Flushes())
	}
}

func TestSnapshotWriter_ZeroIntervalOnlyFlushesOnStop(t *testing.T) {
	var calls atomic.Int64
	w := NewSnapshotWriter(NewFramebuffer(2, 2), 0, func(*Framebuffer) error {
		calls.Add(1)
		return nil
	}, nil)

	w.Start()
	time.Sleep(5 * time.Millisecond)
	if calls.Load() != 0 {
		t.Errorf("Expected no flushes before Stop, got %d", calls.Load())
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("Expected exactly the final flush, got %d", calls.Load())
	}
}
