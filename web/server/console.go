package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
)

// DefaultConsoleHistory is the number of console messages kept for /api/console
const DefaultConsoleHistory = 256

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// ConsoleHistory is a fixed-size ring of the most recent console messages
type ConsoleHistory struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
}

// NewConsoleHistory creates a ring holding up to size messages
func NewConsoleHistory(size int) *ConsoleHistory {
	if size <= 0 {
		size = DefaultConsoleHistory
	}
	return &ConsoleHistory{messages: make([]ConsoleMessage, size)}
}

// Add stores msg, overwriting the oldest message once the ring is full
func (h *ConsoleHistory) Add(msg ConsoleMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages[h.next] = msg
	h.next = (h.next + 1) % len(h.messages)
	if h.next == 0 {
		h.full = true
	}
}

// Messages returns the stored messages, oldest first
func (h *ConsoleHistory) Messages() []ConsoleMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.full {
		return append([]ConsoleMessage{}, h.messages[:h.next]...)
	}
	out := make([]ConsoleMessage, 0, len(h.messages))
	out = append(out, h.messages[h.next:]...)
	return append(out, h.messages[:h.next]...)
}

// WebLogger implements core.Logger by sending messages to a console channel
// and recording them in the server's console history
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	history     *ConsoleHistory
}

// NewWebLogger creates a new web logger for a specific render. Either the
// channel or the history may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, history *ConsoleHistory) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		history:     history,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	// Also write to stdout for server logs
	fmt.Print(message)

	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     "info",
	}

	if wl.history != nil {
		wl.history.Add(msg)
	}

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- msg:
		default:
			// Channel full, skip (don't block)
		}
	}
}
