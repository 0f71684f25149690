package server

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan, nil)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	history := NewConsoleHistory(8)
	logger := NewWebLogger("test-render-789", messageChan, history)

	// Only the first message fits in the channel; none may block
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	if got := len(messageChan); got != 1 {
		t.Errorf("Expected 1 buffered message, got %d", got)
	}
	// The history still records everything
	if got := len(history.Messages()); got != 3 {
		t.Errorf("Expected 3 messages in history, got %d", got)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil, nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestConsoleHistory_Ring(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		added int
		want  []string
	}{
		{"empty", 3, 0, []string{}},
		{"partial", 3, 2, []string{"m0", "m1"}},
		{"exactly full", 3, 3, []string{"m0", "m1", "m2"}},
		{"wrapped", 3, 5, []string{"m2", "m3", "m4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := NewConsoleHistory(tt.size)
			for i := 0; i < tt.added; i++ {
				history.Add(ConsoleMessage{Message: fmt.Sprintf("m%d", i)})
			}

			got := []string{}
			for _, msg := range history.Messages() {
				got = append(got, msg.Message)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Messages mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewConsoleHistory_DefaultSize(t *testing.T) {
	history := NewConsoleHistory(0)
	for i := 0; i < DefaultConsoleHistory+10; i++ {
		history.Add(ConsoleMessage{Message: "x"})
	}
	if got := len(history.Messages()); got != DefaultConsoleHistory {
		t.Errorf("Expected %d messages, got %d", DefaultConsoleHistory, got)
	}
}
