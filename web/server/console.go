package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/df07/go-raycaster/pkg/core"
)

// nextRenderID returns a unique identifier for log correlation
func nextRenderID() string {
	return "render-" + uuid.New().String()
}

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by forwarding render messages to the
// echo logger and to a per-request console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	log         echo.Logger
}

// NewWebLogger creates a new web logger for a specific render.
// Either consoleChan or log may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, log echo.Logger) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		log:         log,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	if wl.log != nil {
		wl.log.Infof("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))
	}

	// Send to console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// drainConsole collects every message currently buffered in ch
func drainConsole(ch <-chan ConsoleMessage) []ConsoleMessage {
	var messages []ConsoleMessage
	for {
		select {
		case msg := <-ch:
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
