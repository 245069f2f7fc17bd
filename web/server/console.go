package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

const consoleLimit = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice"
}

// Console keeps the most recent render log messages for the web client
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	limit    int
}

// NewConsole creates a console holding at most limit messages
func NewConsole(limit int) *Console {
	return &Console{limit: limit}
}

// Add appends a message, dropping the oldest once the limit is reached
func (c *Console) Add(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
}

// Recent returns a copy of the stored messages, oldest first
func (c *Console) Recent() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage{}, c.messages...)
}

// WebLogger implements core.Logger by forwarding every message to a server
// log and recording it in the console
type WebLogger struct {
	renderID string
	console  *Console
	sink     log.Logger
}

// NewWebLogger creates a new web logger for a specific render. sink may be nil.
func NewWebLogger(renderID string, console *Console, sink log.Logger) core.Logger {
	return &WebLogger{
		renderID: renderID,
		console:  console,
		sink:     sink,
	}
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	if wl.sink != nil {
		wl.sink.Debugf(wl.renderID+": "+format, args...)
	}
	wl.record("debug", format, args)
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	if wl.sink != nil {
		wl.sink.Infof(wl.renderID+": "+format, args...)
	}
	wl.record("info", format, args)
}

func (wl *WebLogger) Noticef(format string, args ...interface{}) {
	if wl.sink != nil {
		wl.sink.Noticef(wl.renderID+": "+format, args...)
	}
	wl.record("notice", format, args)
}

func (wl *WebLogger) record(level, format string, args []interface{}) {
	if wl.console == nil {
		return
	}
	wl.console.Add(ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	})
}
