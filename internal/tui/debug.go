package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saimali7/Tour-CRM-sub005/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub005/internal/drag"
)

// DebugLogger logs TUI state, keystrokes, and events to a file.
type DebugLogger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "tourcrm-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	// Create log file in current directory with fixed name (easy to find)
	logPath := DebugLogPath
	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	debugLog = &DebugLogger{
		file:    f,
		enabled: true,
	}

	debugLog.log("DEBUG_START", map[string]any{
		"log_file": logPath,
		"time":     time.Now().Format(time.RFC3339),
	})

	return nil
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.file != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.file.Close()
	}
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.file == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.file, "%s\n", b)
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%T", msg.Type),
	})
}

// LogDrag logs a drag state transition.
func LogDrag(action string, c *dispatch.Controller) {
	if debugLog == nil || !debugLog.enabled {
		return
	}

	data := map[string]any{
		"action":   action,
		"dragging": c.State() == dispatch.StateDragging,
		"adjust":   c.AdjustMode(),
	}
	switch p := c.Payload().(type) {
	case drag.SegmentPayload:
		data["payload"] = map[string]any{
			"kind":     "segment",
			"segment":  p.SegmentID,
			"guide":    p.GuideID,
			"start":    p.StartTime,
			"bookings": len(p.BookingIDs),
		}
	case drag.QueuedBookingPayload:
		data["payload"] = map[string]any{
			"kind":    "queued-booking",
			"booking": p.Booking.ID,
			"ref":     p.Booking.ReferenceNumber,
		}
	}
	if lt := c.LiveTime(); lt != "" {
		data["live_time"] = lt
	}

	debugLog.log("DRAG", data)
}

// LogSession logs a session journal event.
func LogSession(action string, count int) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("SESSION", map[string]any{
		"action": action,
		"count":  count,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if debugLog == nil || !debugLog.enabled {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}
