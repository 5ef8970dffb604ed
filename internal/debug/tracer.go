package debug

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/zeebo/blake3"
)

// Event types
const (
	EventSessionStart = "session.start"
	EventSessionEnd   = "session.end"
	EventApplyStart   = "apply.start"
	EventSectionFlush = "section.flush"
	EventApplyEnd     = "apply.end"
	EventError        = "error"
)

// defaultDebugDir returns the default debug directory using os.UserCacheDir.
func defaultDebugDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "patchkit", "debug")
	}
	return "/tmp/patchkit-debug"
}

// global tracer instance
var (
	globalTracer *Tracer
	globalMu     sync.RWMutex
)

// Event represents a debug event
type Event struct {
	Timestamp string         `json:"ts"`
	Event     string         `json:"event"`
	Session   string         `json:"session"`
	Data      map[string]any `json:"data,omitempty"`
}

// Tracer handles debug event logging
type Tracer struct {
	sessionID   string
	sessionFile *os.File
	enabled     bool
	debugDir    string
	mu          sync.Mutex
}

// Init initializes the global debug tracer
// Called from main.go when PATCHKIT_DEBUG=1
func Init() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalTracer != nil {
		return nil // Already initialized
	}

	// Get debug directory from env or use default
	debugDir := os.Getenv("PATCHKIT_DEBUG_DIR")
	if debugDir == "" {
		debugDir = defaultDebugDir()
	}

	// Create debug directory if it doesn't exist
	if err := os.MkdirAll(debugDir, 0755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}

	sessionID := ulid.Make().String()

	// Create timestamp for file names
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	// Open session file
	sessionPath := filepath.Join(debugDir, fmt.Sprintf("session_%s.jsonl", timestamp))
	sessionFile, err := os.OpenFile(sessionPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}

	// Create symlink to latest session file
	latestPath := filepath.Join(debugDir, "latest.jsonl")
	_ = os.Remove(latestPath) // Remove existing symlink
	_ = os.Symlink(sessionPath, latestPath)

	tracer := &Tracer{
		sessionID:   sessionID,
		sessionFile: sessionFile,
		enabled:     true,
		debugDir:    debugDir,
	}

	// Log session start (using internal method to avoid deadlock)
	tracer.logEvent(EventSessionStart, map[string]any{
		"session_id": sessionID,
		"debug_dir":  debugDir,
	})

	globalTracer = tracer
	return nil
}

// IsEnabled returns whether tracing is active
func IsEnabled() bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalTracer != nil && globalTracer.enabled
}

// Event_ logs a structured event (using Event_ to avoid name collision with Event type)
func Event_(eventType string, data map[string]any) {
	globalMu.RLock()
	tracer := globalTracer
	globalMu.RUnlock()

	if tracer == nil || !tracer.enabled {
		return
	}

	tracer.logEvent(eventType, data)
}

// ApplyStart logs the beginning of a patch application run.
func ApplyStart(runID string, patchText []byte, lineCount, window int) {
	Event_(EventApplyStart, map[string]any{
		"run_id":      runID,
		"patch_hash":  Fingerprint(patchText),
		"patch_bytes": len(patchText),
		"lines":       lineCount,
		"window":      window,
	})
}

// SectionFlush logs one committed file section.
func SectionFlush(runID, op, path string, added, removed int) {
	Event_(EventSectionFlush, map[string]any{
		"run_id":  runID,
		"op":      op,
		"path":    path,
		"added":   added,
		"removed": removed,
	})
}

// ApplyEnd logs the end of a patch application run.
func ApplyEnd(runID string, changes int, err error) {
	data := map[string]any{
		"run_id":  runID,
		"changes": changes,
	}
	if err != nil {
		data["error"] = err.Error()
	}
	Event_(EventApplyEnd, data)
}

// Error logs an error event
func Error(errType string, err error, ctx map[string]any) {
	data := map[string]any{
		"type":  errType,
		"error": err.Error(),
	}
	for k, v := range ctx {
		data[k] = v
	}
	Event_(EventError, data)
}

// Close closes the debug tracer and logs session end
func Close() {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalTracer == nil {
		return
	}

	// Log session end before closing
	globalTracer.logEvent(EventSessionEnd, map[string]any{
		"session_id": globalTracer.sessionID,
	})

	if globalTracer.sessionFile != nil {
		_ = globalTracer.sessionFile.Close()
	}

	globalTracer = nil
}

// logEvent writes an event to the session file
func (t *Tracer) logEvent(eventType string, data map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sessionFile == nil {
		return
	}

	event := Event{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Event:     eventType,
		Session:   t.sessionID,
		Data:      data,
	}

	line, err := json.Marshal(event)
	if err != nil {
		return
	}

	_, _ = t.sessionFile.Write(line)
	_, _ = t.sessionFile.Write([]byte("\n"))
}

// Fingerprint returns a short stable hash of content, for correlating
// runs across log files without storing the content itself.
func Fingerprint(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:8])
}
