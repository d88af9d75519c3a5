// Package audit records sandbox lifecycle events as JSON Lines, one file
// per project slug. The log is append-only and read back only for display.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate  EventType = "create"
	EventRecover EventType = "recover"
	EventStart   EventType = "start"
	EventStop    EventType = "stop"
	EventDestroy EventType = "destroy"
	EventAttach  EventType = "attach"
	EventExec    EventType = "exec"
	EventError   EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Slug      string    `json:"slug"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads lifecycle events.
// Events are stored in {dir}/{slug}.jsonl.
type Logger struct {
	dir string
}

// NewLogger creates an audit logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

func (l *Logger) eventPath(slug string) string {
	return filepath.Join(l.dir, slug+".jsonl")
}

// Log appends an event to the project's audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path := l.eventPath(event.Slug)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, slug, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Slug:      slug,
		Details:   details,
	})
}

// Events reads all events for a project in chronological order.
func (l *Logger) Events(slug string) ([]Event, error) {
	path := l.eventPath(slug)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}

// Slugs lists the projects that have an audit log, sorted by name.
func (l *Logger) Slugs() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log directory: %w", err)
	}

	var slugs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".jsonl" {
			continue
		}
		slugs = append(slugs, name[:len(name)-len(".jsonl")])
	}
	return slugs, nil
}

// Remove deletes the audit log for a project.
func (l *Logger) Remove(slug string) error {
	path := l.eventPath(slug)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
