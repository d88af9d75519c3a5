package apilogger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/denlabs/den/internal/errors"
)

// Record is one logged API exchange.
type Record struct {
	Timestamp       time.Time `json:"timestamp"`
	Project         string    `json:"project"`
	Model           string    `json:"model"`
	PromptPreview   string    `json:"prompt_preview"`
	ResponsePreview string    `json:"response_preview"`
	InputTokens     int       `json:"input_tokens"`
	OutputTokens    int       `json:"output_tokens"`
	DurationMS      int64     `json:"duration_ms"`
	StatusCode      int       `json:"status_code"`
	Path            string    `json:"path"`
}

// Store appends records to daily JSONL files under {root}/{project}.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a store for the given project. The project name is
// externally supplied, so it is joined with the root via securejoin to keep
// the log directory inside root.
func NewStore(root, project string) (*Store, error) {
	if root == "" {
		return nil, errors.LoggerError("log root not configured", nil)
	}

	dir, err := securejoin.SecureJoin(root, project)
	if err != nil {
		return nil, errors.LoggerError(fmt.Sprintf("invalid project name %q", project), err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.LoggerError("failed to create log directory", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the project's log directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) todayFile() string {
	return s.fileFor(time.Now())
}

func (s *Store) fileFor(t time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("api-log-%s.jsonl", t.Format("2006-01-02")))
}

// Append writes one record to today's log file.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.fileFor(rec.Timestamp), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return nil
}
