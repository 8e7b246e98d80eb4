package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tuxprep/trainer/internal/domain/history"
)

// JSONFile persists the history store as a single JSON document, the default
// backend. The document's top-level keys are total_attempts, total_correct,
// questions, categories, incorrect_review and sessions.
type JSONFile struct {
	path   string
	logger *slog.Logger
}

// NewJSONFile creates a JSON-file repository at the given path.
func NewJSONFile(path string, logger *slog.Logger) *JSONFile {
	return &JSONFile{path: path, logger: logger}
}

// Load reads the document. A missing or unreadable file yields a fresh empty
// store with an informational log line, never an error.
func (j *JSONFile) Load() (*history.Store, error) {
	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			j.logger.Info("no history file, starting fresh", "path", j.path)
		} else {
			j.logger.Warn("history file unreadable, starting fresh", "path", j.path, "error", err)
		}
		return history.NewStore(), nil
	}

	st := history.NewStore()
	if err := json.Unmarshal(data, st); err != nil {
		j.logger.Warn("history file corrupt, starting fresh", "path", j.path, "error", err)
		return history.NewStore(), nil
	}
	st.Normalize()
	return st, nil
}

// Save writes the full document, replacing prior content.
func (j *JSONFile) Save(st *history.Store) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func (j *JSONFile) Close() error {
	return nil
}
