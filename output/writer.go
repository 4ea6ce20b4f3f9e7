// Package output persists run results. Writes are atomic so a run killed
// mid-write leaves the previous snapshot intact, which matters because the
// digitizer rewrites its output after every processed sample.
package output

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Writer persists JSON snapshots to a fixed path.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a writer for path, creating parent directories as
// needed.
func NewWriter(path string, logger *slog.Logger) (*Writer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	return &Writer{path: path, logger: logger}, nil
}

// Path returns the output path.
func (w *Writer) Path() string { return w.path }

// Write replaces the snapshot at the writer's path.
func (w *Writer) Write(v any) error {
	if err := WriteJSON(w.path, v); err != nil {
		return err
	}
	w.logger.Debug("Snapshot written", "path", w.path)
	return nil
}

// WriteJSON writes v as indented JSON to path atomically: the document is
// staged in a temp file in the same directory and renamed into place.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage output: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close output: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// WriteCharlist writes a characteristic list, one name per line, in the
// layout LoadCharlist reads back.
func WriteCharlist(path string, charlist []string) error {
	var sb strings.Builder
	for _, name := range charlist {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage charlist: %w", err)
	}

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write charlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close charlist: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace charlist: %w", err)
	}
	return nil
}
