package receipt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Writer persists receipts.
type Writer interface {
	Write(r Receipt) error
	Close() error
}

// Mode selects how the receipt file is written.
type Mode string

const (
	// ModeOverwrite keeps only the latest receipt as a single JSON object.
	ModeOverwrite Mode = "overwrite"
	// ModeAppend accumulates receipts as JSONL, one object per line.
	ModeAppend Mode = "append"
)

func parseMode(s string) Mode {
	if Mode(s) == ModeAppend {
		return ModeAppend
	}
	return ModeOverwrite
}

type fileWriter struct {
	mu   sync.Mutex
	file *os.File
	mode Mode
}

// NewWriter opens the receipt file, creating parent directories as needed.
func NewWriter(path string, mode string) (Writer, error) {
	m := parseMode(mode)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create receipt directory: %w", err)
		}
	}

	flag := os.O_CREATE | os.O_WRONLY
	if m == ModeAppend {
		flag |= os.O_APPEND
	} else {
		flag |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, fmt.Errorf("open receipt file: %w", err)
	}
	return &fileWriter{file: f, mode: m}, nil
}

func (w *fileWriter) Write(r Receipt) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal receipt: %w", err)
	}
	if w.mode == ModeAppend {
		data = append(data, '\n')
	} else {
		// a second overwrite-mode receipt in one run replaces the first
		if err := w.file.Truncate(0); err != nil {
			return fmt.Errorf("truncate receipt file: %w", err)
		}
		if _, err := w.file.Seek(0, 0); err != nil {
			return fmt.Errorf("rewind receipt file: %w", err)
		}
	}
	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}

func (w *fileWriter) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
