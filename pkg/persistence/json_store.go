package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xiaomi388/templater/pkg/codec"
)

// defaultFileMode applies to new files. Existing files keep their mode.
const defaultFileMode os.FileMode = 0o644

// JSONStore implements Backend using a single JSON array file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// LoadRecords returns an error wrapping fs.ErrNotExist when the file is
// missing and one wrapping codec.ErrInvalidJSON when it is not a JSON array.
func (s *JSONStore) LoadRecords() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", codec.ErrInvalidJSON, s.path, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s: top level is not an array", codec.ErrInvalidJSON, s.path)
	}

	return records, nil
}

func (s *JSONStore) DumpRecords(records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal templates: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create dir: %w", err)
	}
	if err := replaceFile(s.path, data, defaultFileMode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Close() error {
	return nil
}
