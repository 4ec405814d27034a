package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/xiaomi388/templater/pkg/types"
)

// Backend abstracts where template records live. Records are raw JSON
// objects; interpreting them is left to the codec.
type Backend interface {
	LoadRecords() ([]json.RawMessage, error)
	DumpRecords(records []json.RawMessage) error
	Path() string
	Close() error
}

// NewBackendWithPath creates a Backend of the given kind at path. An empty
// path resolves to the default location in the data dir.
func NewBackendWithPath(backend, path string) (Backend, error) {
	return NewBackend(types.StorageConfig{Backend: types.StorageBackend(backend), Path: path})
}

// NewBackend creates a Backend based on the storage configuration.
func NewBackend(cfg types.StorageConfig) (Backend, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = types.StorageBackendJSON
	}

	path := cfg.Path
	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		path = DefaultPath(dir, backend)
	}

	switch backend {
	case types.StorageBackendJSON:
		return NewJSONStore(path), nil
	case types.StorageBackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
