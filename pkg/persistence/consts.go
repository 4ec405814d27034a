package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xiaomi388/templater/pkg/types"
)

const (
	AppDirName         = "Templater"
	DefaultJSONName    = "templates.json"
	DefaultSQLiteName  = "templates.db"
	DefaultConfigName  = "config.yaml"
	DefaultLogFileName = "templater.log"
)

// DataDir returns the per-user application data directory, creating it when
// missing.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}

	dir := filepath.Join(base, AppDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}

	return dir, nil
}

// DefaultPath returns where a backend keeps its data inside dir.
func DefaultPath(dir string, backend types.StorageBackend) string {
	if backend == types.StorageBackendSQLite {
		return filepath.Join(dir, DefaultSQLiteName)
	}

	return filepath.Join(dir, DefaultJSONName)
}
