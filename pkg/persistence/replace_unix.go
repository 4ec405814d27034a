//go:build !windows

package persistence

import (
	"os"

	"github.com/google/renameio/v2"
)

// replaceFile swaps path for a file holding data. The temp file, the rename
// and the parent directory are all synced, and an existing file keeps its
// permission bits.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(path, data, perm, renameio.WithExistingPermissions())
}
