// Package notebook locates the notebook root that scopes a document.
package notebook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/starford/zkbridge/internal/apperr"
)

// MarkerDir is the directory whose presence marks a notebook root.
const MarkerDir = ".zk"

// Root walks upward from the document's directory and returns the first
// ancestor containing a .zk directory. The marker's presence is the sole
// gate for enabling zk features on a document.
func Root(docPath string) (string, error) {
	if docPath == "" {
		return "", apperr.ErrNotBound
	}
	abs, err := filepath.Abs(docPath)
	if err != nil {
		return "", fmt.Errorf("notebook: resolve %s: %w", docPath, err)
	}

	dir := abs
	if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		marker := filepath.Join(dir, MarkerDir)
		if info, statErr := os.Stat(marker); statErr == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("notebook: no %s directory above %s: %w", MarkerDir, docPath, apperr.ErrNotebookNotFound)
		}
		dir = parent
	}
}
