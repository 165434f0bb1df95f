package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindFile looks for name in startDir and then in each parent directory.
// It returns the absolute path of the first match.
func FindFile(startDir, name string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found", name)
}
