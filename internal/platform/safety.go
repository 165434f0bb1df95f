package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the notes file used when no path is given.
const DefaultFileName = "notes.txt"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolvePath determines the actual notes file path based on safety rules.
// With forceTemp, paths outside the system temp directory are re-rooted
// under a namespaced temp directory so development runs never touch real notes.
func ResolvePath(userPath string, forceTemp bool) string {
	if userPath == "" {
		userPath = DefaultFileName
	}
	if !forceTemp {
		return userPath
	}

	cleanUserPath := filepath.Clean(userPath)
	if abs, err := filepath.Abs(cleanUserPath); err == nil {
		rel, err := filepath.Rel(os.TempDir(), abs)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return cleanUserPath
		}
	}

	name := filepath.Base(cleanUserPath)
	if name == "." || name == string(os.PathSeparator) {
		name = DefaultFileName
	}
	return filepath.Join(os.TempDir(), "notes-dev", name)
}
