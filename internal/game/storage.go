package game

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveSaveDir returns the directory profiles are stored in. Relative
// paths are placed next to the app executable.
func ResolveSaveDir(dir string) string {
	if dir == "" {
		dir = "saves"
	}
	if filepath.IsAbs(dir) {
		_ = os.MkdirAll(dir, 0755)
		return dir
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		// When running via "go run", the executable lives in a temp build dir.
		// In that case, prefer the current working directory so saves persist.
		if !isTempExeDir(exeDir) {
			full := filepath.Join(exeDir, dir)
			if err := os.MkdirAll(full, 0755); err == nil {
				return full
			}
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		full := filepath.Join(cwd, dir)
		_ = os.MkdirAll(full, 0755)
		return full
	}
	return dir
}

// isTempExeDir returns true when the executable directory looks like a Go temp build path.
func isTempExeDir(dir string) bool {
	clean := filepath.Clean(dir)
	if strings.Contains(clean, string(filepath.Separator)+"go-build") {
		return true
	}
	if strings.HasPrefix(clean, filepath.Clean(os.TempDir())+string(filepath.Separator)) {
		return true
	}
	return false
}
