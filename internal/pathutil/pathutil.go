// Package pathutil shortens directory paths for display.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

var homeDir = os.UserHomeDir

// Simplify renders dir relative to cwd when it lies inside it ("." for cwd
// itself), otherwise relative to the home directory with a "~" prefix.
// Anything else is returned unchanged.
func Simplify(dir, cwd string) string {
	clean := filepath.Clean(dir)
	if !filepath.IsAbs(clean) {
		return dir
	}
	if strings.TrimSpace(cwd) != "" {
		if rel, ok := within(clean, filepath.Clean(cwd)); ok {
			return rel
		}
	}
	if home, err := homeDir(); err == nil && strings.TrimSpace(home) != "" {
		if rel, ok := within(clean, filepath.Clean(home)); ok {
			if rel == "." {
				return "~"
			}
			return "~" + string(filepath.Separator) + rel
		}
	}
	return dir
}

func within(path, base string) (string, bool) {
	if !filepath.IsAbs(base) {
		return "", false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
