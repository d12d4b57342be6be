package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/nvim-switcher/internal/logging"
)

// CaptureLog points the shared logger at a temporary file for the duration
// of the test and returns a function reading what was written so far.
func CaptureLog(t *testing.T) func() string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nvim-switcher.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return func() string {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return ""
			}
			t.Fatalf("failed to read log %s: %v", path, err)
		}
		return string(data)
	}
}

// CountLines returns how many log lines contain needle.
func CountLines(content, needle string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, needle) {
			count++
		}
	}
	return count
}
