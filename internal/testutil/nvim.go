package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

// RequireNvim aborts the calling test when nvim is not present on PATH.
func RequireNvim(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("nvim")
	if err != nil {
		t.Skip("skipping: nvim binary not available")
	}
	return path
}

// StartNvim boots a headless nvim listening on a socket in a temporary
// directory and returns the socket address. The instance is killed when the
// test finishes.
func StartNvim(t *testing.T) string {
	t.Helper()
	bin := RequireNvim(t)
	baseDir, err := os.MkdirTemp("/tmp", "nvim-switcher-*")
	if err != nil {
		t.Fatalf("failed to create nvim temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(baseDir) })
	socketPath := filepath.Join(baseDir, "nvim.sock")

	cmd := exec.Command(bin, "--headless", "--clean", "-n", "--listen", socketPath)
	cmd.Dir = baseDir
	cmd.Env = filteredEnv()
	if err := cmd.Start(); err != nil {
		t.Skipf("skipping: failed to start nvim: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			t.Logf("started nvim test instance pid=%d socket=%s", cmd.Process.Pid, socketPath)
			return socketPath
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Skipf("skipping: nvim did not create socket %s", socketPath)
	return ""
}

func filteredEnv() []string {
	env := make([]string, 0, len(os.Environ()))
	for _, entry := range os.Environ() {
		switch {
		case hasKey(entry, "NVIM"), hasKey(entry, "NVIM_LISTEN_ADDRESS"), hasKey(entry, "NVIM_SWITCHER_ADDRESS"):
			continue
		}
		env = append(env, entry)
	}
	return env
}

func hasKey(entry, key string) bool {
	return len(entry) > len(key) && entry[:len(key)] == key && entry[len(key)] == '='
}
