package nvim

import (
	"os"
	"strings"
)

const (
	envAddress       = "NVIM_SWITCHER_ADDRESS"
	envNvim          = "NVIM"
	envListenAddress = "NVIM_LISTEN_ADDRESS"
)

// ResolveAddress picks the editor RPC address: an explicit value wins, then
// NVIM_SWITCHER_ADDRESS, then the NVIM variable exported to :terminal jobs,
// then the legacy NVIM_LISTEN_ADDRESS.
func ResolveAddress(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	for _, key := range []string{envAddress, envNvim, envListenAddress} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}
	return "", ErrNoAddress
}
