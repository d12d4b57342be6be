package nvim

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

var (
	// ErrBackendUnavailable reports that the editor could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendError reports that the editor answered with a failure.
	ErrBackendError = errors.New("backend error")
	// ErrNoAddress is returned when no editor address can be resolved.
	ErrNoAddress = errors.New("no nvim address: pass --address or set NVIM_SWITCHER_ADDRESS, NVIM or NVIM_LISTEN_ADDRESS")
)

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrBackendUnavailable) || errors.Is(err, ErrBackendError) {
		return err
	}
	if isTransportError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrBackendError, err)
}

func isTransportError(err error) bool {
	for _, target := range []error{
		io.EOF,
		io.ErrUnexpectedEOF,
		io.ErrClosedPipe,
		net.ErrClosed,
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.EPIPE,
		syscall.ENOENT,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
