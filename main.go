package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atomicstack/nvim-switcher/internal/app"
	"github.com/atomicstack/nvim-switcher/internal/config"
	"github.com/atomicstack/nvim-switcher/internal/logging"
	"github.com/atomicstack/nvim-switcher/internal/logging/events"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// errHelpShown stops execution after usage has been printed.
var errHelpShown = errors.New("help shown")

// configError marks failures that should exit with status 2.
type configError struct {
	err error
}

func (e configError) Error() string { return e.err.Error() }

func (e configError) Unwrap() error { return e.err }

func main() {
	err := newRootCmd().Execute()
	code := exitCode(err)
	if code != 0 {
		if errors.As(err, new(configError)) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		} else {
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, errHelpShown):
		return 0
	case errors.As(err, new(configError)):
		return 2
	default:
		return 1
	}
}

// newRootCmd builds the command tree. Flag parsing is left to
// config.LoadArgs so flags, environment and config file resolve in one place.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:                "nvim-switcher",
		Short:              "Fuzzy buffer switcher for a running nvim",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, args)
			if err != nil {
				return err
			}
			return app.Run(cfg.App)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(&cobra.Command{
		Use:                "window",
		Short:              "Print the current window state",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, args)
			if err != nil {
				return err
			}
			return app.DumpWindow(cfg.App, cmd.OutOrStdout())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:                "watch",
		Short:              "Stream window and terminal events as JSON lines",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := prepare(cmd, args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Watch(ctx, cfg.App, cmd.OutOrStdout())
		},
	})
	return root
}

// prepare loads configuration for a command and sets up logging.
func prepare(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg, err := config.LoadArgs(args, os.Environ())
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprint(cmd.OutOrStdout(), config.Usage())
		return cfg, errHelpShown
	}
	if err != nil {
		return cfg, configError{err}
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, configError{err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	traceStartup(cfg)
	return cfg, nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
