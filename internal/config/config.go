package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/nvim-switcher/internal/app"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigFile string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig         = "NVIM_SWITCHER_CONFIG"
	envAddress        = "NVIM_SWITCHER_ADDRESS"
	envWidth          = "NVIM_SWITCHER_WIDTH"
	envHeight         = "NVIM_SWITCHER_HEIGHT"
	envShowFooter     = "NVIM_SWITCHER_FOOTER"
	envTrace          = "NVIM_SWITCHER_TRACE"
	envLogFile        = "NVIM_SWITCHER_LOG_FILE"
	envTimeout        = "NVIM_SWITCHER_TIMEOUT"
	envPollInterval   = "NVIM_SWITCHER_POLL_INTERVAL"
	envNotifySeverity = "NVIM_SWITCHER_NOTIFY_SEVERITY"
	envFormat         = "NVIM_SWITCHER_FORMAT"
)

const (
	defaultTimeout      = 2 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultFormat       = "json"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindDuration
)

// settings maps each configuration key to its environment variable. The key
// doubles as the flag name and the config file field.
var settings = []struct {
	key  string
	env  string
	kind valueKind
}{
	{"address", envAddress, kindString},
	{"width", envWidth, kindInt},
	{"height", envHeight, kindInt},
	{"footer", envShowFooter, kindBool},
	{"trace", envTrace, kindBool},
	{"log-file", envLogFile, kindString},
	{"timeout", envTimeout, kindDuration},
	{"poll-interval", envPollInterval, kindDuration},
	{"notify-severity", envNotifySeverity, kindBool},
	{"format", envFormat, kindString},
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("nvim-switcher", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.String("config", "", "path to a YAML config file")
	fs.String("address", "", "nvim RPC address: socket path or host:port (defaults to $NVIM)")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool("footer", false, "enable footer hint row (disabled by default)")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.String("log-file", "", "path to the log file")
	fs.Duration("timeout", defaultTimeout, "deadline for a single backend request")
	fs.Duration("poll-interval", defaultPollInterval, "how often the window watcher polls nvim")
	fs.Bool("notify-severity", false, "send warning and error messages with their own severity")
	fs.String("format", defaultFormat, "output format for the window command (json, yaml or table)")
	return fs
}

// Usage describes the accepted flags.
func Usage() string {
	return "Usage: nvim-switcher [command] [flags]\n\n" + newFlagSet().FlagUsages()
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// as flag, then environment, then config file, then default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	configFile, _ := fs.GetString("config")
	if !fs.Changed("config") {
		configFile = envOrDefault(env, envConfig, "")
	}
	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	for _, s := range settings {
		if fs.Changed(s.key) {
			continue
		}
		if value, ok := envValue(env, s.env, s.kind); ok {
			v.Set(s.key, value)
		}
	}
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Address:         v.GetString("address"),
			Width:           v.GetInt("width"),
			Height:          v.GetInt("height"),
			ShowFooter:      v.GetBool("footer"),
			Timeout:         v.GetDuration("timeout"),
			PollInterval:    v.GetDuration("poll-interval"),
			SeverityRouting: v.GetBool("notify-severity"),
			Format:          strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		},
		Logging: Logging{
			FilePath: v.GetString("log-file"),
			Trace:    v.GetBool("trace"),
		},
		ConfigFile: configFile,
		Args:       append([]string(nil), fs.Args()...),
	}
	cfg.Flags = map[string]string{
		"address":        cfg.App.Address,
		"width":          strconv.Itoa(cfg.App.Width),
		"height":         strconv.Itoa(cfg.App.Height),
		"footer":         strconv.FormatBool(cfg.App.ShowFooter),
		"trace":          strconv.FormatBool(cfg.Logging.Trace),
		"logFile":        cfg.Logging.FilePath,
		"timeout":        cfg.App.Timeout.String(),
		"pollInterval":   cfg.App.PollInterval.String(),
		"notifySeverity": strconv.FormatBool(cfg.App.SeverityRouting),
		"format":         cfg.App.Format,
		"config":         configFile,
	}

	if cfg.App.Width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

// envValue returns the typed value of an environment entry. Blank or
// unparseable values are ignored so the next source applies.
func envValue(env map[string]string, key string, kind valueKind) (interface{}, bool) {
	raw, ok := env[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	raw = strings.TrimSpace(raw)
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true
	case kindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, false
		}
		return b, true
	case kindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, false
		}
		return d, true
	default:
		return raw, true
	}
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the loaded values are usable.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0 (got %s)", cfg.App.Timeout))
	}
	if cfg.App.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll-interval must be > 0 (got %s)", cfg.App.PollInterval))
	}
	switch cfg.App.Format {
	case "json", "yaml", "table":
	default:
		errs = append(errs, fmt.Errorf("format must be json, yaml or table (got %q)", cfg.App.Format))
	}
	return errors.Join(errs...)
}
