package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the feeder process.
type Config struct {
	// SerialDevice is the command channel: a device path, "stdio", or empty to
	// accept commands only through the remote console.
	SerialDevice string `yaml:"serial_device"`
	// ListenAddress is the gRPC remote console address. Empty disables the console.
	ListenAddress string `yaml:"listen_addr"`
	// TickInterval is the nominal control cycle period.
	TickInterval time.Duration `yaml:"tick_interval"`
	// InitialMode is the mode at boot: "manual" or "automatic".
	InitialMode string `yaml:"initial_mode"`
	// Profile names the compiled-in dispense profile.
	Profile string `yaml:"profile"`
	// JournalFile stores the last completed dispense. Empty disables the journal.
	JournalFile string `yaml:"journal_file"`
	// Timeout bounds remote console calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default settings filename.
	DefaultConfigFilename = "pawfeeder-settings.yaml"

	// DefaultJournalFilename is the default dispense journal filename.
	DefaultJournalFilename = "pawfeeder-journal.json"

	// DefaultListenAddress is where the remote console listens by default.
	DefaultListenAddress = "127.0.0.1:50061"

	// DefaultTickInterval is the nominal control cycle period.
	DefaultTickInterval = time.Second

	// DefaultTimeout is the default duration for remote console calls.
	DefaultTimeout = 5 * time.Second

	// DefaultInitialMode keeps the feeder idle until a schedule arrives.
	DefaultInitialMode = "manual"

	// DefaultProfile is the dispense profile used when none is configured.
	DefaultProfile = "shield-m1"

	// DefaultFilePermissions is the permission for files written by the feeder.
	DefaultFilePermissions = 0o600

	// envPrefix prefixes every environment override.
	envPrefix = "PAWFEEDER_"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBadInitialMode is returned for an unknown initial_mode value.
	errBadInitialMode = errors.New("initial_mode must be manual or automatic")
	// errBadTickInterval is returned for a negative tick interval.
	errBadTickInterval = errors.New("tick_interval must not be negative")
)

// Default returns settings populated with defaults.
func Default() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		TickInterval:  DefaultTickInterval,
		InitialMode:   DefaultInitialMode,
		Profile:       DefaultProfile,
		JournalFile:   DefaultJournalFilename,
		Timeout:       DefaultTimeout,
		LogLevel:      "info",
	}
}

// Load reads configuration from path, applies environment overrides and
// validates it. A missing file is not an error: defaults are used instead.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	ApplyEnv(cfg)

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// LoadDotEnv reads a .env file into the process environment if one exists.
// Variables already present in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}

	return nil
}

// ApplyEnv overrides settings from PAWFEEDER_* environment variables.
// Unparsable durations are ignored and the file value is kept.
func ApplyEnv(cfg *Config) {
	if v, ok := lookupEnv("SERIAL_DEVICE"); ok {
		cfg.SerialDevice = v
	}

	if v, ok := lookupEnv("LISTEN_ADDR"); ok {
		cfg.ListenAddress = v
	}

	if v, ok := lookupEnv("INITIAL_MODE"); ok {
		cfg.InitialMode = v
	}

	if v, ok := lookupEnv("PROFILE"); ok {
		cfg.Profile = v
	}

	if v, ok := lookupEnv("JOURNAL_FILE"); ok {
		cfg.JournalFile = v
	}

	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}

	if v, ok := lookupEnv("TICK_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TickInterval = d
		}
	}
}

// Validate checks the settings and fills in defaults for zero values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ListenAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
			return fmt.Errorf("invalid listen address: %w", err)
		}
	}

	if cfg.TickInterval < 0 {
		return errBadTickInterval
	}

	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cfg.InitialMode = strings.ToLower(strings.TrimSpace(cfg.InitialMode))
	switch cfg.InitialMode {
	case "":
		cfg.InitialMode = DefaultInitialMode
	case "manual", "automatic", "auto":
	default:
		return fmt.Errorf("%w: %q", errBadInitialMode, cfg.InitialMode)
	}

	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}

	return nil
}

// lookupEnv returns a non-empty PAWFEEDER_-prefixed variable.
func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}
