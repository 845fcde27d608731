// Package config loads desk CLI configuration from defaults, an optional
// YAML file in the user config directory, and environment overrides, in
// that order of precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aiutodesk/desk/internal/errors"
)

const (
	// DefaultBaseURL is the hosted AiutoDesk backend.
	DefaultBaseURL = "https://aiutodesk-backend.onrender.com"

	// DevProxyURL is the local development proxy ('desk proxy').
	DevProxyURL = "http://localhost:3001"

	// DefaultTimeout is the fixed per-request timeout of the shared transport.
	DefaultTimeout = 10 * time.Second

	// EnvBaseURL overrides the API base address.
	EnvBaseURL = "AIUTODESK_API_URL"

	// EnvTimeout overrides the request timeout (Go duration string).
	EnvTimeout = "AIUTODESK_TIMEOUT"

	// EnvLogLevel overrides the log level (debug, info, warn, error).
	EnvLogLevel = "AIUTODESK_LOG_LEVEL"

	// EnvConfigDir overrides the config directory (used by tests).
	EnvConfigDir = "AIUTODESK_CONFIG_DIR"

	appDirName     = "aiutodesk"
	configFileName = "config.yaml"
)

// Config holds the CLI configuration.
type Config struct {
	// BaseURL is the API base address all requests are sent to.
	BaseURL string `yaml:"base_url"`

	// Timeout is the fixed request timeout for the shared HTTP transport.
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel is the minimum level emitted by the logger.
	LogLevel string `yaml:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Dir returns the desk config directory, creating it if necessary.
// AIUTODESK_CONFIG_DIR overrides the platform default.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return "", errors.Wrap(errors.ErrCodeConfigInvalid, "failed to create config directory", err)
		}
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "failed to locate user config directory", err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", errors.Wrap(errors.ErrCodeConfigInvalid, "failed to create config directory", err)
	}
	return dir, nil
}

// Load builds the effective configuration: defaults, then the config file
// (if present), then environment overrides. A missing config file is not
// an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		// No usable config dir: fall back to defaults + environment.
		return applyEnv(cfg)
	}

	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("malformed config file: %s", path), err).
				WithSuggestion("Fix the YAML syntax or delete the file to use defaults")
		}
	} else if !os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("failed to read config file: %s", path), err)
	}

	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	if url := os.Getenv(EnvBaseURL); url != "" {
		cfg.BaseURL = url
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeConfigInvalid,
				fmt.Sprintf("invalid %s value: %s", EnvTimeout, raw), err).
				WithSuggestion("Use a Go duration such as 10s or 1m")
		}
		cfg.Timeout = d
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}
