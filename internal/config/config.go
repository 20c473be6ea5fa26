// Package config loads the socpredict YAML configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"socpredict/internal/apperrors"
)

const (
	defaultEndpoint       = "http://127.0.0.1:8000/predict/"
	defaultHealthEndpoint = "http://127.0.0.1:8000/health/"
	defaultSplash         = 2 * time.Second
	defaultLandingDelay   = 2 * time.Second
)

var defaultPhases = []time.Duration{1500 * time.Millisecond, 1500 * time.Millisecond, 2 * time.Second}

// Config holds all socpredict configuration.
type Config struct {
	// Prediction service
	Service ServiceConfig `yaml:"service"`

	// Cosmetic delays
	Timing TimingConfig `yaml:"timing"`

	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig locates the prediction service.
type ServiceConfig struct {
	Endpoint       string `yaml:"endpoint"`
	HealthEndpoint string `yaml:"health_endpoint"`
	Timeout        string `yaml:"timeout"` // empty or "0" keeps the transport default
}

// TimingConfig holds the UI delays as duration strings.
type TimingConfig struct {
	Splash       string   `yaml:"splash"`
	LandingDelay string   `yaml:"landing_delay"`
	Phases       []string `yaml:"phases"` // collecting, processing, predicting
}

// UIConfig configures presentation.
type UIConfig struct {
	Theme      string `yaml:"theme"` // light, dark, auto
	StartRoute string `yaml:"start_route"`
}

// LoggingConfig configures file logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"` // false = no logging at all
	Level      string          `yaml:"level"`      // debug, info, warn, error
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint:       defaultEndpoint,
			HealthEndpoint: defaultHealthEndpoint,
		},
		Timing: TimingConfig{
			Splash:       "2s",
			LandingDelay: "2s",
			Phases:       []string{"1.5s", "1.5s", "2s"},
		},
		UI: UIConfig{
			Theme:      "auto",
			StartRoute: "/",
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(".soc", "logs"),
		},
	}
}

// DefaultPath returns .soc/config.yaml in the working directory if it
// exists, else ~/.socpredict/config.yaml if that exists, else the working
// directory path.
func DefaultPath() string {
	local := filepath.Join(".soc", "config.yaml")
	if cwd, err := os.Getwd(); err == nil {
		local = filepath.Join(cwd, ".soc", "config.yaml")
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, ".socpredict", "config.yaml")
		if _, err := os.Stat(global); err == nil {
			return global
		}
	}
	return local
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, apperrors.NewConfig("failed to read config", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfig(fmt.Sprintf("failed to parse %s", path), err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SOC_ENDPOINT"); v != "" {
		c.Service.Endpoint = v
	}
	if v := os.Getenv("SOC_HEALTH_ENDPOINT"); v != "" {
		c.Service.HealthEndpoint = v
	}
	if v := os.Getenv("SOC_THEME"); v != "" {
		c.UI.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("SOC_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

func parseOr(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}

// GetServiceTimeout returns the request timeout. Zero means none.
func (c *Config) GetServiceTimeout() time.Duration {
	return parseOr(c.Service.Timeout, 0)
}

// GetSplash returns the splash duration.
func (c *Config) GetSplash() time.Duration {
	return parseOr(c.Timing.Splash, defaultSplash)
}

// GetLandingDelay returns the delay after "Get Started".
func (c *Config) GetLandingDelay() time.Duration {
	return parseOr(c.Timing.LandingDelay, defaultLandingDelay)
}

// GetPhaseDelays returns the three loading phase delays. Missing or
// invalid entries fall back per phase.
func (c *Config) GetPhaseDelays() []time.Duration {
	out := make([]time.Duration, len(defaultPhases))
	for i, def := range defaultPhases {
		if i < len(c.Timing.Phases) {
			out[i] = parseOr(c.Timing.Phases[i], def)
		} else {
			out[i] = def
		}
	}
	return out
}

// ValidThemes lists the accepted ui.theme values. Empty means auto.
var ValidThemes = []string{"", "auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"service.endpoint":        c.Service.Endpoint,
		"service.health_endpoint": c.Service.HealthEndpoint,
	} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.NewConfig(fmt.Sprintf("%s must be an http(s) URL, got %q", name, raw), err)
		}
	}

	durations := map[string]string{
		"service.timeout":      c.Service.Timeout,
		"timing.splash":        c.Timing.Splash,
		"timing.landing_delay": c.Timing.LandingDelay,
	}
	for i, p := range c.Timing.Phases {
		durations[fmt.Sprintf("timing.phases[%d]", i)] = p
	}
	for name, raw := range durations {
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return apperrors.NewConfig(fmt.Sprintf("%s is not a duration", name), err)
		}
		if d < 0 {
			return apperrors.NewConfig(fmt.Sprintf("%s must not be negative", name), nil)
		}
	}

	validTheme := false
	for _, t := range ValidThemes {
		if c.UI.Theme == t {
			validTheme = true
			break
		}
	}
	if !validTheme {
		return apperrors.NewConfig(fmt.Sprintf("invalid ui.theme: %s (valid: light, dark, auto)", c.UI.Theme), nil)
	}

	return nil
}
