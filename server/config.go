package server

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gyscos/coinched/domain"
)

// Duration wraps time.Duration so config files can use "15s" style
// values.
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML encodes the duration as its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config holds the server settings, loadable from a YAML file.
type Config struct {
	Addr         string   `yaml:"addr"`
	LogLevel     string   `yaml:"log_level"`
	JoinTimeout  Duration `yaml:"join_timeout"`
	WaitTimeout  Duration `yaml:"wait_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
	ReapInterval Duration `yaml:"reap_interval"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	opts := domain.DefaultOptions()
	return Config{
		Addr:         ":3000",
		LogLevel:     "info",
		JoinTimeout:  Duration(opts.JoinTimeout),
		WaitTimeout:  Duration(opts.WaitTimeout),
		IdleTimeout:  Duration(opts.IdleTimeout),
		ReapInterval: Duration(opts.ReapInterval),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ManagerOptions converts the config into manager timeouts.
func (c Config) ManagerOptions() domain.Options {
	return domain.Options{
		JoinTimeout:  time.Duration(c.JoinTimeout),
		WaitTimeout:  time.Duration(c.WaitTimeout),
		IdleTimeout:  time.Duration(c.IdleTimeout),
		ReapInterval: time.Duration(c.ReapInterval),
	}
}
