package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the explicit, validated shape of the revq configuration file.
type Config struct {
	Servers    []ServerConfig `yaml:"servers" validate:"required,min=1,dive"`
	User       string         `yaml:"user"`
	AbandonAge int            `yaml:"abandon_age" validate:"gte=0"`
	Format     string         `yaml:"format" validate:"oneof=table json html"`
	Log        LogConfig      `yaml:"log"`
}

// ServerConfig is one review server entry. Name defaults to the URL host.
type ServerConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url" validate:"required,url"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Default returns a Config with all defaults applied. It carries no
// servers, so it never validates on its own.
func Default() Config {
	return Config{
		User:       "self",
		AbandonAge: 90,
		Format:     "table",
		Log:        LogConfig{Level: "info"},
	}
}

// Path returns the config file location: $REVQ_CONFIG if set, otherwise
// the XDG config directory.
func Path() (string, error) {
	if p := os.Getenv("REVQ_CONFIG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "revq", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "revq", "config.yml"), nil
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides, then validating the result. The overrides map comes from CLI
// flags; only non-zero values should be set.
func Load(path string, overrides map[string]string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REVQ_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("REVQ_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("REVQ_ABANDON_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AbandonAge = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["user"]; ok && v != "" {
		cfg.User = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["abandonAge"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.AbandonAge = n
		}
	}
	if v, ok := overrides["logLevel"]; ok && v != "" {
		cfg.Log.Level = v
	}
}

var validate = validator.New()

// Validate fails fast on an unusable configuration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Duplicate server names would break the global review key.
	names := make(map[string]bool, len(c.Servers))
	for i, s := range c.Servers {
		name := s.Name
		if name == "" {
			u, err := url.Parse(s.URL)
			if err != nil || u.Host == "" {
				return fmt.Errorf("servers[%d]: url %q has no host", i, s.URL)
			}
			name = u.Host
		}
		if names[name] {
			return fmt.Errorf("servers[%d]: duplicate server name %q", i, name)
		}
		names[name] = true
	}
	return nil
}

// SelectServer narrows the server list to the entry at index, matching the
// --server flag semantics.
func (c *Config) SelectServer(index int) error {
	if index < 0 || index >= len(c.Servers) {
		return fmt.Errorf("server index %d out of range (have %d servers)", index, len(c.Servers))
	}
	c.Servers = []ServerConfig{c.Servers[index]}
	return nil
}
