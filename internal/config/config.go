package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"kiosk/internal/catalog"
	"kiosk/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the kiosk configuration
type Config struct {
	Title      string            `yaml:"title"`
	ImageDir   string            `yaml:"image_dir"`
	JournalDSN string            `yaml:"journal_dsn"`
	LogLevel   string            `yaml:"log_level"`
	LogFile    string            `yaml:"log_file"`
	Fullscreen bool              `yaml:"fullscreen"`
	Metrics    MetricsConfig     `yaml:"metrics"`
	Menu       []models.MenuItem `yaml:"menu"`
}

// MetricsConfig controls the optional metrics endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Title:      "Ustaad Hotel - Self-Service",
		ImageDir:   "images",
		JournalDSN: ":memory:",
		LogLevel:   "info",
		LogFile:    "kiosk.log",
		Metrics: MetricsConfig{
			Port: 9090,
			Path: "/metrics",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// KIOSK_* environment overrides. envFiles are loaded with godotenv first;
// with none given, a .env in the working directory is used if present.
// An empty path skips the YAML file.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(envFiles...); err != nil {
		if len(envFiles) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	stringVars := map[string]*string{
		"KIOSK_TITLE":        &c.Title,
		"KIOSK_IMAGE_DIR":    &c.ImageDir,
		"KIOSK_JOURNAL_DSN":  &c.JournalDSN,
		"KIOSK_LOG_LEVEL":    &c.LogLevel,
		"KIOSK_LOG_FILE":     &c.LogFile,
		"KIOSK_METRICS_PATH": &c.Metrics.Path,
	}
	for key, dst := range stringVars {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("KIOSK_FULLSCREEN"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KIOSK_FULLSCREEN %q: %w", v, err)
		}
		c.Fullscreen = b
	}
	if v, ok := os.LookupEnv("KIOSK_METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid KIOSK_METRICS_ENABLED %q: %w", v, err)
		}
		c.Metrics.Enabled = b
	}
	if v, ok := os.LookupEnv("KIOSK_METRICS_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid KIOSK_METRICS_PORT %q: %w", v, err)
		}
		c.Metrics.Port = port
	}
	return nil
}

// Validate checks the configuration for values the kiosk cannot run with
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	if _, err := c.Catalog(); err != nil {
		return fmt.Errorf("invalid menu: %w", err)
	}
	return nil
}

// Catalog builds the menu from the configuration, falling back to the house menu
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if len(c.Menu) == 0 {
		return catalog.Default(), nil
	}
	return catalog.New(c.Menu...)
}

// MetricsAddr returns the listen address of the metrics server
func (c *Config) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
