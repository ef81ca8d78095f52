package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"hnsearch/internal/eventbus"
)

// DefaultEndpoint is the Hacker News search API
const DefaultEndpoint = "https://hn.algolia.com/api/v1/search"

// DefaultHitsPerPage matches the page size the search UI always asked for
const DefaultHitsPerPage = 100

// Config represents the application configuration
type Config struct {
	Version        int        `toml:"version"`
	Endpoint       string     `toml:"endpoint"`
	HitsPerPage    int        `toml:"hits_per_page"`
	RequestTimeout string     `toml:"request_timeout,omitempty"` // e.g. "30s"; empty means no timeout
	Variant        Variant    `toml:"variant"`
	UISettings     UISettings `toml:"ui"`
	Logging        Logging    `toml:"logging"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ScrollThreshold int  `toml:"scroll_threshold"` // rows from the bottom that trigger infinite scroll
	ShowDetails     bool `toml:"show_details"`     // points, author and host next to titles
	MouseWheel      bool `toml:"mouse_wheel"`
}

// Logging controls the log file; the terminal belongs to the TUI
type Logging struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Timeout parses RequestTimeout
func (c *Config) Timeout() (time.Duration, error) {
	if c.RequestTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
	}
	return d, nil
}

// Validate checks the values that cannot be defaulted
func (c *Config) Validate() error {
	var errs []error
	if c.Endpoint == "" {
		errs = append(errs, errors.New("endpoint must not be empty"))
	}
	if c.HitsPerPage <= 0 {
		errs = append(errs, fmt.Errorf("hits_per_page must be positive, got %d", c.HitsPerPage))
	}
	if c.UISettings.ScrollThreshold < 0 {
		errs = append(errs, fmt.Errorf("ui.scroll_threshold must not be negative, got %d", c.UISettings.ScrollThreshold))
	}
	if _, err := c.Variant.Features(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/hnsearch/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "hnsearch", "config.toml")
}

// NewConfigService creates a config service bound to path; an empty path
// selects DefaultPath. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      bus,
		filePath: path,
	}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file
// yields the defaults.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			Variant: string(cfg.Variant),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Fields missing
// from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		Endpoint:    DefaultEndpoint,
		HitsPerPage: DefaultHitsPerPage,
		Variant:     VariantComposed,
		UISettings: UISettings{
			ScrollThreshold: 5,
			ShowDetails:     true,
			MouseWheel:      true,
		},
		Logging: Logging{
			File:  "hnsearch.log",
			Level: "info",
		},
	}
}
