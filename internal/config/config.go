package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"storyline/internal/eventbus"
	"storyline/internal/navigator"
)

// ErrUnknownPolicy is returned when up_from_none is neither "first" nor "last"
var ErrUnknownPolicy = errors.New("unknown navigation policy")

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version"`
	Navigation NavigationConfig `toml:"navigation"`
	Keys       KeysConfig       `toml:"keys"`
	UI         UISettings       `toml:"ui"`
}

// NavigationConfig holds list navigation policy
type NavigationConfig struct {
	UpFromNone   string `toml:"up_from_none"` // "last" or "first"
	RefireOnNoop bool   `toml:"refire_on_noop"`
	Follow       bool   `toml:"follow"`
}

// KeysConfig lists extra key strings per intent, added to the defaults
type KeysConfig struct {
	Up         []string `toml:"up,omitempty"`
	Down       []string `toml:"down,omitempty"`
	Select     []string `toml:"select,omitempty"`
	Quit       []string `toml:"quit,omitempty"`
	Help       []string `toml:"help,omitempty"`
	Filter     []string `toml:"filter,omitempty"`
	SwitchPane []string `toml:"switch_pane,omitempty"`
	Docs       []string `toml:"docs,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Color        bool   `toml:"color"`
	ActionsPanel int    `toml:"actions_panel"` // number of action log lines kept
	StartStory   string `toml:"start_story,omitempty"`
}

// Policy converts the navigation section into a navigator policy
func (c *Config) Policy() (navigator.Policy, error) {
	p := navigator.DefaultPolicy()
	p.RefireOnNoop = c.Navigation.RefireOnNoop
	switch c.Navigation.UpFromNone {
	case "", "last":
		p.UpFromNone = navigator.UpFromNoneLast
	case "first":
		p.UpFromNone = navigator.UpFromNoneFirst
	default:
		return p, fmt.Errorf("%w: up_from_none = %q", ErrUnknownPolicy, c.Navigation.UpFromNone)
	}
	return p, nil
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if _, err := c.Policy(); err != nil {
		return err
	}
	if c.UI.ActionsPanel < 0 {
		return fmt.Errorf("ui.actions_panel must not be negative, got %d", c.UI.ActionsPanel)
	}
	return nil
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

// DefaultPath returns $XDG_CONFIG_HOME/storyline/config.toml or the
// closest equivalent on this platform
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "storyline", "config.toml")
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, returning defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: ""})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Missing keys keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
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

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Navigation: NavigationConfig{
			UpFromNone: "last",
		},
		UI: UISettings{
			Color:        true,
			ActionsPanel: 8,
		},
	}
}
