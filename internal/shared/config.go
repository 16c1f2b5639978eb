package shared

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Player    PlayerConfig          `toml:"player"`
	Discovery DiscoveryConfig       `toml:"discovery"`
	Log       LogConfig             `toml:"log"`
	Skins     map[string]SkinConfig `toml:"skins"`
}

// PlayerConfig contains playback defaults shared by every player instance.
type PlayerConfig struct {
	Skin          string        `toml:"skin"`
	DefaultVolume float64       `toml:"default_volume"`
	EndTolerance  float64       `toml:"end_tolerance"`
	TickInterval  time.Duration `toml:"tick_interval"`
	PopoverDelay  time.Duration `toml:"popover_delay"`
}

// DiscoveryConfig controls background duration probing.
type DiscoveryConfig struct {
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// SkinConfig describes one visual variant of the player.
//
// Omit lists the optional controls the skin does not render (shuffle, repeat, volume, playlist, cover, handle).
type SkinConfig struct {
	FallbackCover string   `toml:"fallback_cover"`
	Accent        string   `toml:"accent"`
	Omit          []string `toml:"omit"`
}

// Omits reports whether the skin leaves out the named control.
func (s SkinConfig) Omits(control string) bool {
	return slices.Contains(s.Omit, control)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks value ranges and that the default skin exists.
func (c *Config) Validate() error {
	if c.Player.DefaultVolume < 0 || c.Player.DefaultVolume > 1 {
		return fmt.Errorf("%w: player.default_volume must be within [0, 1], got %v", ErrInvalidConfig, c.Player.DefaultVolume)
	}
	if c.Player.EndTolerance < 0 {
		return fmt.Errorf("%w: player.end_tolerance must not be negative", ErrInvalidConfig)
	}
	if c.Player.TickInterval <= 0 {
		return fmt.Errorf("%w: player.tick_interval must be positive", ErrInvalidConfig)
	}
	if c.Discovery.Workers < 0 {
		return fmt.Errorf("%w: discovery.workers must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Skin(c.Player.Skin); err != nil {
		return fmt.Errorf("%w: player.skin: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Skin looks up a skin by name.
func (c *Config) Skin(name string) (SkinConfig, error) {
	skin, ok := c.Skins[name]
	if !ok {
		return SkinConfig{}, fmt.Errorf("%w: %q", ErrUnknownSkin, name)
	}
	return skin, nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
