// Package config loads the static startup configuration: the inter-tile
// gap, the mouse modifier mask, the focus border color, the animation
// tick duration, and an optional socket path override. These are the
// default values the core loop's mutable Config is seeded from; the
// ConfigGap/ConfigMouseMod/ConfigFocusColor commands only ever mutate the
// in-memory copy, never rewrite this file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color is an RGBA color with components in [0,1], matching the
// ConfigFocusColor command's argument shape.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// Config holds the application's static configuration.
type Config struct {
	// GapSize is the inter-tile gap, in pixels.
	GapSize int32 `yaml:"gap_size"`

	// MouseMods is the modifier mask that must be held for mouse-driven
	// move/resize grabs to begin.
	MouseMods uint32 `yaml:"mouse_mods"`

	// FocusColor borders the currently-focused view.
	FocusColor Color `yaml:"focus_color"`

	// AnimationMillis is the fixed tick period ViewAnimation re-arms its
	// timer at.
	AnimationMillis int `yaml:"animation_millis"`

	// AnimationDurationSeconds is the duration of a single view-move
	// animation task.
	AnimationDurationSeconds float64 `yaml:"animation_duration_seconds"`

	// SocketPath overrides the default IPC socket location
	// ($CARDBOARD_SOCKET or /tmp/cardboard-$WAYLAND_DISPLAY) when set.
	SocketPath string `yaml:"socket_path,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		GapSize:                  10,
		MouseMods:                1 << 6, // command.ModLogo (Super), matching the spec's single-mod default
		FocusColor:               Color{R: 0.6, G: 0.8, B: 1.0, A: 1.0},
		AnimationMillis:          16,
		AnimationDurationSeconds: 0.2,
	}
}

// ValidationError reports a single invalid field, named by its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks the effective configuration for obviously-wrong values.
func (c *Config) Validate() error {
	if c.GapSize < 0 {
		return &ValidationError{Path: "gap_size", Err: fmt.Errorf("must be >= 0")}
	}
	if c.AnimationMillis <= 0 {
		return &ValidationError{Path: "animation_millis", Err: fmt.Errorf("must be > 0")}
	}
	if c.AnimationDurationSeconds <= 0 {
		return &ValidationError{Path: "animation_duration_seconds", Err: fmt.Errorf("must be > 0")}
	}
	for _, comp := range []float64{c.FocusColor.R, c.FocusColor.G, c.FocusColor.B, c.FocusColor.A} {
		if comp < 0 || comp > 1 {
			return &ValidationError{Path: "focus_color", Err: fmt.Errorf("components must be within [0,1]")}
		}
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/cardboard/config.yaml,
// falling back to $HOME/.config/cardboard/config.yaml.
func DefaultConfigPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("config: resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cardboard", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// is not an error: Load returns the built-in defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path, layering it
// over the built-in defaults. A missing file yields the defaults
// unchanged.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to the standard location, creating its parent
// directory if needed. Used by the cardboard-config wizard; the core
// loop never calls this itself.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
