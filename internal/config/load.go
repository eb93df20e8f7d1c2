package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	if c.Brain.Points <= 0 {
		return fmt.Errorf("brain.points must be positive, got %d", c.Brain.Points)
	}
	if c.Brain.Connections < 0 {
		return fmt.Errorf("brain.connections must not be negative, got %d", c.Brain.Connections)
	}
	if c.Firing.AmbientInterval <= 0 {
		return fmt.Errorf("firing.ambient_interval must be positive, got %s", c.Firing.AmbientInterval)
	}
	if c.Interaction.Damping <= 0 || c.Interaction.Damping > 1 {
		return fmt.Errorf("interaction.damping must be in (0, 1], got %g", c.Interaction.Damping)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be in [0, 1], got %g", c.Audio.Volume)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./brainview.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Brainview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Brainview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "brainview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "brainview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
