// Package config handles viewer configuration loading and management.
package config

import "time"

// Config holds all viewer settings.
type Config struct {
	Graphics    GraphicsConfig    `yaml:"graphics"`
	Brain       BrainConfig       `yaml:"brain"`
	Interaction InteractionConfig `yaml:"interaction"`
	Firing      FiringConfig      `yaml:"firing"`
	Data        DataConfig        `yaml:"data"`
	Audio       AudioConfig       `yaml:"audio"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// BrainConfig controls point cloud generation.
type BrainConfig struct {
	Points      int    `yaml:"points"`
	Connections int    `yaml:"connections"`
	Seed        uint64 `yaml:"seed"` // 0 picks a seed from the clock
}

// InteractionConfig tunes drag rotation and idle spin.
type InteractionConfig struct {
	DragThreshold   float32       `yaml:"drag_threshold"`    // pixels
	YawPerPixel     float32       `yaml:"yaw_per_pixel"`     // radians
	PitchPerPixel   float32       `yaml:"pitch_per_pixel"`   // radians
	PitchLimit      float32       `yaml:"pitch_limit"`       // radians
	ResumeDelay     time.Duration `yaml:"resume_delay"`      // auto-rotate cooldown after release
	AutoRotateSpeed float32       `yaml:"auto_rotate_speed"` // radians per frame
	Damping         float32       `yaml:"damping"`
}

// FiringConfig tunes region firing pulses.
type FiringConfig struct {
	AmbientInterval time.Duration `yaml:"ambient_interval"`
	Decay           float32       `yaml:"decay"` // per frame
	SampleFraction  float32       `yaml:"sample_fraction"`
	ActivePick      float32       `yaml:"active_pick"`
	ActiveIntensity float32       `yaml:"active_intensity"`
	IdleIntensity   float32       `yaml:"idle_intensity"`
	LockedIntensity float32       `yaml:"locked_intensity"`
}

// DataConfig holds external file paths.
type DataConfig struct {
	StatePath     string `yaml:"state_path"` // watched app-state YAML, optional
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig controls firing chimes.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  960,
			Height: 720,
			VSync:  true,
		},
		Brain: BrainConfig{
			Points:      5000,
			Connections: 220,
		},
		Interaction: InteractionConfig{
			DragThreshold:   2,
			YawPerPixel:     0.009,
			PitchPerPixel:   0.007,
			PitchLimit:      0.75,
			ResumeDelay:     3 * time.Second,
			AutoRotateSpeed: 0.0025,
			Damping:         0.055,
		},
		Firing: FiringConfig{
			AmbientInterval: 700 * time.Millisecond,
			Decay:           0.022,
			SampleFraction:  0.25,
			ActivePick:      0.4,
			ActiveIntensity: 0.6,
			IdleIntensity:   0.3,
			LockedIntensity: 0.15,
		},
		Data: DataConfig{
			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
