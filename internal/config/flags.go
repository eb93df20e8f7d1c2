package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagPoints      = flag.Int("points", 0, "Number of brain points")
	flagConnections = flag.Int("connections", -1, "Number of synapse connections")
	flagSeed        = flag.Uint64("seed", 0, "Generation seed (0 = random)")
	flagState       = flag.String("state", "", "App-state YAML file to watch")
	flagMute        = flag.Bool("mute", false, "Disable firing chimes")
	flagWriteConfig = flag.Bool("write-config", false, "Save the effective config to the user config dir")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigRequested reports whether --write-config was given.
func WriteConfigRequested() bool {
	return *flagWriteConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagPoints > 0 {
		cfg.Brain.Points = *flagPoints
	}
	if *flagConnections >= 0 {
		cfg.Brain.Connections = *flagConnections
	}
	if *flagSeed != 0 {
		cfg.Brain.Seed = *flagSeed
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
	if *flagState != "" {
		cfg.Data.StatePath = *flagState
	}
}
