package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Playback PlaybackConfig `yaml:"playback"`
	Parser   ParserConfig   `yaml:"parser"`
	Stream   StreamConfig   `yaml:"stream"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// PlaybackConfig holds timeline engine settings.
type PlaybackConfig struct {
	// TickInterval is the period of the playback clock.
	TickInterval Duration `yaml:"tick_interval"`
	// DefaultSpeed is the initial playback speed multiplier.
	DefaultSpeed float64 `yaml:"default_speed"`
}

// ParserConfig holds track parser settings.
type ParserConfig struct {
	// MaxUploadBytes caps the accepted GPX upload size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	// ParseTimeout bounds a single background parse.
	ParseTimeout Duration `yaml:"parse_timeout"`
}

// StreamConfig holds WebSocket playback stream settings.
type StreamConfig struct {
	// SendBuffer is the per-client queue length; slow clients that fall
	// behind it are dropped.
	SendBuffer   int      `yaml:"send_buffer"`
	WriteTimeout Duration `yaml:"write_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:1890",
		},
		Log: LogConfig{
			Path:  "./logs/server.log",
			Level: "INFO",
		},
		Playback: PlaybackConfig{
			TickInterval: Duration(33 * time.Millisecond),
			DefaultSpeed: 1.0,
		},
		Parser: ParserConfig{
			MaxUploadBytes: 64 << 20,
			ParseTimeout:   Duration(60 * time.Second),
		},
		Stream: StreamConfig{
			SendBuffer:   32,
			WriteTimeout: Duration(5 * time.Second),
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values.
// If the file exists, it merges defaults with existing values but does NOT
// save back to disk (to preserve user formatting and comments).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	// Env override for the listen address (container deployments).
	if addr := os.Getenv("TRACKPLAY_ADDRESS"); addr != "" {
		cfg.Server.Address = addr
	}

	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# trackplay Configuration
# ----------------------
# Duration units: ns, us (or µs), ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}
