package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoPath is returned by Watch when no config file path is configured.
var ErrNoPath = errors.New("no config path")

// Config is the on-disk configuration. Every section is optional; missing keys keep their defaults.
type Config struct {
	Window      WindowConfig      `toml:"window"`
	Render      RenderConfig      `toml:"render"`
	Environment EnvironmentConfig `toml:"environment"`
	Scene       SceneConfig       `toml:"scene"`
	Log         LogConfig         `toml:"log"`
	// Settings holds control overrides keyed by parameter name, e.g. dispersion = 7.5.
	Settings map[string]any `toml:"settings"`
}

type WindowConfig struct {
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	PresentMode string `toml:"present_mode"`
	MSAA        uint32 `toml:"msaa"`
}

type RenderConfig struct {
	FrameLimit float64    `toml:"frame_limit"`
	Profiling  bool       `toml:"profiling"`
	ClearColor [3]float32 `toml:"clear_color"`
}

type EnvironmentConfig struct {
	Path     string `toml:"path"`
	MaxWidth int    `toml:"max_width"`
}

type SceneConfig struct {
	DustSeed uint64 `toml:"dust_seed"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:       "prism",
			Width:       1280,
			Height:      720,
			PresentMode: "fifo",
			MSAA:        4,
		},
		Render: RenderConfig{
			ClearColor: [3]float32{0.02, 0.02, 0.035},
		},
		Environment: EnvironmentConfig{MaxWidth: 4096},
		Scene:       SceneConfig{DustSeed: 1},
		Log:         LogConfig{Level: "info"},
		Settings:    map[string]any{},
	}
}

// Parse decodes TOML on top of the defaults. Unknown keys outside [settings] are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the document is malformed or has unknown keys
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config parse error at %d:%d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config parse error: %w", err)
	}
	if cfg.Settings == nil {
		cfg.Settings = map[string]any{}
	}
	return cfg, nil
}

// Load reads and parses the file at path. An empty path yields the defaults.
//
// Parameters:
//   - path: the TOML file path, or ""
//
// Returns:
//   - Config: the configuration
//   - error: error if the file cannot be read or parsed
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// LogLevel converts Log.Level to a slog level. Unknown names map to info.
//
// Returns:
//   - slog.Level: the level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
