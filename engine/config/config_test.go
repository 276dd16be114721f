package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyYieldsDefaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, "fifo", cfg.Window.PresentMode)
	assert.Equal(t, uint32(4), cfg.Window.MSAA)
	assert.NotNil(t, cfg.Settings)
}

func TestParseMergesOverDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[window]
width = 800

[render]
frame_limit = 60.0
clear_color = [0.1, 0.1, 0.1]

[environment]
path = "sky.jpg"

[settings]
dispersion = 7.5
shape = "Single Pyramid"
autoRotate = false
thickness = 3
`))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "untouched keys keep their defaults")
	assert.Equal(t, 60.0, cfg.Render.FrameLimit)
	assert.Equal(t, [3]float32{0.1, 0.1, 0.1}, cfg.Render.ClearColor)
	assert.Equal(t, "sky.jpg", cfg.Environment.Path)
	assert.Equal(t, 4096, cfg.Environment.MaxWidth)

	assert.Equal(t, 7.5, cfg.Settings["dispersion"])
	assert.Equal(t, "Single Pyramid", cfg.Settings["shape"])
	assert.Equal(t, false, cfg.Settings["autoRotate"])
	assert.Equal(t, int64(3), cfg.Settings["thickness"])
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse([]byte("[window]\ncolour = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config parse error")
}

func TestParseReportsPosition(t *testing.T) {
	_, err := config.Parse([]byte("[window]\nwidth = = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at 2:")
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "prism.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0o644))
	cfg, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Log.Level = name
			assert.Equal(t, want, cfg.LogLevel())
		})
	}
}

func TestWatchWithoutPath(t *testing.T) {
	w, err := config.Watch("")
	assert.ErrorIs(t, err, config.ErrNoPath)
	assert.Nil(t, w)
}

func TestWatchPublishesChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prism.toml")
	require.NoError(t, os.WriteFile(path, []byte("[settings]\nior = 1.5\n"), 0o644))

	w, err := config.Watch(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("[settings]\nior = 2.25\n"), 0o644))

	var got config.Config
	require.Eventually(t, func() bool {
		select {
		case cfg := <-w.Updates():
			got = cfg
		default:
		}
		return got.Settings["ior"] == 2.25
	}, 5*time.Second, 20*time.Millisecond)
}
