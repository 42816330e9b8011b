package bento

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, SortAlways, s.SortMode)
	assert.Equal(t, DefaultMinimumFPS, s.MinimumFPS)
	assert.Equal(t, "screenshots", s.ScreenshotDir)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"zero width", func(s *Settings) { s.Width = 0 }, "canvas size"},
		{"negative height", func(s *Settings) { s.Height = -1 }, "canvas size"},
		{"pixel size", func(s *Settings) { s.PixelSize = 0 }, "pixel_size"},
		{"fps too low", func(s *Settings) { s.MinimumFPS = 0 }, "minimum_fps"},
		{"fps too high", func(s *Settings) { s.MinimumFPS = 61 }, "minimum_fps"},
		{"log level", func(s *Settings) { s.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadSettings(t *testing.T) {
	s, err := LoadSettings(strings.NewReader(`
title: demo
width: 640
sort_mode: sort_on_add
use_delta_t: true
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", s.Title)
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 240, s.Height, "unset keys keep their default")
	assert.Equal(t, SortOnAdd, s.SortMode)
	assert.True(t, s.UseDeltaT)
}

func TestLoadSettingsErrors(t *testing.T) {
	_, err := LoadSettings(strings.NewReader("widht: 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode settings")

	_, err = LoadSettings(strings.NewReader("sort_mode: sometimes\n"))
	assert.Error(t, err)

	_, err = LoadSettings(strings.NewReader("minimum_fps: 100\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate settings")
}

func TestLoadSettingsEmpty(t *testing.T) {
	s, err := LoadSettings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: from file\n"), 0o644))

	s, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", s.Title)

	t.Setenv(SettingsEnv, path)
	s, err = LoadSettingsFile("")
	require.NoError(t, err)
	assert.Equal(t, "from file", s.Title)

	t.Setenv(SettingsEnv, "")
	s, err = LoadSettingsFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)

	_, err = LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSettingsManagerConfig(t *testing.T) {
	s := DefaultSettings()
	s.MinimumFPS = 20
	s.UseDeltaT = true
	s.SortMode = SortNever
	s.IsolateFaults = true
	cfg := s.ManagerConfig()
	assert.Equal(t, 20, cfg.MinimumFPS)
	assert.True(t, cfg.UseDeltaT)
	assert.Equal(t, SortNever, cfg.SortMode)
	assert.True(t, cfg.IsolateFaults)
}

func TestSortModeText(t *testing.T) {
	for _, mode := range []SortMode{SortAlways, SortNever, SortOnAdd} {
		out, err := yaml.Marshal(struct {
			Mode SortMode `yaml:"mode"`
		}{mode})
		require.NoError(t, err)
		assert.Equal(t, "mode: "+mode.String()+"\n", string(out))

		var back SortMode
		require.NoError(t, back.UnmarshalText([]byte(mode.String())))
		assert.Equal(t, mode, back)
	}

	_, err := SortMode(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "unknown", SortMode(9).String())
}
