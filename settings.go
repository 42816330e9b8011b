package bento

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SettingsEnv names the environment variable LoadSettingsFile falls back to
// when called with an empty path.
const SettingsEnv = "BENTO_SETTINGS"

// Settings configures a Game. It is usually loaded from YAML.
type Settings struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`  // logical canvas width in pixels
	Height int    `yaml:"height"` // logical canvas height in pixels
	// PixelSize scales the window relative to the canvas.
	PixelSize float64 `yaml:"pixel_size"`

	MinimumFPS   int      `yaml:"minimum_fps"`
	UseDeltaT    bool     `yaml:"use_delta_t"`
	SortMode     SortMode `yaml:"sort_mode"`
	UnstableSort bool     `yaml:"unstable_sort"`
	SubPixel     bool     `yaml:"sub_pixel"`

	LogLevel      string `yaml:"log_level"`
	DebugStats    bool   `yaml:"debug_stats"`
	IsolateFaults bool   `yaml:"isolate_faults"`
	ShowFPS       bool   `yaml:"show_fps"`
	// ScreenshotDir receives the captures queued by Game.Screenshot.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Title:         "bento",
		Width:         320,
		Height:        240,
		PixelSize:     2,
		MinimumFPS:    DefaultMinimumFPS,
		SortMode:      SortAlways,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
	}
}

// Validate reports the first invalid field.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	case s.PixelSize <= 0:
		return fmt.Errorf("invalid pixel_size %v", s.PixelSize)
	case s.MinimumFPS <= 0 || s.MinimumFPS > 60:
		return fmt.Errorf("minimum_fps must be in 1..60, got %d", s.MinimumFPS)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadSettings decodes YAML from r over DefaultSettings and validates the
// result. Unknown keys are rejected.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("validate settings: %w", err)
	}
	return s, nil
}

// LoadSettingsFile reads settings from path. An empty path falls back to
// the BENTO_SETTINGS environment variable, and then to DefaultSettings.
func LoadSettingsFile(path string) (Settings, error) {
	if path == "" {
		path = os.Getenv(SettingsEnv)
		if path == "" {
			return DefaultSettings(), nil
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := LoadSettings(bytes.NewReader(raw))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ManagerConfig returns the ObjectManager options carried by s.
func (s Settings) ManagerConfig() ManagerConfig {
	return ManagerConfig{
		MinimumFPS:    s.MinimumFPS,
		UseDeltaT:     s.UseDeltaT,
		SortMode:      s.SortMode,
		UnstableSort:  s.UnstableSort,
		SubPixel:      s.SubPixel,
		IsolateFaults: s.IsolateFaults,
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SortMode) MarshalText() ([]byte, error) {
	switch s {
	case SortAlways, SortNever, SortOnAdd:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("unknown sort mode %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SortMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "always":
		*s = SortAlways
	case "never":
		*s = SortNever
	case "sort_on_add":
		*s = SortOnAdd
	default:
		return fmt.Errorf("unknown sort mode %q", text)
	}
	return nil
}
