// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/framescope/pkg/orchestrator"
	"github.com/user/framescope/pkg/overlay"
	"github.com/user/framescope/pkg/ports"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "FRAMESCOPE_"

// PathEnv names the environment variable holding the config file path.
const PathEnv = EnvPrefix + "CONFIG"

// DefaultFile is read from the working directory when PathEnv is unset.
const DefaultFile = "framescope.yaml"

// Config represents the full configuration for framescope.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Playback    PlaybackConfig    `yaml:"playback" envPrefix:"PLAYBACK_"`
	Calibration CalibrationConfig `yaml:"calibration" envPrefix:"CALIBRATION_"`
	Screenshot  ScreenshotConfig  `yaml:"screenshot" envPrefix:"SCREENSHOT_"`
	Window      WindowConfig      `yaml:"window" envPrefix:"WINDOW_"`
	Overlay     OverlayConfig     `yaml:"overlay" envPrefix:"OVERLAY_"`
	Tools       ToolsConfig       `yaml:"tools" envPrefix:"TOOLS_"`
	Summary     SummaryConfig     `yaml:"summary" envPrefix:"SUMMARY_"`
}

// PlaybackConfig controls the playback loop.
type PlaybackConfig struct {
	// Rate overrides the video framerate when positive.
	Rate float64 `yaml:"rate" env:"RATE"`
	// DefaultRate is used when the video reports no usable framerate.
	DefaultRate    float64 `yaml:"default_rate" env:"DEFAULT_RATE"`
	PollIntervalMs int     `yaml:"poll_interval_ms" env:"POLL_INTERVAL_MS"`
}

// CalibrationConfig holds the reference distance for the road segment.
type CalibrationConfig struct {
	KnownRoadMeters float64 `yaml:"known_road_meters" env:"KNOWN_ROAD_METERS"`
}

// ScreenshotConfig controls where screenshots are written.
type ScreenshotConfig struct {
	Dir     string `yaml:"dir" env:"DIR"`
	Pattern string `yaml:"pattern" env:"PATTERN"`
	Quality int    `yaml:"quality" env:"QUALITY"`
}

// WindowConfig controls the native ffplay window.
type WindowConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Title   string `yaml:"title" env:"TITLE"`
	X       int    `yaml:"x" env:"X"`
	Y       int    `yaml:"y" env:"Y"`
}

// OverlayConfig represents overlay styling.
type OverlayConfig struct {
	FontSize    float64 `yaml:"font_size" env:"FONT_SIZE"`
	FontPath    string  `yaml:"font_path" env:"FONT_PATH"`
	LineWidth   float64 `yaml:"line_width" env:"LINE_WIDTH"`
	StateColor  string  `yaml:"state_color" env:"STATE_COLOR"`
	RoadColor   string  `yaml:"road_color" env:"ROAD_COLOR"`
	ObjectColor string  `yaml:"object_color" env:"OBJECT_COLOR"`
}

// ToolsConfig holds explicit paths to external binaries.
// Empty values are discovered on PATH.
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg" env:"FFMPEG"`
	FFprobe string `yaml:"ffprobe" env:"FFPROBE"`
	FFplay  string `yaml:"ffplay" env:"FFPLAY"`
}

// SummaryConfig controls the Markdown session report.
type SummaryConfig struct {
	// Path of the report written when the session ends. Empty disables it.
	Path string `yaml:"path" env:"PATH"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		LogLevel: "info",

		Playback: PlaybackConfig{
			DefaultRate:    5,
			PollIntervalMs: 10,
		},

		Calibration: CalibrationConfig{
			KnownRoadMeters: 2,
		},

		Screenshot: ScreenshotConfig{
			Pattern: "Frame_%d.jpg",
			Quality: 95,
		},

		Window: WindowConfig{
			Enabled: true,
			Title:   "SmartVision",
			X:       250,
			Y:       150,
		},

		Overlay: OverlayConfig{
			FontSize:    24,
			LineWidth:   3,
			StateColor:  "#00ff00",
			RoadColor:   "#ff64ff",
			ObjectColor: "#00ffff",
		},
	}
}

// LoadFromFile loads configuration from a YAML file read through fsys.
func LoadFromFile(fsys ports.FileSystem, path string) (Config, error) {
	cfg := Defaults()

	data, err := fsys.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Load builds the effective configuration: defaults, then the YAML file
// named by FRAMESCOPE_CONFIG (or DefaultFile when present), then
// FRAMESCOPE_* environment overrides. The result is validated.
func Load(fsys ports.FileSystem) (Config, error) {
	cfg := Defaults()

	path := os.Getenv(PathEnv)
	if path == "" {
		exists, err := fsys.Exists(DefaultFile)
		if err != nil {
			return cfg, fmt.Errorf("stat config %s: %w", DefaultFile, err)
		}
		if exists {
			path = DefaultFile
		}
	}

	if path != "" {
		loaded, err := LoadFromFile(fsys, path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		cfg = loaded
	}

	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overlays FRAMESCOPE_* environment variables onto cfg.
// Unset variables leave the current values untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Playback.Rate < 0 {
		return fmt.Errorf("playback.rate must not be negative: %g", c.Playback.Rate)
	}
	if c.Playback.DefaultRate <= 0 {
		return fmt.Errorf("playback.default_rate must be positive: %g", c.Playback.DefaultRate)
	}
	if c.Playback.PollIntervalMs <= 0 {
		return fmt.Errorf("playback.poll_interval_ms must be positive: %d", c.Playback.PollIntervalMs)
	}
	if c.Calibration.KnownRoadMeters <= 0 {
		return fmt.Errorf("calibration.known_road_meters must be positive: %g", c.Calibration.KnownRoadMeters)
	}
	if c.Screenshot.Quality < 1 || c.Screenshot.Quality > 100 {
		return fmt.Errorf("screenshot.quality must be within 1-100: %d", c.Screenshot.Quality)
	}
	if c.Screenshot.Pattern == "" {
		return errors.New("screenshot.pattern must not be empty")
	}
	if strings.Count(c.Screenshot.Pattern, "%d") != 1 || strings.Contains(fmt.Sprintf(c.Screenshot.Pattern, 0), "%!") {
		return fmt.Errorf("screenshot.pattern must contain exactly one %%d verb: %q", c.Screenshot.Pattern)
	}
	return nil
}

// ParseColor parses a hex color string ("#rrggbb") to color.Color.
// Malformed values yield black.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return color.Black
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.Black
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(videoPath string) orchestrator.Config {
	return orchestrator.Config{
		VideoPath: videoPath,

		Rate:         c.Playback.Rate,
		DefaultRate:  c.Playback.DefaultRate,
		PollInterval: time.Duration(c.Playback.PollIntervalMs) * time.Millisecond,

		KnownRoadMeters: c.Calibration.KnownRoadMeters,

		ScreenshotDir:     c.Screenshot.Dir,
		ScreenshotPattern: c.Screenshot.Pattern,
		ScreenshotQuality: c.Screenshot.Quality,

		WindowEnabled: c.Window.Enabled,
		WindowTitle:   c.Window.Title,
		WindowX:       c.Window.X,
		WindowY:       c.Window.Y,

		Overlay: overlay.Style{
			FontSize:    c.Overlay.FontSize,
			FontPath:    c.Overlay.FontPath,
			LineWidth:   c.Overlay.LineWidth,
			StateColor:  ParseColor(c.Overlay.StateColor),
			RoadColor:   ParseColor(c.Overlay.RoadColor),
			ObjectColor: ParseColor(c.Overlay.ObjectColor),
		},

		FFmpegPath:  c.Tools.FFmpeg,
		FFprobePath: c.Tools.FFprobe,
		FFplayPath:  c.Tools.FFplay,

		SummaryPath: c.Summary.Path,
	}
}
