package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/framescope/pkg/adapters/osfilesystem"
	"github.com/user/framescope/pkg/mocks"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Calibration.KnownRoadMeters != 2 {
		t.Errorf("expected known road meters 2, got %g", cfg.Calibration.KnownRoadMeters)
	}
	if cfg.Playback.DefaultRate != 5 {
		t.Errorf("expected default rate 5, got %g", cfg.Playback.DefaultRate)
	}
	if cfg.Window.Title != "SmartVision" {
		t.Errorf("expected window title SmartVision, got %s", cfg.Window.Title)
	}
	if cfg.Window.X != 250 || cfg.Window.Y != 150 {
		t.Errorf("expected window at (250,150), got (%d,%d)", cfg.Window.X, cfg.Window.Y)
	}
	if cfg.Screenshot.Pattern != "Frame_%d.jpg" {
		t.Errorf("unexpected screenshot pattern %s", cfg.Screenshot.Pattern)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framescope.yaml")
	content := `
log_level: debug
playback:
  rate: 12.5
calibration:
  known_road_meters: 3.5
screenshot:
  dir: shots
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(osfilesystem.New(), path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.Playback.Rate != 12.5 {
		t.Errorf("expected rate 12.5, got %g", cfg.Playback.Rate)
	}
	if cfg.Calibration.KnownRoadMeters != 3.5 {
		t.Errorf("expected 3.5, got %g", cfg.Calibration.KnownRoadMeters)
	}
	if cfg.Screenshot.Dir != "shots" {
		t.Errorf("expected dir shots, got %s", cfg.Screenshot.Dir)
	}
	// Unset keys keep defaults
	if cfg.Playback.PollIntervalMs != 10 {
		t.Errorf("expected default poll interval, got %d", cfg.Playback.PollIntervalMs)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("playback:\n  rate: 10\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(PathEnv, path)
	t.Setenv("FRAMESCOPE_PLAYBACK_RATE", "25")
	t.Setenv("FRAMESCOPE_WINDOW_ENABLED", "false")
	t.Setenv("FRAMESCOPE_TOOLS_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	cfg, err := Load(osfilesystem.New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Playback.Rate != 25 {
		t.Errorf("expected env rate 25, got %g", cfg.Playback.Rate)
	}
	if cfg.Window.Enabled {
		t.Error("expected window disabled by env")
	}
	if cfg.Tools.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("unexpected ffmpeg path %s", cfg.Tools.FFmpeg)
	}
	if cfg.Window.Title != "SmartVision" {
		t.Errorf("expected default title kept, got %s", cfg.Window.Title)
	}
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(PathEnv, "")

	cfg, err := Load(osfilesystem.New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Playback.DefaultRate != 5 {
		t.Errorf("expected defaults, got rate %g", cfg.Playback.DefaultRate)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(osfilesystem.New()); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_DefaultFileThroughFileSystem(t *testing.T) {
	t.Setenv(PathEnv, "")

	fsys := mocks.NewFileSystem()
	if err := fsys.WriteFile(DefaultFile, []byte("calibration:\n  known_road_meters: 4\n")); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	cfg, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Calibration.KnownRoadMeters != 4 {
		t.Errorf("expected known meters from default file, got %g", cfg.Calibration.KnownRoadMeters)
	}
}

func TestLoad_DefaultFileAbsentSkipsRead(t *testing.T) {
	t.Setenv(PathEnv, "")

	fsys := mocks.NewFileSystem()
	fsys.ReadFileFunc = func(path string) ([]byte, error) {
		t.Errorf("unexpected read of %s", path)
		return nil, errors.New("unexpected read")
	}

	if _, err := Load(fsys); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
}

func TestLoad_ExistsErrorFails(t *testing.T) {
	t.Setenv(PathEnv, "")

	fsys := mocks.NewFileSystem()
	fsys.ExistsFunc = func(string) (bool, error) {
		return false, errors.New("permission denied")
	}

	if _, err := Load(fsys); err == nil {
		t.Error("expected error when the default file cannot be checked")
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("FRAMESCOPE_PLAYBACK_RATE", "fast")

	if _, err := Load(osfilesystem.New()); err == nil {
		t.Error("expected error for non-numeric rate")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative rate", func(c *Config) { c.Playback.Rate = -1 }},
		{"zero default rate", func(c *Config) { c.Playback.DefaultRate = 0 }},
		{"zero poll interval", func(c *Config) { c.Playback.PollIntervalMs = 0 }},
		{"zero known meters", func(c *Config) { c.Calibration.KnownRoadMeters = 0 }},
		{"quality too high", func(c *Config) { c.Screenshot.Quality = 101 }},
		{"empty pattern", func(c *Config) { c.Screenshot.Pattern = "" }},
		{"pattern without verb", func(c *Config) { c.Screenshot.Pattern = "shot.jpg" }},
		{"pattern with two verbs", func(c *Config) { c.Screenshot.Pattern = "shot_%d_%d.jpg" }},
		{"pattern with string verb", func(c *Config) { c.Screenshot.Pattern = "shot_%s.jpg" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestValidate_AcceptsPatternWithOneVerb(t *testing.T) {
	cfg := Defaults()
	cfg.Screenshot.Pattern = "shots/frame-%d.png"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected pattern to validate: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff64ff", color.RGBA{R: 255, G: 100, B: 255, A: 255}},
		{"00ffff", color.RGBA{G: 255, B: 255, A: 255}},
		{"#00FF00", color.RGBA{G: 255, A: 255}},
	}

	for _, tt := range tests {
		got := ParseColor(tt.in)
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if ParseColor("#zzz") != color.Black {
		t.Error("expected black for malformed color")
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Playback.PollIntervalMs = 25
	cfg.Summary.Path = "reports/session.md"

	oc := cfg.ToOrchestratorConfig("clip.mp4")

	if oc.VideoPath != "clip.mp4" {
		t.Errorf("expected video path, got %s", oc.VideoPath)
	}
	if oc.PollInterval != 25*time.Millisecond {
		t.Errorf("expected 25ms poll interval, got %v", oc.PollInterval)
	}
	if oc.KnownRoadMeters != 2 {
		t.Errorf("expected known meters 2, got %g", oc.KnownRoadMeters)
	}
	if oc.Overlay.RoadColor != (color.RGBA{R: 255, G: 100, B: 255, A: 255}) {
		t.Errorf("unexpected road color %v", oc.Overlay.RoadColor)
	}
	if oc.SummaryPath != "reports/session.md" {
		t.Errorf("expected summary path, got %q", oc.SummaryPath)
	}
}
