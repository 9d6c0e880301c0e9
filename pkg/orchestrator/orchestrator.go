// Package orchestrator wires and runs one review session.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/user/framescope/pkg/adapters/filesink"
	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/annotator"
	"github.com/user/framescope/pkg/dispatch"
	"github.com/user/framescope/pkg/overlay"
	"github.com/user/framescope/pkg/player"
	"github.com/user/framescope/pkg/ports"
	"github.com/user/framescope/pkg/summarizer"
)

// ErrFatalInit marks failures that prevent a session from starting.
var ErrFatalInit = errors.New("orchestrator: initialization failed")

// Config contains all configuration for a session.
type Config struct {
	// Input
	VideoPath string

	// Playback
	Rate         float64 // Overrides the video framerate when positive
	DefaultRate  float64
	PollInterval time.Duration

	// Calibration
	KnownRoadMeters float64

	// Screenshots
	ScreenshotDir     string
	ScreenshotPattern string
	ScreenshotQuality int

	// Native window
	WindowEnabled bool
	WindowTitle   string
	WindowX       int
	WindowY       int

	// Overlay
	Overlay overlay.Style

	// External tools; empty means look up on PATH
	FFmpegPath  string
	FFprobePath string
	FFplayPath  string

	// Markdown session report; empty disables it
	SummaryPath string
	Version     string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DefaultRate:       player.DefaultRate,
		PollInterval:      dispatch.DefaultPollInterval,
		KnownRoadMeters:   annotator.DefaultKnownRoadMeters,
		ScreenshotPattern: filesink.DefaultPattern,
		ScreenshotQuality: 95,
		WindowEnabled:     true,
		WindowTitle:       "SmartVision",
		WindowX:           250,
		WindowY:           150,
		Overlay:           overlay.DefaultStyle(),
	}
}

// View is the interactive terminal surface. It displays frames and
// produces input events.
type View interface {
	ports.Display
	ports.InputSource
	Start(ctx context.Context)
}

// Deps holds the collaborators of an Orchestrator.
type Deps struct {
	OpenSource func(ctx context.Context, cfg Config) (ports.VideoSource, error)
	OpenWindow func(cfg Config) (ports.Display, error) // optional
	IsTerminal func() bool                              // optional
	View       View
	Renderer   ports.Renderer
	FileSystem ports.FileSystem
	Logger     ports.Logger // optional
}

// Result summarizes a finished session.
type Result struct {
	SessionID     string
	TotalFrames   int
	Framerate     float64
	FinalPosition int
	Rate          float64
	Stats         player.Stats
}

// Orchestrator runs review sessions.
type Orchestrator struct {
	deps   Deps
	logger ports.Logger
}

// New creates a new Orchestrator.
func New(deps Deps) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	return &Orchestrator{deps: deps, logger: log}
}

// Run opens the video, starts playback and dispatches input until the user
// exits or ctx is cancelled. Errors wrapping ErrFatalInit are returned
// before any display or playback goroutine runs.
func (o *Orchestrator) Run(ctx context.Context, config Config) (Result, error) {
	sessionID := uuid.NewString()
	log := o.logger.WithComponent("session")
	log.Debug("Session %s: reviewing %s", sessionID, config.VideoPath)

	if o.deps.View == nil || o.deps.OpenSource == nil || o.deps.Renderer == nil || o.deps.FileSystem == nil {
		return Result{}, fmt.Errorf("%w: missing dependency", ErrFatalInit)
	}
	if o.deps.IsTerminal != nil && !o.deps.IsTerminal() {
		return Result{}, fmt.Errorf("%w: stdin is not a terminal", ErrFatalInit)
	}

	source, err := o.deps.OpenSource(ctx, config)
	if err != nil {
		log.Error("Failed to open video: %s", err)
		return Result{}, fmt.Errorf("%w: %w", ErrFatalInit, err)
	}
	defer source.Close()

	points := annotator.New(config.KnownRoadMeters)
	composer := overlay.New(o.deps.Renderer, config.Overlay)
	sink := filesink.New(filesink.Options{
		Dir:     config.ScreenshotDir,
		Pattern: config.ScreenshotPattern,
		Format:  ports.FormatJPEG,
		Quality: config.ScreenshotQuality,
	}, o.deps.FileSystem, o.deps.Renderer)

	displays := multiDisplay{o.deps.View}
	if config.WindowEnabled && o.deps.OpenWindow != nil {
		window, err := o.deps.OpenWindow(config)
		if err != nil {
			log.Warn("Native window unavailable: %s", err)
		} else {
			displays = append(displays, window)
		}
	}

	controller, err := player.New(player.Deps{
		Source:     source,
		Geometry:   points,
		Compositor: composer,
		Display:    displays,
		Sink:       sink,
		Logger:     o.logger,
	}, player.Options{
		Rate:        config.Rate,
		DefaultRate: config.DefaultRate,
	})
	if err != nil {
		displays.Close()
		return Result{}, fmt.Errorf("%w: %w", ErrFatalInit, err)
	}

	o.deps.View.Start(ctx)
	defer displays.Close()

	if err := controller.Start(ctx); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrFatalInit, err)
	}

	dispatcher := dispatch.New(controller, points, o.deps.View, o.logger, config.PollInterval)
	runErr := dispatcher.Run(ctx)
	controller.Stop()

	position, rate, _ := controller.Final()
	result := Result{
		SessionID:     sessionID,
		TotalFrames:   controller.TotalFrames(),
		Framerate:     source.Framerate(),
		FinalPosition: position,
		Rate:          rate,
		Stats:         controller.Stats(),
	}
	log.Debug("Session %s ended: %d ticks, %d frames shown, %d skipped, %d screenshots",
		sessionID, result.Stats.Ticks, result.Stats.FramesShown, result.Stats.FramesSkipped, result.Stats.Screenshots)

	if config.SummaryPath != "" {
		o.writeSummary(config, result, points)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return result, runErr
	}
	return result, nil
}

func (o *Orchestrator) writeSummary(config Config, result Result, points *annotator.Annotator) {
	log := o.logger.WithComponent("session")

	builder := summarizer.NewBuilder().
		WithSession(result.SessionID).
		WithVideo(config.VideoPath, result.TotalFrames, result.Framerate).
		WithPlayback(summarizer.PlaybackInfo{
			Rate:          result.Rate,
			FinalPosition: result.FinalPosition,
			Ticks:         result.Stats.Ticks,
			FramesShown:   result.Stats.FramesShown,
			FramesSkipped: result.Stats.FramesSkipped,
			Seeks:         result.Stats.Seeks,
			Screenshots:   result.Stats.Screenshots,
		}).
		WithPoints(points.Points(), config.KnownRoadMeters)
	if ov, ok := points.Overlay(); ok && ov.Calibration != nil {
		builder.WithMeasurement(ov.Calibration.ObjectMeters)
	}

	formatter := summarizer.NewMarkdownFormatter(summarizer.WithVersion(config.Version))
	writer := summarizer.NewWriter(formatter, o.deps.FileSystem)
	if err := writer.Write(config.SummaryPath, builder.Build()); err != nil {
		log.Error("Failed to write summary: %s", err)
		return
	}
	log.Info("Summary saved to %s", config.SummaryPath)
}
