package orchestrator

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/user/framescope/pkg/adapters/ffplaywindow"
	"github.com/user/framescope/pkg/adapters/ggrenderer"
	"github.com/user/framescope/pkg/adapters/mp4source"
	"github.com/user/framescope/pkg/adapters/osfilesystem"
	"github.com/user/framescope/pkg/adapters/termui"
	"github.com/user/framescope/pkg/ports"
)

// DefaultDeps returns production collaborators around view.
func DefaultDeps(view View, log ports.Logger) Deps {
	renderer := ggrenderer.New()
	return Deps{
		OpenSource: func(ctx context.Context, cfg Config) (ports.VideoSource, error) {
			if cfg.FFmpegPath != "" {
				mp4source.SetFFmpegPath(cfg.FFmpegPath)
			}
			if cfg.FFprobePath != "" {
				mp4source.SetFFprobePath(cfg.FFprobePath)
			}
			source, err := mp4source.Open(ctx, cfg.VideoPath, mp4source.Options{Logger: log})
			if err != nil {
				return nil, err
			}
			return source, nil
		},
		OpenWindow: func(cfg Config) (ports.Display, error) {
			window, err := ffplaywindow.New(ffplaywindow.Options{
				FFplayPath: cfg.FFplayPath,
				Title:      cfg.WindowTitle,
				X:          cfg.WindowX,
				Y:          cfg.WindowY,
				Logger:     log,
			}, renderer)
			if err != nil {
				return nil, err
			}
			return window, nil
		},
		IsTerminal: StdinIsTerminal,
		View:       view,
		Renderer:   renderer,
		FileSystem: osfilesystem.New(),
		Logger:     log,
	}
}

// StdinIsTerminal reports whether standard input is an interactive terminal.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Ensure termui.UI implements View
var _ View = (*termui.UI)(nil)
