// Package main provides the CLI entry point for framescope.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framescope/pkg/adapters/osfilesystem"
	"github.com/user/framescope/pkg/adapters/termui"
	"github.com/user/framescope/pkg/config"
	"github.com/user/framescope/pkg/dispatch"
	"github.com/user/framescope/pkg/orchestrator"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "framescope",
		Usage:           l10n.T("Step through a video and measure distances on its frames"),
		UsageText:       "framescope <video>",
		ArgsUsage:       "<video>",
		Description:     keyTable(),
		Version:         version,
		HideHelpCommand: true,
		Action:          run,
	}
}

// keyTable renders the key bindings, one per line.
func keyTable() string {
	var b strings.Builder
	for _, binding := range dispatch.Bindings {
		fmt.Fprintf(&b, "%-4s %s\n", binding.Label, l10n.T(binding.Command.String()))
	}
	return strings.TrimRight(b.String(), "\n")
}

// helpLine renders the key bindings on a single line for the status bar.
func helpLine() string {
	parts := make([]string, 0, len(dispatch.Bindings))
	for _, binding := range dispatch.Bindings {
		parts = append(parts, fmt.Sprintf("%s %s", binding.Label, l10n.T(binding.Command.String())))
	}
	return strings.Join(parts, " · ")
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return cli.Exit(l10n.T("Error input params"), 1)
	}
	videoPath := c.Args().First()

	cfg, err := config.Load(osfilesystem.New())
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Fprintln(c.App.Writer, keyTable())

	view := termui.New(termui.Options{
		Title: cfg.Window.Title,
		Help:  helpLine(),
	})
	log := newLogger(cfg.LogLevel, view, view.Running)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	orchConfig := cfg.ToOrchestratorConfig(videoPath)
	orchConfig.Version = version

	orch := orchestrator.New(orchestrator.DefaultDeps(view, log))
	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Fprintln(c.App.Writer, l10n.F("Reviewed %d of %d frames, %d screenshots saved",
		result.Stats.FramesShown, result.TotalFrames, result.Stats.Screenshots))
	return nil
}
