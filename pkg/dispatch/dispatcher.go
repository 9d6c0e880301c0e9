// Package dispatch turns input events into playback and annotation calls.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/player"
	"github.com/user/framescope/pkg/ports"
)

// DefaultPollInterval bounds each wait for input.
const DefaultPollInterval = 10 * time.Millisecond

// Playback is the controller surface the dispatcher drives.
type Playback interface {
	Play() error
	Pause() error
	Seek(index int) (player.FrameResult, error)
	CurrentPosition() (int, error)
	SaveCurrentFrame() (string, error)
	Stop()
}

// PointSink receives mouse clicks in frame coordinates.
type PointSink interface {
	AddPoint(x, y int) (image.Point, bool)
}

// Dispatcher reads events from an InputSource and applies them.
type Dispatcher struct {
	playback Playback
	points   PointSink
	input    ports.InputSource
	logger   ports.Logger
	poll     time.Duration
}

// New creates a Dispatcher. A non-positive poll uses DefaultPollInterval.
func New(playback Playback, points PointSink, input ports.InputSource, log ports.Logger, poll time.Duration) *Dispatcher {
	if log == nil {
		log = logger.NewNoop()
	}
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Dispatcher{
		playback: playback,
		points:   points,
		input:    input,
		logger:   log.WithComponent("dispatch"),
		poll:     poll,
	}
}

// Run dispatches events until exit, interrupt, a closed input source or
// ctx cancellation. The controller is stopped before Run returns.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			d.playback.Stop()
			return err
		}

		ev, ok := d.input.NextEvent(ctx, d.poll)
		if !ok {
			continue
		}

		exit, err := d.Dispatch(ev)
		switch {
		case errors.Is(err, ErrInvalidInput):
			d.logger.Warn("Invalid key was pressed: %s", ev.Key)
		case err != nil:
			d.logger.Error("Command failed: %v", err)
		}
		if exit {
			return nil
		}
	}
}

// Dispatch applies one event. It reports whether the session should end.
func (d *Dispatcher) Dispatch(ev ports.InputEvent) (bool, error) {
	switch ev.Type {
	case ports.EventKey:
		cmd, err := CommandForKey(ev.Key)
		if err != nil {
			return false, err
		}
		return cmd == CmdExit, d.Execute(cmd)

	case ports.EventMouse:
		if d.points == nil {
			return false, nil
		}
		if p, ok := d.points.AddPoint(ev.X, ev.Y); ok {
			d.logger.Info("Reference point added at (%d, %d)", p.X, p.Y)
		} else {
			d.logger.Debug("Reference points complete, click ignored")
		}
		return false, nil

	case ports.EventInterrupt, ports.EventClosed:
		d.logger.Debug("Input %s, exiting", ev.Type)
		return true, d.Execute(CmdExit)

	default:
		return false, fmt.Errorf("%w: event type %d", ErrInvalidInput, ev.Type)
	}
}

// Execute runs a command against the controller.
func (d *Dispatcher) Execute(cmd Command) error {
	d.logger.Debug("Command %s", cmd)

	switch cmd {
	case CmdPlay:
		return d.playback.Play()
	case CmdPause:
		return d.playback.Pause()
	case CmdNextFrame:
		return d.step(1)
	case CmdPrevFrame:
		return d.step(-1)
	case CmdScreenshot:
		_, saveErr := d.playback.SaveCurrentFrame()
		if err := d.playback.Pause(); err != nil {
			return err
		}
		if saveErr != nil {
			return fmt.Errorf("screenshot: %w", saveErr)
		}
		return nil
	case CmdExit:
		d.playback.Stop()
		return nil
	default:
		return fmt.Errorf("%w: command %d", ErrInvalidInput, cmd)
	}
}

func (d *Dispatcher) step(delta int) error {
	pos, err := d.playback.CurrentPosition()
	if err != nil {
		return err
	}
	result, err := d.playback.Seek(pos + delta)
	if err != nil {
		return err
	}
	if result.Status == player.FrameSkipped {
		d.logger.Debug("Step to frame %d not shown: %v", result.Position, result.Err)
	}
	return d.playback.Pause()
}
