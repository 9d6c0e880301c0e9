package dispatch

import (
	"errors"
	"fmt"

	"github.com/user/framescope/pkg/ports"
)

// ErrInvalidInput is returned for a key with no command.
var ErrInvalidInput = errors.New("dispatch: invalid input")

// Command is a user-level playback command.
type Command int

const (
	CmdPlay Command = iota
	CmdPause
	CmdNextFrame
	CmdPrevFrame
	CmdScreenshot
	CmdExit
)

func (c Command) String() string {
	switch c {
	case CmdPlay:
		return "play"
	case CmdPause:
		return "pause"
	case CmdNextFrame:
		return "next frame"
	case CmdPrevFrame:
		return "previous frame"
	case CmdScreenshot:
		return "screenshot"
	case CmdExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Binding pairs a key with its command.
type Binding struct {
	Key     string
	Label   string
	Command Command
}

// Bindings lists the key table in display order.
var Bindings = []Binding{
	{Key: "p", Label: "p", Command: CmdPlay},
	{Key: "f", Label: "f", Command: CmdPause},
	{Key: "m", Label: "m", Command: CmdNextFrame},
	{Key: "n", Label: "n", Command: CmdPrevFrame},
	{Key: "s", Label: "s", Command: CmdScreenshot},
	{Key: ports.KeyEscape, Label: "Esc", Command: CmdExit},
}

// CommandForKey maps a key name to its command.
func CommandForKey(key string) (Command, error) {
	for _, b := range Bindings {
		if b.Key == key {
			return b.Command, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInput, key)
}
