package ports

import (
	"context"
	"time"
)

// EventType classifies an input event.
type EventType int

const (
	// EventKey is a key press; InputEvent.Key holds its name.
	EventKey EventType = iota
	// EventMouse is a left-button press; X and Y are frame pixel coordinates.
	EventMouse
	// EventInterrupt is a user interrupt such as Ctrl+C.
	EventInterrupt
	// EventClosed reports that the input source has shut down.
	EventClosed
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventInterrupt:
		return "interrupt"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// KeyEscape is the key name reported for the Escape key.
const KeyEscape = "esc"

// InputEvent is a single discrete user input.
type InputEvent struct {
	Type EventType
	Key  string // Key name for EventKey ("p", "esc", ...)
	X    int    // Frame x coordinate for EventMouse
	Y    int    // Frame y coordinate for EventMouse
}

// InputSource delivers user input events.
type InputSource interface {
	// NextEvent waits up to timeout for the next event.
	// It returns false when no event arrived within the timeout
	// or when ctx is done.
	NextEvent(ctx context.Context, timeout time.Duration) (InputEvent, bool)
}
