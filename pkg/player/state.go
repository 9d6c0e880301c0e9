package player

import "fmt"

// PlaybackState is the run state of a Controller.
type PlaybackState int

const (
	// StatePaused re-renders the current frame without advancing.
	StatePaused PlaybackState = iota
	// StatePlaying advances one frame per tick.
	StatePlaying
	// StateStopped is terminal; the tick loop has exited.
	StateStopped
)

// String returns the overlay name of the state.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateStopped:
		return "STOPPED"
	default:
		return "INVALID"
	}
}

// FrameStatus is the outcome of one render attempt.
type FrameStatus int

const (
	FrameShown FrameStatus = iota
	FrameSkipped
)

func (s FrameStatus) String() string {
	if s == FrameShown {
		return "shown"
	}
	return "skipped"
}

// FrameResult reports what happened when a position was rendered.
type FrameResult struct {
	Position int
	Status   FrameStatus
	Err      error // Set when Status is FrameSkipped
}

func (r FrameResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("frame %d %s: %v", r.Position, r.Status, r.Err)
	}
	return fmt.Sprintf("frame %d %s", r.Position, r.Status)
}

// Stats is a snapshot of controller counters.
type Stats struct {
	Ticks         uint64
	FramesShown   uint64
	FramesSkipped uint64
	Seeks         uint64
	Screenshots   uint64
}
