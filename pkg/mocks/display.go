package mocks

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/user/framescope/pkg/ports"
)

// Display is a mock implementation of ports.Display.
type Display struct {
	ShowFunc func(img image.Image) error

	mu     sync.Mutex
	shown  []image.Image
	closed bool
}

func (m *Display) Show(img image.Image) error {
	if m.ShowFunc != nil {
		if err := m.ShowFunc(img); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, img)
	return nil
}

func (m *Display) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// ShownCount returns the number of successful Show calls.
func (m *Display) ShownCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shown)
}

// LastShown returns the most recently shown image, or nil.
func (m *Display) LastShown() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.shown) == 0 {
		return nil
	}
	return m.shown[len(m.shown)-1]
}

// Closed reports whether Close was called.
func (m *Display) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ ports.Display = (*Display)(nil)

// InputSource is a mock implementation of ports.InputSource fed from a channel.
type InputSource struct {
	events chan ports.InputEvent
}

// NewInputSource creates a mock input source that replays events in order.
func NewInputSource(events ...ports.InputEvent) *InputSource {
	ch := make(chan ports.InputEvent, len(events)+16)
	for _, ev := range events {
		ch <- ev
	}
	return &InputSource{events: ch}
}

// Push queues another event.
func (m *InputSource) Push(ev ports.InputEvent) {
	m.events <- ev
}

func (m *InputSource) NextEvent(ctx context.Context, timeout time.Duration) (ports.InputEvent, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ev := <-m.events:
		return ev, true
	case <-timer.C:
		return ports.InputEvent{}, false
	case <-ctx.Done():
		return ports.InputEvent{}, false
	}
}

var _ ports.InputSource = (*InputSource)(nil)
