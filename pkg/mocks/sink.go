package mocks

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/framescope/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	SaveFrameFunc func(index int, img image.Image) (string, error)

	mu     sync.Mutex
	Frames map[int]image.Image
	Calls  []int
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink() *FrameSink {
	return &FrameSink{Frames: make(map[int]image.Image)}
}

func (m *FrameSink) SaveFrame(index int, img image.Image) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, index)
	m.mu.Unlock()
	if m.SaveFrameFunc != nil {
		return m.SaveFrameFunc(index, img)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[index] = img
	return fmt.Sprintf("Frame_%d.jpg", index), nil
}

// SavedIndexes returns the indexes passed to SaveFrame, in call order.
func (m *FrameSink) SavedIndexes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.Calls...)
}

var _ ports.FrameSink = (*FrameSink)(nil)
