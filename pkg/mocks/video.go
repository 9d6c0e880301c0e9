package mocks

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/framescope/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
// Frames are solid images whose red channel encodes the index modulo 256.
type VideoSource struct {
	Total int
	FPS   float64

	ReadCurrentFunc func(index int) (image.Image, error)

	mu     sync.Mutex
	cursor int
	Seeks  []int
	Reads  []int
	closed bool
}

// NewVideoSource creates a mock source with total frames at fps.
func NewVideoSource(total int, fps float64) *VideoSource {
	return &VideoSource{Total: total, FPS: fps}
}

func (m *VideoSource) TotalFrames() int {
	return m.Total
}

func (m *VideoSource) Framerate() float64 {
	return m.FPS
}

func (m *VideoSource) Seek(index int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = index
	m.Seeks = append(m.Seeks, index)
}

func (m *VideoSource) ReadCurrent() (image.Image, error) {
	m.mu.Lock()
	index := m.cursor
	m.cursor++
	m.Reads = append(m.Reads, index)
	m.mu.Unlock()

	if m.ReadCurrentFunc != nil {
		return m.ReadCurrentFunc(index)
	}
	if index < 0 || index >= m.Total {
		return nil, fmt.Errorf("frame %d out of range", index)
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(index % 256), A: 255})
		}
	}
	return img, nil
}

func (m *VideoSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// ReadIndexes returns every index read so far, in order.
func (m *VideoSource) ReadIndexes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.Reads...)
}

// Closed reports whether Close was called.
func (m *VideoSource) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ ports.VideoSource = (*VideoSource)(nil)
