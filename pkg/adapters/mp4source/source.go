// Package mp4source provides a ports.VideoSource backed by mp4ff for
// indexing and an ffmpeg process for decoding single frames.
package mp4source

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

// Source implements ports.VideoSource for a file on disk.
type Source struct {
	path    string
	info    Info
	extract extractFunc
	logger  ports.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	cursor      int
	cachedIndex int
	cached      image.Image
	closed      bool
}

// Options configures Open.
type Options struct {
	Logger ports.Logger
}

// Open probes path and prepares frame extraction.
// ctx bounds every ffmpeg process started by the source; Close cancels it.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	log = log.WithComponent("mp4source")

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	info, err := probeFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Frames <= 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFrames)
	}

	log.Info("Opened %s: %d frames, %.3f fps, %dx%d %s", path, info.Frames, info.Framerate, info.Width, info.Height, info.Codec)

	return newSource(ctx, path, info, ffmpegExtractor(ffmpegPath), log), nil
}

func newSource(ctx context.Context, path string, info Info, extract extractFunc, log ports.Logger) *Source {
	ctx, cancel := context.WithCancel(ctx)
	return &Source{
		path:        path,
		info:        info,
		extract:     extract,
		logger:      log,
		ctx:         ctx,
		cancel:      cancel,
		cachedIndex: -1,
	}
}

// TotalFrames returns the number of frames in the video.
func (s *Source) TotalFrames() int {
	return s.info.Frames
}

// Framerate returns the video framerate, 0 when unknown.
func (s *Source) Framerate() float64 {
	return s.info.Framerate
}

// Seek sets the read cursor. Out-of-range indexes are reported by ReadCurrent.
func (s *Source) Seek(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = index
}

// ReadCurrent decodes the frame at the cursor and advances the cursor.
func (s *Source) ReadCurrent() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	index := s.cursor
	s.cursor++

	if index < 0 || index >= s.info.Frames {
		return nil, fmt.Errorf("frame %d of %d: %w", index, s.info.Frames, ErrFrameUnavailable)
	}

	if index == s.cachedIndex && s.cached != nil {
		return s.cached, nil
	}

	seconds := s.info.SeekTime(index)
	img, err := s.extract(s.ctx, s.path, seconds)
	if err != nil {
		return nil, fmt.Errorf("frame %d: %w: %v", index, ErrFrameUnavailable, err)
	}
	s.logger.Debug("Decoded frame %d at %.3fs", index, seconds)

	s.cachedIndex = index
	s.cached = img
	return img, nil
}

// Close stops any running decode and releases the cache.
func (s *Source) Close() error {
	s.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cached = nil
	return nil
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
