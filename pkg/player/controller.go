// Package player implements the playback controller: a single loop goroutine
// that owns the playback session, renders the current frame on every tick
// and advances it while playing.
package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/annotator"
	"github.com/user/framescope/pkg/overlay"
	"github.com/user/framescope/pkg/ports"
)

// DefaultRate is used when neither the options nor the video give a usable rate.
const DefaultRate = 5.0

var (
	ErrAlreadyStarted = errors.New("player: already started")
	ErrNotStarted     = errors.New("player: not started")
	ErrStopped        = errors.New("player: stopped")
	ErrInvalidRate    = errors.New("player: rate must be positive")
	ErrEmptySource    = errors.New("player: video has no frames")
)

// Geometry supplies the annotation overlay for each render.
type Geometry interface {
	Overlay() (annotator.Overlay, bool)
}

// Compositor draws a scene over a frame.
type Compositor interface {
	Compose(frame image.Image, scene overlay.Scene) image.Image
}

// Deps holds the collaborators of a Controller.
type Deps struct {
	Source     ports.VideoSource
	Geometry   Geometry // optional
	Compositor Compositor
	Display    ports.Display
	Sink       ports.FrameSink
	Logger     ports.Logger // optional
}

// Options configures a Controller.
type Options struct {
	// Rate overrides the video framerate when positive.
	Rate float64
	// DefaultRate is used when Rate is unset and the video framerate is unusable.
	DefaultRate float64
}

// session is the mutable playback state. Only the loop goroutine touches it.
type session struct {
	position int
	rate     float64
	state    PlaybackState
	total    int
}

type counters struct {
	ticks         atomic.Uint64
	framesShown   atomic.Uint64
	framesSkipped atomic.Uint64
	seeks         atomic.Uint64
	screenshots   atomic.Uint64
}

// Controller drives playback. All methods are safe for concurrent use.
type Controller struct {
	deps   Deps
	logger ports.Logger
	total  int
	rate   float64

	cmds chan func(*session)
	quit chan struct{}
	done chan struct{}

	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once
	cancel   context.CancelFunc

	stats counters

	finalMu sync.Mutex
	final   *session
}

// New creates a Controller for deps.Source.
func New(deps Deps, opts Options) (*Controller, error) {
	if deps.Source == nil || deps.Compositor == nil || deps.Display == nil || deps.Sink == nil {
		return nil, fmt.Errorf("player: missing dependency")
	}
	total := deps.Source.TotalFrames()
	if total <= 0 {
		return nil, ErrEmptySource
	}

	log := deps.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	return &Controller{
		deps:   deps,
		logger: log.WithComponent("player"),
		total:  total,
		rate:   initialRate(opts, deps.Source.Framerate()),
		cmds:   make(chan func(*session)),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

func initialRate(opts Options, framerate float64) float64 {
	if validRate(opts.Rate) {
		return opts.Rate
	}
	if validRate(framerate) {
		return framerate
	}
	if validRate(opts.DefaultRate) {
		return opts.DefaultRate
	}
	return DefaultRate
}

func validRate(fps float64) bool {
	return fps > 0 && !math.IsInf(fps, 0) && !math.IsNaN(fps)
}

// TotalFrames returns the frame count of the source.
func (c *Controller) TotalFrames() int {
	return c.total
}

// Start launches the tick loop and begins playing.
func (c *Controller) Start(ctx context.Context) error {
	c.startMu.Lock()
	if c.started {
		c.startMu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	s := &session{
		position: 0,
		rate:     c.rate,
		state:    StatePaused,
		total:    c.total,
	}
	go c.loop(ctx, s)
	c.startMu.Unlock()

	c.logger.Info("Playback started: %d frames at %.2f fps", c.total, c.rate)
	return c.Play()
}

// Stop ends the tick loop and waits for it to exit. It is safe to call
// more than once and is a no-op before Start.
func (c *Controller) Stop() {
	c.startMu.Lock()
	started := c.started
	c.startMu.Unlock()
	if !started {
		return
	}

	c.stopOnce.Do(func() {
		close(c.quit)
	})
	<-c.done
	c.cancel()
}

// Done is closed when the tick loop has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// do runs fn on the loop goroutine and waits for it to finish.
func (c *Controller) do(fn func(*session)) error {
	c.startMu.Lock()
	started := c.started
	c.startMu.Unlock()
	if !started {
		return ErrNotStarted
	}

	finished := make(chan struct{})
	select {
	case c.cmds <- func(s *session) {
		fn(s)
		close(finished)
	}:
	case <-c.done:
		return ErrStopped
	}
	<-finished
	return nil
}

// Play resumes advancing.
func (c *Controller) Play() error {
	return c.setState(StatePlaying)
}

// Pause stops advancing; the current frame keeps being rendered.
func (c *Controller) Pause() error {
	return c.setState(StatePaused)
}

func (c *Controller) setState(state PlaybackState) error {
	return c.do(func(s *session) {
		if s.state != state {
			c.logger.Info("State changed to %s", state)
		}
		s.state = state
	})
}

// Seek moves to index, clamped to the video, and renders it immediately.
// The playback state is unchanged.
func (c *Controller) Seek(index int) (FrameResult, error) {
	var result FrameResult
	err := c.do(func(s *session) {
		s.position = clamp(index, 0, s.total-1)
		c.stats.seeks.Add(1)
		c.logger.Debug("Seek to frame %d", s.position)
		result = c.render(s)
	})
	return result, err
}

// SetRate changes the tick rate from the next wait on.
func (c *Controller) SetRate(fps float64) error {
	if !validRate(fps) {
		return fmt.Errorf("%w: %g", ErrInvalidRate, fps)
	}
	return c.do(func(s *session) {
		s.rate = fps
		c.logger.Debug("Rate set to %.2f fps", fps)
	})
}

// Rate returns the current tick rate.
func (c *Controller) Rate() (float64, error) {
	var rate float64
	err := c.do(func(s *session) { rate = s.rate })
	return rate, err
}

// CurrentPosition returns the current frame index.
func (c *Controller) CurrentPosition() (int, error) {
	var pos int
	err := c.do(func(s *session) { pos = s.position })
	return pos, err
}

// Final returns the position and rate the session ended with.
// ok is false until the tick loop has exited.
func (c *Controller) Final() (position int, rate float64, ok bool) {
	c.finalMu.Lock()
	defer c.finalMu.Unlock()
	if c.final == nil {
		return 0, 0, false
	}
	return c.final.position, c.final.rate, true
}

// State returns the current playback state.
func (c *Controller) State() PlaybackState {
	select {
	case <-c.done:
		return StateStopped
	default:
	}

	state := StatePaused
	if err := c.do(func(s *session) { state = s.state }); errors.Is(err, ErrStopped) {
		return StateStopped
	}
	return state
}

// SaveCurrentFrame writes the unannotated frame at the current position
// through the sink and returns the path written.
func (c *Controller) SaveCurrentFrame() (string, error) {
	var path string
	var saveErr error
	err := c.do(func(s *session) {
		c.deps.Source.Seek(s.position)
		img, err := c.deps.Source.ReadCurrent()
		if err != nil {
			saveErr = fmt.Errorf("read frame %d: %w", s.position, err)
			return
		}
		path, saveErr = c.deps.Sink.SaveFrame(s.position, img)
		if saveErr == nil {
			c.stats.screenshots.Add(1)
			c.logger.Info("Saved screenshot %s", path)
		}
	})
	if err != nil {
		return "", err
	}
	return path, saveErr
}

// Stats returns a snapshot of the counters.
func (c *Controller) Stats() Stats {
	return Stats{
		Ticks:         c.stats.ticks.Load(),
		FramesShown:   c.stats.framesShown.Load(),
		FramesSkipped: c.stats.framesSkipped.Load(),
		Seeks:         c.stats.seeks.Load(),
		Screenshots:   c.stats.screenshots.Load(),
	}
}

func (c *Controller) loop(ctx context.Context, s *session) {
	defer close(c.done)
	defer func() {
		c.finalMu.Lock()
		final := *s
		c.final = &final
		c.finalMu.Unlock()
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.state = StateStopped
			c.logger.Debug("Tick loop cancelled")
			return
		case <-c.quit:
			s.state = StateStopped
			c.logger.Info("State changed to %s", StateStopped)
			return
		case fn := <-c.cmds:
			fn(s)
		case <-timer.C:
			c.tick(s)
			timer.Reset(interval(s.rate))
		}
	}
}

// tick renders the current position and, while playing, advances it with
// wraparound to frame 0.
func (c *Controller) tick(s *session) FrameResult {
	c.stats.ticks.Add(1)
	result := c.render(s)
	if s.state == StatePlaying {
		s.position = (s.position + 1) % s.total
	}
	return result
}

// render shows the frame at the session position. Failures are reported
// in the result and never stop the loop.
func (c *Controller) render(s *session) FrameResult {
	pos := s.position

	c.deps.Source.Seek(pos)
	img, err := c.deps.Source.ReadCurrent()
	if err != nil {
		return c.skipped(pos, err)
	}

	scene := overlay.Scene{State: s.state.String()}
	if c.deps.Geometry != nil {
		scene.Geometry, scene.HasOverlay = c.deps.Geometry.Overlay()
	}
	composed := c.deps.Compositor.Compose(img, scene)

	if err := c.deps.Display.Show(composed); err != nil {
		return c.skipped(pos, fmt.Errorf("display: %w", err))
	}

	c.stats.framesShown.Add(1)
	return FrameResult{Position: pos, Status: FrameShown}
}

func (c *Controller) skipped(pos int, err error) FrameResult {
	c.stats.framesSkipped.Add(1)
	c.logger.Debug("Skipped frame %d: %v", pos, err)
	return FrameResult{Position: pos, Status: FrameSkipped, Err: err}
}

func interval(rate float64) time.Duration {
	return time.Duration(float64(time.Second) / rate)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
