// Package ffplaywindow shows frames in a native window by piping raw RGB
// video into an ffplay process.
package ffplaywindow

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

// ErrFFplayNotFound is returned when ffplay cannot be located.
var ErrFFplayNotFound = errors.New("ffplaywindow: ffplay not found in PATH")

// Options configures the window.
type Options struct {
	FFplayPath string // Empty means look up "ffplay" on PATH
	Title      string
	X, Y       int
	Logger     ports.Logger
}

// Window implements ports.Display. The ffplay process is launched on the
// first frame, sized to that frame; later frames are scaled to fit.
type Window struct {
	opts     Options
	path     string
	renderer ports.Renderer
	logger   ports.Logger

	// launch starts the viewer process for a w x h stream.
	launch func(w, h int) (io.WriteCloser, func() error, error)

	frames chan image.Image
	wg     sync.WaitGroup

	mu     sync.Mutex
	stdin  io.WriteCloser
	wait   func() error
	dead   bool
	closed bool
}

// New locates ffplay and prepares a window. No process runs until the first Show.
func New(opts Options, renderer ports.Renderer) (*Window, error) {
	path := opts.FFplayPath
	if path == "" {
		p, err := exec.LookPath("ffplay")
		if err != nil {
			return nil, ErrFFplayNotFound
		}
		path = p
	}

	return newWindow(opts, path, renderer), nil
}

func newWindow(opts Options, path string, renderer ports.Renderer) *Window {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}

	w := &Window{
		opts:     opts,
		path:     path,
		renderer: renderer,
		logger:   log.WithComponent("ffplay"),
		frames:   make(chan image.Image, 1),
	}
	w.launch = w.launchFFplay
	return w
}

// Args returns the ffplay arguments for a w x h rgb24 stream.
func (w *Window) Args(width, height int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgb24",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", "60",
		"-i", "-",
		"-window_title", w.opts.Title,
		"-left", strconv.Itoa(w.opts.X),
		"-top", strconv.Itoa(w.opts.Y),
		"-fflags", "nobuffer",
		"-flags", "low_delay",
	}
}

func (w *Window) launchFFplay(width, height int) (io.WriteCloser, func() error, error) {
	cmd := exec.Command(w.path, w.Args(width, height)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("start ffplay: %w", err)
	}
	kill := func() error {
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
		return cmd.Wait()
	}
	return stdin, kill, nil
}

// Show queues img for the window. A frame still waiting to be written is
// replaced, so Show never blocks on the viewer.
func (w *Window) Show(img image.Image) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.dead {
		return nil
	}
	if w.stdin == nil {
		if err := w.start(img.Bounds().Dx(), img.Bounds().Dy()); err != nil {
			w.dead = true
			return err
		}
	}

	select {
	case w.frames <- img:
	default:
		select {
		case <-w.frames:
		default:
		}
		select {
		case w.frames <- img:
		default:
		}
	}
	return nil
}

// start launches the viewer; w.mu must be held.
func (w *Window) start(width, height int) error {
	stdin, wait, err := w.launch(width, height)
	if err != nil {
		return err
	}
	w.stdin = stdin
	w.wait = wait

	w.wg.Add(1)
	go w.writeLoop(stdin, width, height)
	w.logger.Debug("Window opened at %dx%d", width, height)
	return nil
}

func (w *Window) writeLoop(out io.Writer, width, height int) {
	defer w.wg.Done()

	bw := bufio.NewWriterSize(out, width*height*3)
	buf := make([]byte, width*height*3)
	for img := range w.frames {
		if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
			img = w.renderer.ResizeImage(img, width, height)
		}
		toRGB24(img, buf)
		if _, err := bw.Write(buf); err == nil {
			err = bw.Flush()
			if err == nil {
				continue
			}
		}
		w.mu.Lock()
		w.dead = true
		w.mu.Unlock()
		w.logger.Debug("Window closed by user")
		for range w.frames {
		}
		return
	}
}

// toRGB24 packs img into buf as tightly packed RGB triples.
func toRGB24(img image.Image, buf []byte) {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	i := 0
	for y := 0; y < rgba.Rect.Dy(); y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+rgba.Rect.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			buf[i] = row[x]
			buf[i+1] = row[x+1]
			buf[i+2] = row[x+2]
			i += 3
		}
	}
}

// Close stops the writer and terminates ffplay.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	stdin, wait := w.stdin, w.wait
	w.mu.Unlock()

	close(w.frames)
	if stdin != nil {
		stdin.Close()
	}
	w.wg.Wait()
	if wait != nil {
		wait()
	}
	return nil
}

// Ensure Window implements ports.Display
var _ ports.Display = (*Window)(nil)
