// Package termui provides a full-screen terminal view built on bubbletea.
// It is a ports.Display for composed frames, a ports.InputSource for keys
// and mouse clicks, and an io.Writer that shows the latest log line.
package termui

import (
	"context"
	"image"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/framescope/pkg/ports"
)

const (
	headerRows = 1
	footerRows = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// Options configures the terminal view.
type Options struct {
	Title string
	Help  string // key table shown in the footer
}

type frameMsg struct {
	view   string
	layout layout
}

type logMsg string

// UI is the terminal view. Create it with New and start it with Start.
type UI struct {
	opts    Options
	events  chan ports.InputEvent
	program *tea.Program

	mu       sync.Mutex
	width    int
	height   int
	layout   layout
	launched bool
	started  bool

	done chan struct{}
	err  error
}

// New creates a terminal view. Extra program options are passed to bubbletea.
func New(opts Options, programOpts ...tea.ProgramOption) *UI {
	u := &UI{
		opts:   opts,
		events: make(chan ports.InputEvent, 64),
		done:   make(chan struct{}),
	}
	popts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, programOpts...)
	u.program = tea.NewProgram(&model{ui: u}, popts...)
	return u
}

// Start runs the bubbletea program until Close or ctx cancellation.
func (u *UI) Start(ctx context.Context) {
	u.mu.Lock()
	u.launched = true
	u.started = true
	u.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			u.program.Quit()
		case <-u.done:
		}
	}()

	go func() {
		_, err := u.program.Run()
		u.mu.Lock()
		u.err = err
		u.started = false
		u.mu.Unlock()
		u.push(ports.InputEvent{Type: ports.EventClosed})
		close(u.done)
	}()
}

// Running reports whether the view currently owns the terminal.
func (u *UI) Running() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.started
}

// Show renders img into the preview area.
func (u *UI) Show(img image.Image) error {
	if !u.Running() {
		return nil
	}

	u.mu.Lock()
	cols, rows := u.width, u.height-headerRows-footerRows
	u.mu.Unlock()

	b := img.Bounds()
	l := fitLayout(b.Dx(), b.Dy(), cols, rows, 0, headerRows)
	u.program.Send(frameMsg{view: renderHalfBlocks(img, l), layout: l})
	return nil
}

// Write shows the last non-empty line of p in the status bar.
// Output is discarded while the view is not running.
func (u *UI) Write(p []byte) (int, error) {
	if !u.Running() {
		return len(p), nil
	}
	lines := strings.Split(strings.TrimRight(string(p), "\n"), "\n")
	u.program.Send(logMsg(lines[len(lines)-1]))
	return len(p), nil
}

// NextEvent waits up to timeout for the next input event.
func (u *UI) NextEvent(ctx context.Context, timeout time.Duration) (ports.InputEvent, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-u.events:
		return ev, true
	case <-timer.C:
		return ports.InputEvent{}, false
	case <-ctx.Done():
		return ports.InputEvent{}, false
	}
}

// Close quits the program and waits for the terminal to be restored.
func (u *UI) Close() error {
	u.mu.Lock()
	launched := u.launched
	u.mu.Unlock()
	if !launched {
		return nil
	}

	u.program.Quit()

	select {
	case <-u.done:
	case <-time.After(2 * time.Second):
		u.program.Kill()
		<-u.done
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// push queues an event, dropping it when the queue is full.
func (u *UI) push(ev ports.InputEvent) {
	select {
	case u.events <- ev:
	default:
	}
}

// model is the bubbletea model behind UI.
type model struct {
	ui      *UI
	preview string
	status  string
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.mu.Lock()
		m.ui.width, m.ui.height = msg.Width, msg.Height
		m.ui.mu.Unlock()

	case tea.KeyMsg:
		m.ui.push(translateKey(msg))

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		m.ui.mu.Lock()
		l := m.ui.layout
		m.ui.mu.Unlock()
		if x, y, ok := l.cellToFrame(msg.X, msg.Y); ok {
			m.ui.push(ports.InputEvent{Type: ports.EventMouse, X: x, Y: y})
		}

	case frameMsg:
		m.preview = msg.view
		m.ui.mu.Lock()
		m.ui.layout = msg.layout
		m.ui.mu.Unlock()

	case logMsg:
		m.status = string(msg)
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.ui.opts.Title))
	b.WriteByte('\n')

	m.ui.mu.Lock()
	rows := m.ui.height - headerRows - footerRows
	m.ui.mu.Unlock()

	lines := 0
	if m.preview != "" {
		b.WriteString(m.preview)
		lines = strings.Count(m.preview, "\n") + 1
	}
	for ; lines < rows; lines++ {
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(statusStyle.Render(m.status))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.ui.opts.Help))
	return b.String()
}

// translateKey maps a bubbletea key to an input event.
func translateKey(msg tea.KeyMsg) ports.InputEvent {
	switch msg.Type {
	case tea.KeyCtrlC:
		return ports.InputEvent{Type: ports.EventInterrupt}
	case tea.KeyEsc:
		return ports.InputEvent{Type: ports.EventKey, Key: ports.KeyEscape}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return ports.InputEvent{Type: ports.EventKey, Key: string(msg.Runes[0])}
		}
	}
	return ports.InputEvent{Type: ports.EventKey, Key: msg.String()}
}

// Ensure UI implements the ports it serves
var (
	_ ports.Display     = (*UI)(nil)
	_ ports.InputSource = (*UI)(nil)
)
