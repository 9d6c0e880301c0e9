package main

import (
	"io"

	"github.com/user/framescope/pkg/adapters/logger"
	"github.com/user/framescope/pkg/ports"
)

// sessionLogger writes to the view's status bar while the view owns the
// terminal and to the console before it starts and after it exits.
type sessionLogger struct {
	view    ports.Logger
	console ports.Logger
	active  func() bool
}

// newLogger builds the CLI logger. w receives lines while active reports true.
func newLogger(level string, w io.Writer, active func() bool) ports.Logger {
	l := ports.ParseLogLevel(level)
	if l == ports.LevelQuiet {
		return logger.NewNoop()
	}
	return newSessionLogger(logger.NewWriter(l, w), logger.NewConsole(l), active)
}

func newSessionLogger(view, console ports.Logger, active func() bool) *sessionLogger {
	return &sessionLogger{view: view, console: console, active: active}
}

func (l *sessionLogger) target() ports.Logger {
	if l.active() {
		return l.view
	}
	return l.console
}

func (l *sessionLogger) Debug(msg string, args ...interface{}) { l.target().Debug(msg, args...) }
func (l *sessionLogger) Info(msg string, args ...interface{})  { l.target().Info(msg, args...) }
func (l *sessionLogger) Warn(msg string, args ...interface{})  { l.target().Warn(msg, args...) }
func (l *sessionLogger) Error(msg string, args ...interface{}) { l.target().Error(msg, args...) }

func (l *sessionLogger) WithComponent(component string) ports.Logger {
	return newSessionLogger(l.view.WithComponent(component), l.console.WithComponent(component), l.active)
}

// Ensure sessionLogger implements ports.Logger
var _ ports.Logger = (*sessionLogger)(nil)
