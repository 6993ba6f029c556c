// Package logger provides the process-wide structured logger. Terminal
// sessions get colorized output; everything else gets plain text.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var lvl = &slog.LevelVar{}

// Logger wraps slog with printf-style helpers.
type Logger struct {
	sl *slog.Logger
}

// New builds a logger writing to stderr.
func New() *Logger {
	return &Logger{sl: slog.New(newHandler(os.Stderr))}
}

// NewWith builds a logger writing to the provided sink with the plain text
// handler, for log files and test capture.
func NewWith(w io.Writer) *Logger {
	return &Logger{sl: slog.New(newTextHandler(w))}
}

func newHandler(w io.Writer) slog.Handler {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return tint.NewHandler(w, &tint.Options{Level: lvl})
	}
	return newTextHandler(w)
}

func newTextHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}

// SetDebug toggles debug-level logging process-wide.
func SetDebug(on bool) {
	if on {
		lvl.Set(slog.LevelDebug)
	} else {
		lvl.Set(slog.LevelInfo)
	}
}

func (l *Logger) Infof(format string, a ...any)    { l.sl.Info(fmt.Sprintf(format, a...)) }
func (l *Logger) Warningf(format string, a ...any) { l.sl.Warn(fmt.Sprintf(format, a...)) }
func (l *Logger) Errorf(format string, a ...any)   { l.sl.Error(fmt.Sprintf(format, a...)) }
func (l *Logger) Debugf(format string, a ...any)   { l.sl.Debug(fmt.Sprintf(format, a...)) }

// With returns a logger carrying the given attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sl: l.sl.With(args...)}
}

var defaultLogger = New()

func Infof(format string, a ...any)    { defaultLogger.Infof(format, a...) }
func Warningf(format string, a ...any) { defaultLogger.Warningf(format, a...) }
func Errorf(format string, a ...any)   { defaultLogger.Errorf(format, a...) }
func Debugf(format string, a ...any)   { defaultLogger.Debugf(format, a...) }
