package logger

import (
	"fmt"
	"io"
	"log/slog"
)

type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	l *slog.Logger
}

// New returns a Logger writing text records to w. Info records are dropped when quiet is set.
func New(w io.Writer, quiet bool) Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &slogLogger{l: slog.New(h)}
}

func (s *slogLogger) Infof(format string, v ...any)  { s.l.Info(fmt.Sprintf(format, v...)) }
func (s *slogLogger) Errorf(format string, v ...any) { s.l.Error(fmt.Sprintf(format, v...)) }
func (s *slogLogger) With(args ...any) Logger        { return &slogLogger{l: s.l.With(args...)} }
