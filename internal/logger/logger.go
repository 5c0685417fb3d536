// Package logger wraps zerolog with the key/value call style used across qwerty.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

type Logger struct {
	zlog    zerolog.Logger
	file    *os.File
	writers []io.Writer
}

type Option func(*Logger) error

// WithConsole enables human-readable output on stderr. Colors are only used
// when stderr is a terminal.
func WithConsole() Option {
	return func(l *Logger) error {
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(int(os.Stderr.Fd())),
		})
		return nil
	}
}

// WithLevel sets the logging level
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) error {
		l.zlog = l.zlog.Level(level)
		return nil
	}
}

// WithFile appends plain-text log lines to path.
func WithFile(path string) Option {
	return func(l *Logger) error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		l.writers = append(l.writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		return nil
	}
}

// WithWriter sends raw JSON log lines to w.
func WithWriter(w io.Writer) Option {
	return func(l *Logger) error {
		l.writers = append(l.writers, w)
		return nil
	}
}

// New creates a logger with the given options. Without any output option
// the logger writes JSON to stderr.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		zlog: zerolog.New(io.Discard).Level(zerolog.InfoLevel),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Close()
			return nil, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}

	var out io.Writer = os.Stderr
	switch len(l.writers) {
	case 0:
	case 1:
		out = l.writers[0]
	default:
		out = zerolog.MultiLevelWriter(l.writers...)
	}
	l.zlog = l.zlog.Output(out).With().Timestamp().Logger()
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	logFields(l.zlog.Debug(), fields...).Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	logFields(l.zlog.Info(), fields...).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	logFields(l.zlog.Warn(), fields...).Msg(msg)
}

// Error logs msg with err attached. err may be nil.
func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	event := l.zlog.Error()
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...).Msg(msg)
}

// logFields adds alternating key/value pairs to the event. Non-string keys
// and a trailing key without a value are dropped.
func logFields(event *zerolog.Event, fields ...interface{}) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	return event
}
