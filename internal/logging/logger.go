package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger defines a minimal, printf-style logging contract.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

type root struct {
	mu    sync.Mutex
	out   io.Writer
	file  *os.File
	level Level
}

var (
	rootInstance *root
	rootOnce     sync.Once
)

func getRoot() *root {
	rootOnce.Do(func() {
		rootInstance = &root{out: os.Stderr, level: LevelInfo}
	})
	return rootInstance
}

// Configure sets the global level and optional log file. Called once from cmd
// after config is loaded; component loggers created before or after share the
// same sink.
func Configure(level Level, filePath string) error {
	r := getRoot()
	r.mu.Lock()
	defer r.mu.Unlock()

	r.level = level
	if filePath != "" {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		if r.file != nil {
			_ = r.file.Close()
		}
		r.file = file
		r.out = io.MultiWriter(os.Stderr, file)
	}
	return nil
}

// Close releases the log file if one was configured.
func Close() error {
	r := getRoot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		r.out = os.Stderr
		return err
	}
	return nil
}

type componentLogger struct {
	root      *root
	component string
}

// NewComponentLogger returns the shared application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	return &componentLogger{root: getRoot(), component: component}
}

func (l *componentLogger) log(level Level, format string, args ...any) {
	l.root.mu.Lock()
	defer l.root.mu.Unlock()
	if level < l.root.level {
		return
	}

	// Format: 2025-09-30 12:34:56 [INFO] [Component] Message
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	if _, err := fmt.Fprintf(l.root.out, "%s [%s] [%s] %s\n", ts, level, l.component, msg); err != nil {
		log.Printf("logging write failed: %v", err)
	}
}

func (l *componentLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }
