// Package logging provides a synchronized leveled logger for output shared
// between concurrent scan workers.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Logger is safe for use from multiple goroutines. Debug messages are
// dropped unless enabled.
type Logger struct {
	mu    sync.Mutex
	l     *log.Logger
	debug bool
}

// New creates a logger writing to w.
func New(w io.Writer, debug bool) *Logger {
	return &Logger{
		l:     log.New(w, "", log.Ldate|log.Ltime),
		debug: debug,
	}
}

// Debugf writes a debug message when debug output is enabled.
func (lg *Logger) Debugf(format string, args ...any) {
	if !lg.debug {
		return
	}
	lg.logf("DEBUG", format, args...)
}

// Infof writes an informational message.
func (lg *Logger) Infof(format string, args ...any) {
	lg.logf("INFO ", format, args...)
}

// Warnf writes a warning message.
func (lg *Logger) Warnf(format string, args ...any) {
	lg.logf("WARN ", format, args...)
}

func (lg *Logger) logf(level, format string, args ...any) {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	lg.l.Printf("%s %s", level, fmt.Sprintf(format, args...))
}
