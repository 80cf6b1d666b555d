// Package logger provides prefixed, colour-coded loggers, one per application component.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/beka-birhanu/vinom-backrooms/config"
)

var ErrEmptyName = errors.New("logger name is required")

// Logger writes lines of the form "[NAME] [LEVEL] message".
type Logger struct {
	name   string
	colour string
	out    *log.Logger
	mu     sync.Mutex
}

// New creates a logger for the named component writing to w.
// colour is an ANSI escape from the config package and tints the component name.
func New(name, colour string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if w == nil {
		w = io.Discard
	}

	return &Logger{
		name:   name,
		colour: colour,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write(config.ColorGreen, "INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write(config.ColorYellow, "WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write(config.ColorRed, "ERROR", msg)
}

func (l *Logger) write(levelColour, level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prefix := fmt.Sprintf("[%s]", l.name)
	if l.colour != "" {
		prefix = l.colour + prefix + config.ColorReset
		level = levelColour + "[" + level + "]" + config.ColorReset
	} else {
		level = "[" + level + "]"
	}
	l.out.Printf("%s %s %s", prefix, level, msg)
}
