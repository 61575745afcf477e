package cloudview

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type DefaultLogger struct {
	mu      sync.Mutex
	debug   bool
	prefix  string
	session string
	out     *log.Logger
	err     *log.Logger
	tags    map[string]string
}

// NewDefaultLogger logs INFO and DEBUG to stdout, WARN and ERROR to stderr.
// Every line carries the prefix and a short id that is unique per process run.
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newLogger(prefix, debug, os.Stdout, os.Stderr)
}

func newLogger(prefix string, debug bool, stdout, stderr io.Writer) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:   debug,
		prefix:  prefix,
		session: uuid.NewString()[:8],
		out:     log.New(stdout, "", flags),
		err:     log.New(stderr, "", flags),
		tags:    levelTags(termenv.NewOutput(stderr)),
	}
}

func levelTags(out *termenv.Output) map[string]string {
	color := func(level, c string) string {
		return out.String(level).Foreground(out.Color(c)).String()
	}
	return map[string]string{
		"DEBUG": color("DEBUG", "8"),
		"INFO":  color("INFO", "4"),
		"WARN":  color("WARN", "3"),
		"ERROR": color("ERROR", "1"),
	}
}

// Session returns the run id printed in every line.
func (l *DefaultLogger) Session() string {
	return l.session
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	tag := l.tags[level]
	if tag == "" {
		tag = level
	}
	if l.prefix != "" {
		return fmt.Sprintf("[%s %s] %s: %s", l.prefix, l.session, tag, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("[%s] %s: %s", l.session, tag, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

type nopLogger struct{}

func NewNopLogger() Logger                                 { return &nopLogger{} }
func (n *nopLogger) DebugEnabled() bool                    { return false }
func (n *nopLogger) SetDebug(enabled bool)                 {}
func (n *nopLogger) Debugf(format string, args ...any)     {}
func (n *nopLogger) Infof(format string, args ...any)      {}
func (n *nopLogger) Warnf(format string, args ...any)      {}
func (n *nopLogger) Errorf(format string, args ...any)     {}
