package planner

import (
	"log"
	"os"
)

// Logger receives one line per rule application the driver makes. It is
// constructor-injected rather than a package-level singleton, so two
// planners in the same process never contend over shared log state.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger is the default Logger, backed by the standard library's log
// package the way kai-core/kailab logs request lines (log.Printf to
// stderr with a timestamp prefix).
type stdLogger struct {
	inner *log.Logger
}

// NewStdLogger returns the default Logger, writing to os.Stderr.
func NewStdLogger() Logger {
	return &stdLogger{inner: log.New(os.Stderr, "planner: ", log.LstdFlags)}
}

func (l *stdLogger) Printf(format string, args ...any) { l.inner.Printf(format, args...) }

// nopLogger discards everything; used when the driver is given a nil
// Logger so call sites never need a nil check.
type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

func orNopLogger(l Logger) Logger {
	if l == nil {
		return nopLogger{}
	}
	return l
}
