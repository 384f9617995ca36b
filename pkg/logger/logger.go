// Package logger owns the process-wide zerolog logger.
//
// main builds Options from configuration and calls Init once; code that
// cannot receive a logger through its constructor uses Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how entries are encoded.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// ParseFormat accepts "json" or "console" in any case. ok is false for
// anything else.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatConsole:
		return f, true
	}
	return "", false
}

type Options struct {
	Level   string
	Format  Format
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu      sync.Mutex
	current *zerolog.Logger
)

// New builds a logger from opts without touching the process-wide one.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Format == FormatConsole {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(ParseLevel(opts.Level)).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	return ctx.Logger()
}

// Init installs the process-wide logger. Later calls are ignored until Reset.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := New(opts)
		zerolog.SetGlobalLevel(l.GetLevel())
		current = &l
	}
	return *current
}

// Get returns the logger installed by Init and panics without one.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		panic("logger: Get called before Init")
	}
	return *current
}

// Reset drops the installed logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// ParseLevel maps a configured level name to zerolog, accepting "warning" as
// an alias. Empty or unknown names give info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
