// Package logging builds the zerolog logger shared by inkwell commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Builder assembles a zerolog.Logger.
type Builder struct {
	writer  io.Writer
	level   string
	console bool
}

// New returns a builder writing JSON to stderr at warn level.
func New() *Builder {
	return &Builder{writer: os.Stderr, level: "warn"}
}

// FromWriter sets the output.
func (b *Builder) FromWriter(w io.Writer) *Builder {
	b.writer = w
	return b
}

// WithLevel sets the minimum level by name: debug, info, warn or error.
// An empty name keeps the current level.
func (b *Builder) WithLevel(level string) *Builder {
	if level != "" {
		b.level = level
	}
	return b
}

// Console switches to zerolog's human-readable console format.
func (b *Builder) Console(on bool) *Builder {
	b.console = on
	return b
}

// Make builds the logger.
func (b *Builder) Make() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(b.level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", b.level, err)
	}
	w := b.writer
	if b.console {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
