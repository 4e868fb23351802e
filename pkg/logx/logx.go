package logx

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls how the global logger is built.
type Options struct {
	// Production switches to JSON output.
	Production bool
	Level      zerolog.Level
	// Output defaults to stderr.
	Output io.Writer
}

var DefaultOptions = Options{Level: zerolog.DebugLevel}

// Init replaces the global logger.
func Init(opts ...Options) {
	o := DefaultOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	out := o.Output
	if out == nil {
		out = os.Stderr
	}

	if o.Production {
		log.Logger = zerolog.New(out).With().Timestamp().Logger().Level(o.Level)
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).
		With().Timestamp().Caller().Logger().
		Level(o.Level)
}

// Discard silences the global logger, mostly for tests.
func Discard() {
	log.Logger = zerolog.Nop()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Info() *zerolog.Event {
	return log.Info()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}
