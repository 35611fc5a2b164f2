package sapient

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// newLogger builds the package's zerolog.Logger from Options, defaulting to
// an info-level console writer on stderr when unset.
func newLogger(o *ClientOptions) zerolog.Logger {
	level := zerolog.InfoLevel
	if o.LogLevel != "" {
		if parsed, err := zerolog.ParseLevel(o.LogLevel); err == nil {
			level = parsed
		}
	}

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if o.LogWriter != nil {
		w = o.LogWriter
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "sapient").Logger()
}
