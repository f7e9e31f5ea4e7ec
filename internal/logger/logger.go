package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Output is plain JSON unless pretty is set,
// in which case the console writer is used (local development).
func New(pretty bool) zerolog.Logger {
	if pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
