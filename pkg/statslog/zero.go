package statslog

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

var Zero = NewZeroLogger(os.Stderr)

// NewZeroLogger returns a console logger writing to out. Colours are
// disabled unless out is a terminal.
func NewZeroLogger(out io.Writer) *zerolog.Logger {
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: noColor}
	logger := zerolog.New(output).With().Timestamp().Logger().Level(zerolog.InfoLevel)

	return &logger
}

func UpdateZeroLogLevel(logLevel string) error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	zeroLogger := Zero.With().Logger().Level(level)
	Zero = &zeroLogger
	return nil
}

// Redirect swaps the output of the package logger, keeping its level.
func Redirect(out io.Writer) {
	level := Zero.GetLevel()
	logger := NewZeroLogger(out).Level(level)
	Zero = &logger
}
