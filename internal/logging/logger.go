package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process-wide console logger and installs it as the
// zerolog global.
func NewLogger() zerolog.Logger {
	return newLogger(zerolog.ConsoleWriter{Out: os.Stderr})
}

// NewFileLogger logs to both the console and a size-rotated file.
func NewFileLogger(path string) zerolog.Logger {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return newLogger(io.MultiWriter(zerolog.ConsoleWriter{Out: os.Stderr}, file))
}

func newLogger(w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	log.Logger = logger
	return logger
}
