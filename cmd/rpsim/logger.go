package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// cliLogger implements calculation.Logger on top of zerolog
type cliLogger struct {
	logger zerolog.Logger
}

func newCLILogger(w io.Writer, verbose bool) cliLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return cliLogger{logger: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

func (l cliLogger) Debugf(format string, args ...any) { l.logger.Debug().Msgf(format, args...) }
func (l cliLogger) Infof(format string, args ...any)  { l.logger.Info().Msgf(format, args...) }
func (l cliLogger) Warnf(format string, args ...any)  { l.logger.Warn().Msgf(format, args...) }
func (l cliLogger) Errorf(format string, args ...any) { l.logger.Error().Msgf(format, args...) }
