// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects verbosity and file output.
type Options struct {
	Verbose bool
	Debug   bool

	// File, when set, receives a copy of the log output.
	File string
}

// Level returns the console level for the options: warn, info with Verbose,
// debug with Debug.
func (o Options) Level() zapcore.Level {
	switch {
	case o.Debug:
		return zapcore.DebugLevel
	case o.Verbose:
		return zapcore.InfoLevel
	}
	return zapcore.WarnLevel
}

// New returns a logger writing to w and, if opts.File is set, to that file.
// The returned close func flushes the logger and closes the file.
func New(opts Options, w io.Writer) (*zap.Logger, func() error, error) {
	level := zap.NewAtomicLevelAt(opts.Level())
	encoder := zapcore.NewConsoleEncoder(encoderConfig())

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(w), level),
	}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f

		// File keeps at least info so results are persisted.
		fileLevel := opts.Level()
		if fileLevel > zapcore.InfoLevel {
			fileLevel = zapcore.InfoLevel
		}
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.AddSync(f), fileLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	closeFn := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.CallerKey = ""
	cfg.StacktraceKey = ""
	return cfg
}
