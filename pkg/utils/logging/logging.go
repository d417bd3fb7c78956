// Package logging configures the debug log file written alongside normal command output.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ErrInvalidLevel is returned for an unknown log level.
var ErrInvalidLevel = errors.New("invalid log level")

const (
	logDirPerm  = 0o750
	logFilePerm = 0o600
)

// Logger is a logrus logger with the file it writes to.
type Logger struct {
	*logrus.Logger

	file io.Closer
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	err := l.file.Close()
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	return nil
}

// New returns a logger appending to path at level. An empty path returns a logger that
// discards everything.
func New(path, level string) (*Logger, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if path == "" {
		logger.SetOutput(io.Discard)

		return &Logger{Logger: logger}, nil
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidLevel, level, err)
	}

	logger.SetLevel(parsed)

	err = os.MkdirAll(filepath.Dir(path), logDirPerm)
	if err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	//nolint:gosec // path comes from configuration
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	logger.SetOutput(file)

	return &Logger{Logger: logger, file: file}, nil
}

// Discard returns a logger that writes nothing.
func Discard() *Logger {
	logger, _ := New("", "")

	return logger
}
