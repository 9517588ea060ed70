// Package genlog appends generation runs to a rotated audit log file.
package genlog

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOpts describes the audit logger options.
type LoggerOpts struct {
	// Filename is the name of the log file.
	Filename string
	// MaxSize is the maximum size in megabytes of the log file
	// before it gets rotated.
	MaxSize int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int
}

// Logger records generation runs. It decorates log.Logger with rotation of
// the underlying file and is safe for concurrent use.
type Logger struct {
	// Embedded logger, the functionality of which will be extended.
	*log.Logger
	// ljLogger is an io.WriteCloser that writes to the specified file.
	// Used to add logrotate functionality to log.Logger.
	ljLogger *lumberjack.Logger
}

// NewLogger creates a new audit logger writing to opts.Filename.
func NewLogger(opts *LoggerOpts) *Logger {
	ljLogger := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   false,
		LocalTime:  true,
	}
	return &Logger{Logger: log.New(ljLogger, "", log.Flags()), ljLogger: ljLogger}
}

// NewCustomLogger creates a new logger object with a custom writer, prefix
// and flags. Rotation does not work in this case. Such a logger is widely
// used in tests.
func NewCustomLogger(writer io.Writer, prefix string, flags int) *Logger {
	return &Logger{Logger: log.New(writer, prefix, flags), ljLogger: nil}
}

// Rotate causes the Logger to close the existing log file and immediately
// create a new one.
func (logger *Logger) Rotate() error {
	if logger.ljLogger == nil {
		return nil
	}

	return logger.ljLogger.Rotate()
}

// Close implements io.Closer, and closes the current log file.
func (logger *Logger) Close() error {
	if logger.ljLogger == nil {
		return nil
	}

	return logger.ljLogger.Close()
}
