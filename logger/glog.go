package logger

import (
	"github.com/golang/glog"
)

// debugVerbosity is the glog -v level at which Debugf output is emitted.
const debugVerbosity glog.Level = 2

// GlogLogger implements the Logger interface for logging using the glog library with configurable call depth.
type GlogLogger struct {
	depth int
}

// Debugf logs a debug-level message with the specified format and arguments.
func (logger *GlogLogger) Debugf(msg string, args ...any) {
	if glog.V(debugVerbosity) {
		glog.InfoDepthf(logger.depth, msg, args...)
	}
}

// Infof logs an informational-level message with the specified format and optional arguments.
func (logger *GlogLogger) Infof(msg string, args ...any) {
	glog.InfoDepthf(logger.depth, msg, args...)
}

// Warnf logs a warning-level message with the specified format and arguments.
func (logger *GlogLogger) Warnf(msg string, args ...any) {
	glog.WarningDepthf(logger.depth, msg, args...)
}

// Errorf logs an error-level message with the specified format and arguments.
func (logger *GlogLogger) Errorf(msg string, args ...any) {
	glog.ErrorDepthf(logger.depth, msg, args...)
}

// Fatalf logs a fatal-level message with the specified format and arguments, then exits the application.
func (logger *GlogLogger) Fatalf(msg string, args ...any) {
	glog.FatalDepthf(logger.depth, msg, args...)
}

// NewGlogLogger returns a glog backed Logger. The depth skips the package level helpers so
// glog reports the caller's file and line.
func NewGlogLogger() Logger {
	return &GlogLogger{
		depth: 2,
	}
}
