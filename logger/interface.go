package logger

// Logger is the logging facade used by the adapter. Nothing in the adapter's behavior
// depends on what is logged.
type Logger interface {
	// Debugf logs verbose diagnostics, emitted only when glog verbosity is raised.
	Debugf(msg string, args ...any)

	// Infof logs at info level.
	Infof(msg string, args ...any)

	// Warnf logs at warning level.
	Warnf(msg string, args ...any)

	// Errorf logs at error level.
	Errorf(msg string, args ...any)

	// Fatalf logs at fatal level and terminates the program execution.
	Fatalf(msg string, args ...any)
}
