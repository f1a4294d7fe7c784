package errortypes

import "errors"

// Severity tells callers whether an adapter error stopped work or only degraded it.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityFatal
	SeverityWarning
)

// IsWarning reports whether err, or an error it wraps, carries SeverityWarning.
func IsWarning(err error) bool {
	var c Coder
	return errors.As(err, &c) && c.Severity() == SeverityWarning
}

// FatalOnly filters errs down to the entries that are not warnings. Errors without a Coder
// count as fatal.
func FatalOnly(errs []error) []error {
	fatal := make([]error, 0, len(errs))
	for _, err := range errs {
		if !IsWarning(err) {
			fatal = append(fatal, err)
		}
	}
	return fatal
}
