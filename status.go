package ghostwriter

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Load, Save and Sign. Each is wrapped together with the
// underlying package error, so errors.Is matches either.
var (
	ErrNotFound            = errors.New("ghostwriter: file not found")
	ErrRead                = errors.New("ghostwriter: read failed")
	ErrUnsupportedEncoding = errors.New("ghostwriter: unsupported encoding")
	ErrUnsupportedFormat   = errors.New("ghostwriter: unsupported format")
	ErrDecode              = errors.New("ghostwriter: decode failed")
	ErrEmptyInput          = errors.New("ghostwriter: empty input")
	ErrWrite               = errors.New("ghostwriter: write failed")
	ErrInvalidPath         = errors.New("ghostwriter: invalid path")
)

// Severity ranks a Status.
type Severity int

const (
	// SeverityInfo marks a notable but expected event.
	SeverityInfo Severity = iota
	// SeverityWarning marks a load that succeeded with losses or guesses.
	SeverityWarning
	// SeverityError marks a failed operation.
	SeverityError
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Status is a message about a load, save or sign operation, meant for the
// user.
type Status struct {
	Severity Severity
	Message  string
	Path     string
}

// String formats the status as "severity: path: message".
func (s Status) String() string {
	if s.Path == "" {
		return s.Severity.String() + ": " + s.Message
	}
	return s.Severity.String() + ": " + s.Path + ": " + s.Message
}

// FormatStatuses returns one status per line.
func FormatStatuses(statuses []Status) string {
	lines := make([]string, len(statuses))
	for i, s := range statuses {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any status is an error.
func HasErrors(statuses []Status) bool {
	for _, s := range statuses {
		if s.Severity == SeverityError {
			return true
		}
	}
	return false
}
