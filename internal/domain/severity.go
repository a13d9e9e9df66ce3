package domain

import "strings"

// Severity classifies a diagnostic. The zero value is SeverityUnknown so
// that a diagnostic whose level was never parsed fails closed.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityHelp
	SeverityNote
	SeverityInfo
	SeverityWarning
	SeverityError
)

// ParseSeverity maps an engine level string to a Severity. Unrecognized
// levels (including future additions to the engine) map to SeverityUnknown,
// which downstream reporting treats as an error.
func ParseSeverity(level string) Severity {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "help":
		return SeverityHelp
	case "note":
		return SeverityNote
	case "info":
		return SeverityInfo
	case "warning":
		return SeverityWarning
	case "error":
		return SeverityError
	default:
		return SeverityUnknown
	}
}

// String returns a human-readable name for the severity.
func (s Severity) String() string {
	switch s {
	case SeverityHelp:
		return "help"
	case SeverityNote:
		return "note"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}
