package transport

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// RateLimitKind distinguishes the two GitHub rate-limit signals. Primary
// limits are quota exhaustion and resolve by waiting; secondary limits are
// abuse detection and do not.
type RateLimitKind int

const (
	RateLimitNone RateLimitKind = iota
	RateLimitPrimary
	RateLimitSecondary
)

// Error represents an API transport error with additional context.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	RateLimit  RateLimitKind

	// RetryAfter is the server-suggested wait before retrying a primary
	// rate limit. Zero when the server gave no hint.
	RetryAfter time.Duration
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("github: %s: %s (status: %d)", e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.RateLimit == t.RateLimit
}

// IsPrimaryRateLimit reports whether the error is a primary rate limit.
func (e *Error) IsPrimaryRateLimit() bool {
	return e.Type == ErrTypeRateLimit && e.RateLimit == RateLimitPrimary
}

// IsSecondaryRateLimit reports whether the error is a secondary rate limit.
func (e *Error) IsSecondaryRateLimit() bool {
	return e.Type == ErrTypeRateLimit && e.RateLimit == RateLimitSecondary
}
