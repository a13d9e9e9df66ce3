package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/eipw-action/internal/adapter/transport"
)

// MapHTTPError maps a GitHub API error response to a typed transport.Error.
// Rate-limited responses are classified as primary or secondary: secondary
// (abuse-detection) limits are recognized by their body message, primary by
// status 429 or a 403 with an exhausted quota header.
func MapHTTPError(statusCode int, header http.Header, body []byte) *transport.Error {
	message := parseErrorMessage(statusCode, body)

	if kind := rateLimitKind(statusCode, header, message); kind != transport.RateLimitNone {
		return &transport.Error{
			Type:       transport.ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			RateLimit:  kind,
			RetryAfter: suggestedDelay(header),
		}
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &transport.Error{
			Type:       transport.ErrTypeAuthentication,
			Message:    message,
			StatusCode: statusCode,
		}

	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return &transport.Error{
			Type:       transport.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: statusCode,
		}

	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return &transport.Error{
			Type:       transport.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: statusCode,
		}

	default:
		return &transport.Error{
			Type:       transport.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
		}
	}
}

// rateLimitKind classifies a response as a primary or secondary rate limit,
// or neither.
func rateLimitKind(statusCode int, header http.Header, message string) transport.RateLimitKind {
	if statusCode != http.StatusForbidden && statusCode != http.StatusTooManyRequests {
		return transport.RateLimitNone
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "secondary rate limit") || strings.Contains(lower, "abuse") {
		return transport.RateLimitSecondary
	}

	if statusCode == http.StatusTooManyRequests {
		return transport.RateLimitPrimary
	}
	if header.Get("X-RateLimit-Remaining") == "0" {
		return transport.RateLimitPrimary
	}
	return transport.RateLimitNone
}

// suggestedDelay extracts the server's suggested wait from Retry-After
// (delta seconds) or X-RateLimit-Reset (epoch seconds). Returns zero when
// neither header is usable.
func suggestedDelay(header http.Header) time.Duration {
	if v := header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	if v := header.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			if wait := time.Until(time.Unix(epoch, 0)); wait > 0 {
				return wait
			}
		}
	}
	return 0
}

// parseErrorMessage extracts a user-friendly error message from GitHub's
// response body.
func parseErrorMessage(statusCode int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
