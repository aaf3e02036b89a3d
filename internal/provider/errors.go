// README: Common error taxonomy for external provider failures.
package provider

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure and decides the caller's reaction:
// retry with backoff, surface to the user, or attempt a local repair.
type Kind int

const (
	// KindUnavailable means the provider was unreachable or overloaded.
	KindUnavailable Kind = iota
	// KindInvalidRequest means the outbound request itself was rejected.
	KindInvalidRequest
	// KindRateLimited means the provider applied backpressure.
	KindRateLimited
	// KindMalformedResponse means the provider answered with an unparseable
	// or inconsistent structure.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindInvalidRequest:
		return "invalid_request"
	case KindRateLimited:
		return "rate_limited"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Error wraps a provider failure with its classification and the operation
// that produced it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a classified provider error.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the classification from err, defaulting to Unavailable for
// unclassified failures (the safest reaction is retry-then-degrade).
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnavailable
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// Retryable reports whether a failure of this kind may be retried.
// Semantic failures never are.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindUnavailable, KindRateLimited:
		return true
	default:
		return false
	}
}
