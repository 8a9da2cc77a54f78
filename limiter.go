package pagemark

import (
	"context"
	"time"
)

// Decision is the outcome of an admission check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// RetryAfter is the time until the client's window resets, rounded up
	// to whole seconds. It is positive whenever Allowed is false.
	RetryAfter time.Duration
}

// Limiter admits or denies requests per client identifier.
type Limiter interface {
	// Admit records a request from the client and decides whether it may
	// proceed under the client's quota.
	Admit(clientID string) Decision
}

// EgressLimiter paces outbound requests per target host so that one busy
// client cannot hammer a single origin.
type EgressLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	// Returns an error if the context is canceled before the wait completes.
	Wait(ctx context.Context, host string) error
}
