package ratelimit

import (
	"context"
	"sync"

	"github.com/inkfold/pagemark"
	"golang.org/x/time/rate"
)

var _ pagemark.EgressLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting for outbound fetches using
// token buckets. It creates a separate rate limiter for each target host,
// allowing concurrent requests to different hosts while pacing requests to
// any single origin.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a new HostLimiter with the specified requests per
// second limit. Each host gets its own limiter with a burst of 1 (no
// bursting allowed).
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
