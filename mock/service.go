package mock

import (
	"context"

	"github.com/inkfold/pagemark"
)

var _ pagemark.ConvertService = (*ConvertService)(nil)

// ConvertService is a mock implementation of pagemark.ConvertService.
type ConvertService struct {
	ConvertFn func(ctx context.Context, rawURL string) (string, error)
}

func (s *ConvertService) Convert(ctx context.Context, rawURL string) (string, error) {
	return s.ConvertFn(ctx, rawURL)
}

var _ pagemark.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of pagemark.Limiter.
type Limiter struct {
	AdmitFn func(clientID string) pagemark.Decision
}

func (l *Limiter) Admit(clientID string) pagemark.Decision {
	return l.AdmitFn(clientID)
}

var _ pagemark.EgressLimiter = (*EgressLimiter)(nil)

// EgressLimiter is a mock implementation of pagemark.EgressLimiter.
type EgressLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *EgressLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
