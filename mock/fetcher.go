package mock

import (
	"context"

	"github.com/inkfold/pagemark"
)

var _ pagemark.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pagemark.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ pagemark.Prober = (*Prober)(nil)

// Prober is a mock implementation of pagemark.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) ([]byte, bool, error)
}

func (p *Prober) Probe(ctx context.Context, url string) ([]byte, bool, error) {
	return p.ProbeFn(ctx, url)
}

var _ pagemark.Acquirer = (*Acquirer)(nil)

// Acquirer is a mock implementation of pagemark.Acquirer.
type Acquirer struct {
	AcquireFn func(ctx context.Context, url string) (*pagemark.Content, error)
}

func (a *Acquirer) Acquire(ctx context.Context, url string) (*pagemark.Content, error) {
	return a.AcquireFn(ctx, url)
}
