// Package rod implements pagemark.Fetcher using headless Chrome browser
// automation via go-rod.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/inkfold/pagemark"
)

// DefaultNavTimeout is the default navigation timeout. The wait policy is
// "DOM constructed" rather than "all resources loaded", trading
// completeness for latency.
const DefaultNavTimeout = 15 * time.Second

// defaultUserAgent replaces Chrome's headless identity string before
// navigation. Headless Chrome reports "HeadlessChrome/<version>", which
// trips trivial bot detection.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Ensure Fetcher implements pagemark.Fetcher at compile time.
var _ pagemark.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in an isolated headless Chrome process launched
// per request. Each request pays full browser startup cost in exchange for
// hard isolation: no page state or cookies survive between requests.
//
// Fetcher is safe for concurrent use; concurrent fetches drive independent
// browser processes.
type Fetcher struct {
	timeout   time.Duration
	bin       string
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithNavTimeout sets the navigation timeout.
// Defaults to DefaultNavTimeout (15s) if not specified.
func WithNavTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithBrowserBin overrides the browser executable location. When empty,
// rod's launcher finds or downloads a suitable Chromium.
func WithBrowserBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// WithUserAgent overrides the user agent reported during navigation.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultNavTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch launches a browser, navigates to the URL, waits for the DOM to be
// constructed and returns the serialized document markup. The browser
// process is torn down on every exit path; on timeout it is force-killed
// rather than waited on.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before paying browser-launch cost.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	lnchr := launcher.New().
		Headless(true).
		Leakless(true).
		NoSandbox(true). // required for containerized execution
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor")
	if f.bin != "" {
		lnchr = lnchr.Bin(f.bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return "", fmt.Errorf("connecting to browser: %w", err)
	}

	// Unconditional teardown: the browser is a heavyweight OS process and
	// must not outlive the request. Kill covers the case where the context
	// deadline has already passed and a graceful Close cannot complete.
	defer func() {
		_ = browser.Close()
		lnchr.Kill()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: f.userAgent,
	}); err != nil {
		return "", err
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	wait()

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases resources held across requests. The per-request launch
// model holds none, so this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
