// Package pipeline orchestrates the conversion of a URL to Markdown:
// URL resolution, dual-path content acquisition, and format-specific
// transformation.
package pipeline

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/inkfold/pagemark"
	"golang.org/x/sync/semaphore"
)

// Ensure Acquirer implements pagemark.Acquirer at compile time.
var _ pagemark.Acquirer = (*Acquirer)(nil)

// Acquirer retrieves raw content using two strategies in fixed order: a
// cheap PDF probe first, a headless browser render second. The strategies
// are mutually exclusive per request. Probing first avoids paying browser
// launch cost for static document links.
type Acquirer struct {
	Prober  pagemark.Prober
	Fetcher pagemark.Fetcher

	// Egress, when set, paces outbound requests per target host.
	Egress pagemark.EgressLimiter

	// Browsers, when set, caps concurrent browser launches. Per-request
	// process isolation is preserved; only admission is serialized.
	Browsers *semaphore.Weighted

	Logger *slog.Logger
}

// Acquire probes the URL for a PDF and falls back to a browser render.
// Probe failures never abort the request; they are logged and the browser
// path proceeds. When both paths fail, the result is EUNAVAILABLE.
func (a *Acquirer) Acquire(ctx context.Context, target string) (*pagemark.Content, error) {
	logger := a.logger()

	if a.Egress != nil {
		if host := hostOf(target); host != "" {
			if err := a.Egress.Wait(ctx, host); err != nil {
				return nil, pagemark.Errorf(pagemark.EUNAVAILABLE, "waiting for host %s: %s", host, err)
			}
		}
	}

	pdfBytes, ok, err := a.Prober.Probe(ctx, target)
	if err != nil {
		logger.Info("pdf probe failed", "url", target, "err", err)
	}
	if ok {
		return &pagemark.Content{Kind: pagemark.KindPDF, PDF: pdfBytes}, nil
	}

	if a.Browsers != nil {
		if err := a.Browsers.Acquire(ctx, 1); err != nil {
			return nil, pagemark.Errorf(pagemark.EUNAVAILABLE, "waiting for browser slot: %s", err)
		}
		defer a.Browsers.Release(1)
	}

	html, err := a.Fetcher.Fetch(ctx, target)
	if err != nil {
		// The browser path was the last resort; the internal cause is
		// logged but a single opaque failure is surfaced.
		logger.Error("browser render failed", "url", target, "err", err)
		return nil, pagemark.Errorf(pagemark.EUNAVAILABLE, "could not acquire %s", target)
	}

	return &pagemark.Content{Kind: pagemark.KindHTML, HTML: html}, nil
}

func (a *Acquirer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// hostOf returns the hostname of a validated URL, or "" when it cannot be
// determined.
func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
