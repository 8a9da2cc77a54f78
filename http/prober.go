// Package http provides the network-facing edges of pagemark: the PDF
// content probe used to select an acquisition strategy, and the HTTP
// transport that exposes the conversion service.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/inkfold/pagemark"
)

// DefaultProbeTimeout is the default timeout for the probe request. The
// probe runs before every browser launch, so it is kept short.
const DefaultProbeTimeout = 5 * time.Second

// maxPDFBytes caps how much of a probed body is read into memory.
const maxPDFBytes = 64 << 20 // 64 MiB

// Ensure Prober implements pagemark.Prober at compile time.
var _ pagemark.Prober = (*Prober)(nil)

// Prober issues a direct GET to decide whether a URL serves a PDF document
// before the expensive browser path is attempted.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// ProberOption configures a Prober.
type ProberOption func(*Prober)

// WithProbeTimeout sets the timeout for probe requests.
// Defaults to DefaultProbeTimeout (5s) if not specified.
func WithProbeTimeout(d time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = d
	}
}

// NewProber creates a new Prober.
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = &http.Client{
		Timeout: p.timeout,
	}

	return p
}

// Probe fetches the URL and inspects the response content type. When the
// URL serves a PDF it returns the full body and ok=true. Non-PDF responses
// return ok=false with a nil error. Callers must treat any returned error
// as "not a PDF"; the probe never decides the fate of the overall request.
func (p *Prober) Probe(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	if !isPDF(resp.Header.Get("Content-Type")) {
		return nil, false, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, false, err
	}

	return body, true, nil
}

// isPDF reports whether a Content-Type header value names a PDF media
// type. Matching is case-insensitive and ignores parameters.
func isPDF(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/pdf", "application/x-pdf":
		return true
	}
	return false
}
