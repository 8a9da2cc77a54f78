package pagemark

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the DOM to be constructed,
	// and returns the serialized document markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held across requests.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Prober performs a preliminary fetch of a URL to decide whether it serves
// a PDF document, before committing to the expensive browser path.
type Prober interface {
	// Probe issues a direct GET and inspects the response content type.
	// When the URL serves a PDF, it returns the full body and ok=true.
	// A non-PDF content type returns ok=false with a nil error; network
	// failures are reported so the caller can log them, but callers must
	// treat any probe error as "not a PDF" rather than aborting.
	Probe(ctx context.Context, url string) (pdf []byte, ok bool, err error)
}
