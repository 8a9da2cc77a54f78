package pagemark

import "context"

// ContentKind discriminates the variants of Content.
type ContentKind int

// Content variants. Every acquired resource is exactly one of these.
const (
	KindHTML ContentKind = iota + 1
	KindPDF
)

// String returns a human-readable name for the kind, used in logging.
func (k ContentKind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Content is the tagged union produced by an Acquirer. Exactly one of the
// payload fields is populated, selected by Kind: HTML markup for KindHTML,
// raw document bytes for KindPDF. It is consumed exactly once by the
// transformer matching its kind.
type Content struct {
	Kind ContentKind

	// HTML holds the fully serialized document markup when Kind is KindHTML.
	HTML string

	// PDF holds the raw document bytes when Kind is KindPDF.
	PDF []byte
}

// Acquirer retrieves the raw content behind a validated URL, deciding
// between the PDF and HTML acquisition strategies.
type Acquirer interface {
	// Acquire probes the URL for a PDF first and falls back to a browser
	// render. It fails with EUNAVAILABLE when neither path succeeds.
	Acquire(ctx context.Context, url string) (*Content, error)
}
