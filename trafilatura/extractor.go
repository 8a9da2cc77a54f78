// Package trafilatura implements pagemark.Extractor using go-trafilatura,
// which tends to do better than readability heuristics on sparse or
// non-article pages. It serves as the second-chance extractor in the HTML
// transformation chain.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/inkfold/pagemark"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagemark.Extractor at compile time.
var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. An empty
// extraction result is reported as an error so callers fall back to the
// original markup deterministically.
func (e *Extractor) Extract(rawHTML string) (*pagemark.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pagemark.Errorf(pagemark.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	if result.ContentNode == nil {
		return nil, pagemark.Errorf(pagemark.ENOTFOUND, "no readable content identified")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &pagemark.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
