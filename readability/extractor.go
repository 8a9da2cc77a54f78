// Package readability implements pagemark.Extractor using Mozilla's
// readability heuristics as ported by go-shiori.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/inkfold/pagemark"
)

// Ensure Extractor implements pagemark.Extractor at compile time.
var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main article content from
// HTML, discarding navigation, ads and boilerplate.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(article.Content) == "" {
		return nil, pagemark.Errorf(pagemark.ENOTFOUND, "no readable content identified")
	}

	return &pagemark.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
