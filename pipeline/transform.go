package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/inkfold/pagemark"
	"golang.org/x/net/html"
)

// HTMLTransformer converts page markup to Markdown. It never fails
// outward: readable-content extraction is best effort with a deterministic
// fallback to the full markup, and serialization failures degrade to plain
// text extraction.
type HTMLTransformer struct {
	// Extractors are tried in order; the first non-error, non-empty
	// fragment wins. An empty chain means the full markup is serialized.
	Extractors []pagemark.Extractor

	Converter pagemark.Converter

	Logger *slog.Logger
}

// Transform converts markup to trimmed Markdown.
func (t *HTMLTransformer) Transform(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	normalized := normalizeMarkup(markup)

	fragment, source := t.extract(normalized)
	t.logger().Debug("content extraction", "source", source, "bytes", len(fragment))

	md, err := t.Converter.Convert(fragment)
	if err != nil {
		t.logger().Info("markdown serialization failed, degrading to plain text", "err", err)
		return plainText(fragment)
	}

	return strings.TrimSpace(md)
}

// extract runs the extractor chain and returns the chosen fragment along
// with the name of its source. The fallback to the full markup is an
// explicit outcome ("raw"), not a swallowed failure.
func (t *HTMLTransformer) extract(markup string) (fragment, source string) {
	for _, ex := range t.Extractors {
		result, err := ex.Extract(markup)
		if err != nil || result == nil || strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}
		return result.ContentHTML, fmt.Sprintf("%T", ex)
	}
	return markup, "raw"
}

func (t *HTMLTransformer) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// normalizeMarkup re-parses markup into a well-formed document, so that
// fragment input (no html/body elements) is still traversable by the
// extractors.
func normalizeMarkup(markup string) string {
	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return markup
	}
	return buf.String()
}

// plainText strips tags as a last resort.
func plainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	return strings.TrimSpace(doc.Text())
}
