package pipeline

import (
	"context"
	"strings"

	"github.com/inkfold/pagemark"
)

// Ensure Service implements pagemark.ConvertService at compile time.
var _ pagemark.ConvertService = (*Service)(nil)

// Service sequences resolver, acquirer and the transformer matching the
// acquired content's kind. The first failure from the resolver or the
// acquirer surfaces unchanged.
type Service struct {
	Acquirer pagemark.Acquirer
	HTML     *HTMLTransformer
	PDF      pagemark.PDFConverter
}

// Convert turns a raw URL into a newline-terminated Markdown string.
func (s *Service) Convert(ctx context.Context, rawURL string) (string, error) {
	target, err := pagemark.ResolveURL(rawURL)
	if err != nil {
		return "", err
	}

	content, err := s.Acquirer.Acquire(ctx, target)
	if err != nil {
		return "", err
	}

	var md string
	switch content.Kind {
	case pagemark.KindPDF:
		if md, err = s.PDF.Convert(content.PDF); err != nil {
			return "", err
		}
	case pagemark.KindHTML:
		md = s.HTML.Transform(content.HTML)
	default:
		return "", pagemark.Errorf(pagemark.EINTERNAL, "unhandled content kind %q", content.Kind)
	}

	if !strings.HasSuffix(md, "\n") {
		md += "\n"
	}
	return md, nil
}
