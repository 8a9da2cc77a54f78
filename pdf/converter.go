// Package pdf implements pagemark.PDFConverter via pure-Go text-layer
// extraction. Only the embedded text layer is read; scanned (image-only)
// PDFs require OCR and are not handled.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/inkfold/pagemark"
	"github.com/ledongthuc/pdf"
)

// Ensure Converter implements pagemark.PDFConverter at compile time.
var _ pagemark.PDFConverter = (*Converter)(nil)

// Converter converts PDF document bytes to Markdown, one "# Page <n>"
// section per page in page order. No layout reconstruction, no image or
// table handling; text-stream order only.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert extracts the text of each page in order. It fails with
// EUNPROCESSABLE when the document cannot be opened at all; page-level
// extraction failures degrade to an empty page body.
func (c *Converter) Convert(raw []byte) (md string, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = pagemark.Errorf(pagemark.EUNPROCESSABLE, "cannot parse PDF: %v", r)
		}
	}()

	if len(raw) == 0 {
		return "", pagemark.Errorf(pagemark.EUNPROCESSABLE, "empty PDF document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", pagemark.Errorf(pagemark.EUNPROCESSABLE, "cannot open PDF: %s", err)
	}

	parts := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		var sb strings.Builder
		fmt.Fprintf(&sb, "# Page %d\n\n", i)
		sb.WriteString(pageText(reader.Page(i)))
		parts = append(parts, strings.TrimRight(sb.String(), "\n"))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

// pageText extracts the text layer of one page, preserving the row breaks
// emitted by the source layout.
func pageText(p pdf.Page) string {
	if p.V.IsNull() {
		return ""
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, row := range rows {
		for _, txt := range row.Content {
			sb.WriteString(txt.S)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
