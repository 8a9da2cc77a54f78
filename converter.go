package pagemark

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}

// PDFConverter converts raw PDF document bytes to Markdown.
type PDFConverter interface {
	// Convert extracts the text layer of each page in order, prefixed with
	// a "# Page <n>" heading. It fails with EUNPROCESSABLE when the
	// document cannot be opened at all.
	Convert(pdf []byte) (string, error)
}
