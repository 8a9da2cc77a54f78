package mock

import "github.com/inkfold/pagemark"

var _ pagemark.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagemark.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*pagemark.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*pagemark.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ pagemark.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagemark.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ pagemark.PDFConverter = (*PDFConverter)(nil)

// PDFConverter is a mock implementation of pagemark.PDFConverter.
type PDFConverter struct {
	ConvertFn func(pdf []byte) (string, error)
}

func (c *PDFConverter) Convert(pdf []byte) (string, error) {
	return c.ConvertFn(pdf)
}
