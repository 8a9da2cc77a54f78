package pipeline_test

import (
	"context"
	"testing"

	"github.com/inkfold/pagemark"
	"github.com/inkfold/pagemark/mock"
	"github.com/inkfold/pagemark/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Service implements pagemark.ConvertService at compile time.
var _ pagemark.ConvertService = (*pipeline.Service)(nil)

func TestService_Convert(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid URL before acquisition", func(t *testing.T) {
		t.Parallel()

		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					t.Error("acquirer must not run for invalid input")
					return nil, nil
				},
			},
		}

		_, err := svc.Convert(context.Background(), "not a url")

		require.Error(t, err)
		assert.Equal(t, pagemark.EINVALID, pagemark.ErrorCode(err))
	})

	t.Run("dispatches PDF content to the PDF converter", func(t *testing.T) {
		t.Parallel()

		var gotPDF []byte
		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					return &pagemark.Content{Kind: pagemark.KindPDF, PDF: []byte("%PDF")}, nil
				},
			},
			PDF: &mock.PDFConverter{
				ConvertFn: func(pdf []byte) (string, error) {
					gotPDF = pdf
					return "# Page 1\n\nIntro", nil
				},
			},
		}

		md, err := svc.Convert(context.Background(), "https://example.com/doc.pdf")

		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF"), gotPDF)
		assert.Equal(t, "# Page 1\n\nIntro\n", md, "result should be newline-terminated")
	})

	t.Run("dispatches HTML content to the HTML transformer", func(t *testing.T) {
		t.Parallel()

		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					return &pagemark.Content{Kind: pagemark.KindHTML, HTML: "<p>hi</p>"}, nil
				},
			},
			HTML: &pipeline.HTMLTransformer{
				Converter: &mock.Converter{
					ConvertFn: func(html string) (string, error) {
						return "hi", nil
					},
				},
			},
		}

		md, err := svc.Convert(context.Background(), "https://example.com")

		require.NoError(t, err)
		assert.Equal(t, "hi\n", md)
	})

	t.Run("propagates acquisition failure", func(t *testing.T) {
		t.Parallel()

		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					return nil, pagemark.Errorf(pagemark.EUNAVAILABLE, "could not acquire")
				},
			},
		}

		_, err := svc.Convert(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Equal(t, pagemark.EUNAVAILABLE, pagemark.ErrorCode(err))
	})

	t.Run("propagates PDF transform failure distinctly", func(t *testing.T) {
		t.Parallel()

		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					return &pagemark.Content{Kind: pagemark.KindPDF, PDF: []byte("junk")}, nil
				},
			},
			PDF: &mock.PDFConverter{
				ConvertFn: func(pdf []byte) (string, error) {
					return "", pagemark.Errorf(pagemark.EUNPROCESSABLE, "cannot open PDF")
				},
			},
		}

		_, err := svc.Convert(context.Background(), "https://example.com/doc.pdf")

		require.Error(t, err)
		assert.Equal(t, pagemark.EUNPROCESSABLE, pagemark.ErrorCode(err))
	})

	t.Run("accepts a percent-encoded target", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		svc := &pipeline.Service{
			Acquirer: &mock.Acquirer{
				AcquireFn: func(ctx context.Context, url string) (*pagemark.Content, error) {
					gotURL = url
					return &pagemark.Content{Kind: pagemark.KindHTML, HTML: "<p>ok</p>"}, nil
				},
			},
			HTML: &pipeline.HTMLTransformer{
				Converter: &mock.Converter{
					ConvertFn: func(html string) (string, error) { return "ok", nil },
				},
			},
		}

		_, err := svc.Convert(context.Background(), "https%3A%2F%2Fexample.com%2Farticle")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/article", gotURL)
	})
}
