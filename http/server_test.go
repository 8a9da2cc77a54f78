package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/inkfold/pagemark"
	pmhttp "github.com/inkfold/pagemark/http"
	"github.com/inkfold/pagemark/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts a Server on an ephemeral port and returns it along
// with a cleanup registration.
func newTestServer(t *testing.T, service pagemark.ConvertService, limiter pagemark.Limiter) *pmhttp.Server {
	t.Helper()

	srv := pmhttp.NewServer()
	srv.Addr = "127.0.0.1:0"
	srv.Service = service
	srv.Limiter = limiter

	require.NoError(t, srv.Open())
	t.Cleanup(func() { _ = srv.Close() })

	return srv
}

func TestServer_PathEntry(t *testing.T) {
	t.Parallel()

	var gotRawURL string
	service := &mock.ConvertService{
		ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
			gotRawURL = rawURL
			return "Hello world\n", nil
		},
	}

	srv := newTestServer(t, service, nil)

	resp, err := http.Get(srv.URL() + "/https%3A%2F%2Fexample.com%2Farticle")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.Equal(t, "Hello world\n", string(body))

	// The encoded target must reach the service intact; the resolver owns
	// the single decode pass.
	assert.Equal(t, "https%3A%2F%2Fexample.com%2Farticle", gotRawURL)
}

func TestServer_BodyEntry(t *testing.T) {
	t.Parallel()

	var gotRawURL string
	service := &mock.ConvertService{
		ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
			gotRawURL = rawURL
			return "# Page\n", nil
		},
	}

	srv := newTestServer(t, service, nil)

	resp, err := http.Post(srv.URL()+"/convert", "application/json",
		strings.NewReader(`{"url":"https://example.com/article"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.com/article", gotRawURL)
}

func TestServer_InvalidBody(t *testing.T) {
	t.Parallel()

	service := &mock.ConvertService{
		ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
			t.Error("service should not be called")
			return "", nil
		},
	}

	srv := newTestServer(t, service, nil)

	resp, err := http.Post(srv.URL()+"/convert", "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_RateLimited(t *testing.T) {
	t.Parallel()

	service := &mock.ConvertService{
		ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
			t.Error("service should not be called when denied")
			return "", nil
		},
	}
	limiter := &mock.Limiter{
		AdmitFn: func(clientID string) pagemark.Decision {
			return pagemark.Decision{Allowed: false, RetryAfter: 42 * time.Second}
		},
	}

	srv := newTestServer(t, service, limiter)

	resp, err := http.Get(srv.URL() + "/https%3A%2F%2Fexample.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "42", resp.Header.Get("Retry-After"))

	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload.Error, "rate limit")
}

func TestServer_ErrorStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", pagemark.Errorf(pagemark.EINVALID, "bad url"), http.StatusBadRequest},
		{"acquisition failure", pagemark.Errorf(pagemark.EUNAVAILABLE, "both paths failed"), http.StatusBadGateway},
		{"transform failure", pagemark.Errorf(pagemark.EUNPROCESSABLE, "bad pdf"), http.StatusUnprocessableEntity},
		{"internal failure", pagemark.Errorf(pagemark.EINTERNAL, "boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service := &mock.ConvertService{
				ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
					return "", tt.err
				},
			}

			srv := newTestServer(t, service, nil)

			resp, err := http.Get(srv.URL() + "/https%3A%2F%2Fexample.com")
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestServer_ETagRoundTrip(t *testing.T) {
	t.Parallel()

	service := &mock.ConvertService{
		ConvertFn: func(ctx context.Context, rawURL string) (string, error) {
			return "stable content\n", nil
		},
	}

	srv := newTestServer(t, service, nil)

	resp, err := http.Get(srv.URL() + "/https%3A%2F%2Fexample.com")
	require.NoError(t, err)
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, srv.URL()+"/https%3A%2F%2Fexample.com", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)

	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
}
