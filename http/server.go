package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/inkfold/pagemark"
)

// ShutdownTimeout bounds how long Close waits for in-flight conversions.
const ShutdownTimeout = 10 * time.Second

// Server is the HTTP transport for the conversion service. It is a thin
// shim: it parses the two entry shapes (target URL embedded in the request
// path, target URL in a JSON body), applies per-client admission control,
// and maps application error codes to HTTP status codes.
type Server struct {
	ln     net.Listener
	server *http.Server

	// Addr is the bind address, set before calling Open.
	Addr string

	Service pagemark.ConvertService
	Limiter pagemark.Limiter
	Logger  *slog.Logger
}

// NewServer creates a Server with routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		Logger: slog.Default(),
	}
	s.server.Handler = http.HandlerFunc(s.serveHTTP)
	return s
}

// Open begins listening on Addr and serves requests in a background
// goroutine until Close is called.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() { _ = s.server.Serve(s.ln) }()
	return nil
}

// Close gracefully shuts the server down, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the base URL the server is listening on. Only valid after
// Open has been called; used primarily by tests.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// convertRequest is the JSON body accepted by POST /convert.
type convertRequest struct {
	URL string `json:"url"`
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	requestID := uuid.New().String()
	logger := s.Logger.With("request_id", requestID, "method", r.Method, "path", r.URL.Path)

	clientID := clientID(r)

	if s.Limiter != nil {
		if d := s.Limiter.Admit(clientID); !d.Allowed {
			retry := int(d.RetryAfter / time.Second)
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			s.writeError(w, logger, pagemark.Errorf(pagemark.ETOOMANYREQUESTS,
				"rate limit exceeded, retry in %ds", retry))
			return
		}
	}

	rawURL, err := targetURL(r)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	markdown, err := s.Service.Convert(r.Context(), rawURL)
	if err != nil {
		s.writeError(w, logger, err)
		return
	}

	etag := fmt.Sprintf("%q", strconv.FormatUint(xxhash.Sum64String(markdown), 16))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = w.Write([]byte(markdown))

	logger.Info("convert", "client", clientID, "bytes", len(markdown), "duration", time.Since(begin))
}

// targetURL extracts the raw target URL from one of the two entry shapes.
// The path shape is read from the escaped path so that a percent-encoded
// target survives intact for the resolver's single decode pass.
func targetURL(r *http.Request) (string, error) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/convert":
		var req convertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", pagemark.Errorf(pagemark.EINVALID, "invalid request body: %s", err)
		}
		return req.URL, nil

	case r.Method == http.MethodGet:
		return strings.TrimPrefix(r.URL.EscapedPath(), "/"), nil

	default:
		return "", pagemark.Errorf(pagemark.EINVALID, "unsupported method %s", r.Method)
	}
}

// clientID identifies the client for rate limiting by its source address.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps an application error to an HTTP response.
func (s *Server) writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	code, message := pagemark.ErrorCode(err), pagemark.ErrorMessage(err)
	status := errorStatusCode(code)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "code", code, "err", err)
	} else {
		logger.Info("request rejected", "code", code, "message", message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	pagemark.EINVALID:         http.StatusBadRequest,
	pagemark.ENOTFOUND:        http.StatusNotFound,
	pagemark.ETOOMANYREQUESTS: http.StatusTooManyRequests,
	pagemark.EUNPROCESSABLE:   http.StatusUnprocessableEntity,
	pagemark.EUNAVAILABLE:     http.StatusBadGateway,
	pagemark.EINTERNAL:        http.StatusInternalServerError,
}

// errorStatusCode returns the HTTP status for an application error code.
func errorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}
