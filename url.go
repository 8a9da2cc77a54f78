package pagemark

import (
	"net/url"
	"strings"
)

// ResolveURL validates a raw input string and normalizes it into an
// absolute http(s) URL.
//
// A single level of percent-encoding is tolerated, which supports callers
// that pass the whole target URL as a path segment (e.g.
// "https%3A%2F%2Fexample.com"). Doubly-encoded input, relative URLs and
// anything else that fails to parse after one decode attempt is rejected
// with EINVALID.
func ResolveURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", Errorf(EINVALID, "target URL required")
	}

	if u, ok := parseAbsolute(trimmed); ok {
		return u, nil
	}

	// One decode pass, then one retry. No further attempts.
	if decoded, err := url.PathUnescape(trimmed); err == nil {
		if u, ok := parseAbsolute(decoded); ok {
			return u, nil
		}
	}

	return "", Errorf(EINVALID, "invalid target URL %q", raw)
}

// parseAbsolute reports whether s is a well-formed absolute http(s) URL and
// returns its normalized form.
func parseAbsolute(s string) (string, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	return u.String(), true
}
