package donorapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient returns the client used for backend calls. A non-empty token wraps the
// transport so every request carries it as a bearer credential.
func resolveHTTPClient(client *http.Client, timeout time.Duration, token string) httpDoer {
	if client == nil {
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	if token == "" {
		return client
	}
	authed := *client
	authed.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
		Base:   client.Transport,
	}
	return &authed
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

// parseRetryAfter reads a Retry-After header given either in seconds or as an HTTP date.
func parseRetryAfter(raw string, now time.Time) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
