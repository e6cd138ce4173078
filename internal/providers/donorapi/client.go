package donorapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/payload"
	"github.com/preston-bernstein/donor-home-service/internal/providers"
)

// Config controls how the client reaches the donation backend.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches home data from the donation backend REST API.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a backend client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout, cfg.Token),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchDashboard returns the home bundle for a user. A {data: {...}} wrapper is removed.
func (c *Client) FetchDashboard(ctx context.Context, userID string) (any, error) {
	return c.fetchObject(ctx, withUser(dashboardPath, userID))
}

// FetchStats returns the authoritative stats payload for a user.
func (c *Client) FetchStats(ctx context.Context, userID string) (any, error) {
	return c.fetchObject(ctx, withUser(statsPath, userID))
}

// FetchAppointments returns upcoming appointments. An empty list is returned when the
// backend answered without a list anywhere in the chain.
func (c *Client) FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	items, err := c.optionalList(ctx, appointmentsChain, userID)
	if err != nil {
		return nil, err
	}
	return appointments.FromRecords(items), nil
}

// FetchEmergencies returns active emergency requests, empty when no endpoint yields a list.
func (c *Client) FetchEmergencies(ctx context.Context) ([]emergencies.Request, error) {
	items, err := c.optionalList(ctx, emergenciesChain, "")
	if err != nil {
		return nil, err
	}
	return emergencies.FromRecords(items), nil
}

// FetchFeaturedCampaigns returns featured campaigns. When neither featured endpoint yields a
// list, all campaigns are fetched and filtered down to upcoming approved ones.
func (c *Client) FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	items, found, answered, _ := c.walk(ctx, featuredChain, "")
	if found {
		return campaigns.FromRecords(items), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all, err := c.FetchCampaigns(ctx)
	if err == nil {
		return campaigns.SelectFeatured(all, c.now(), campaigns.FeaturedLimit), nil
	}
	if answered || errors.Is(err, providers.ErrNoList) {
		c.logDebug(ctx, "featured campaigns unavailable", featuredChain.name, "err", err)
		return []campaigns.Campaign{}, nil
	}
	return nil, err
}

// FetchCampaigns returns every campaign. It reports providers.ErrNoList when the backend
// answered but no list could be found.
func (c *Client) FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	items, found, answered, lastErr := c.walk(ctx, campaignsChain, "")
	if found {
		return campaigns.FromRecords(items), nil
	}
	if !answered && lastErr != nil {
		return nil, lastErr
	}
	return nil, providers.ErrNoList
}

func (c *Client) fetchObject(ctx context.Context, path string) (any, error) {
	body, err := c.getJSON(ctx, path)
	if err != nil {
		return nil, err
	}
	if obj := payload.UnwrapObject(body); obj != nil {
		return obj, nil
	}
	return body, nil
}

func (c *Client) optionalList(ctx context.Context, chain endpointChain, userID string) ([]any, error) {
	items, found, answered, lastErr := c.walk(ctx, chain, userID)
	if found {
		return items, nil
	}
	if answered {
		c.logDebug(ctx, "no list in any endpoint", chain.name)
		return []any{}, nil
	}
	return nil, lastErr
}

func (c *Client) getJSON(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: GET %s: %w", providerName, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    providerName + " rate limited",
		}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &providers.StatusError{
			Provider:   providerName,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	case resp.StatusCode == http.StatusNoContent:
		return nil, nil
	}

	body, err := payload.Decode(json.NewDecoder(resp.Body))
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: decode %s: %w", providerName, path, err)
	}
	return body, nil
}

func (c *Client) logDebug(ctx context.Context, msg, endpoint string, args ...any) {
	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, providerName), slog.String(logging.FieldEndpoint, endpoint))
	logger.DebugContext(ctx, msg, args...)
}

func withUser(path, userID string) string {
	return strings.ReplaceAll(path, userIDPlaceholder, url.PathEscape(userID))
}
