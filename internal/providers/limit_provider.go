package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
)

const (
	defaultRatePerSecond = 10
	defaultBurst         = 5
)

// rateLimitedProvider wraps a DataProvider with a token bucket shared by every call.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that admits perSecond calls with the given burst.
// Calls block until a token is available or the context ends.
func NewRateLimitedProvider(next DataProvider, perSecond, burst int, logger *slog.Logger) DataProvider {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchDashboard(ctx context.Context, userID string) (any, error) {
	if err := p.wait(ctx, "dashboard"); err != nil {
		return nil, err
	}
	return p.next.FetchDashboard(ctx, userID)
}

func (p *rateLimitedProvider) FetchStats(ctx context.Context, userID string) (any, error) {
	if err := p.wait(ctx, "stats"); err != nil {
		return nil, err
	}
	return p.next.FetchStats(ctx, userID)
}

func (p *rateLimitedProvider) FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	if err := p.wait(ctx, "appointments"); err != nil {
		return nil, err
	}
	return p.next.FetchAppointments(ctx, userID)
}

func (p *rateLimitedProvider) FetchEmergencies(ctx context.Context) ([]emergencies.Request, error) {
	if err := p.wait(ctx, "emergencies"); err != nil {
		return nil, err
	}
	return p.next.FetchEmergencies(ctx)
}

func (p *rateLimitedProvider) FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	if err := p.wait(ctx, "featured_campaigns"); err != nil {
		return nil, err
	}
	return p.next.FetchFeaturedCampaigns(ctx)
}

func (p *rateLimitedProvider) FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	if err := p.wait(ctx, "campaigns"); err != nil {
		return nil, err
	}
	return p.next.FetchCampaigns(ctx)
}

func (p *rateLimitedProvider) wait(ctx context.Context, endpoint string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled",
			"endpoint", endpoint, "err", err)
		return err
	}
	return nil
}
