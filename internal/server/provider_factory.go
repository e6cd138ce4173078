package server

import (
	"log/slog"

	"github.com/preston-bernstein/donor-home-service/internal/config"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
	"github.com/preston-bernstein/donor-home-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build wraps the selected provider so every attempt, including retries, passes the limiter.
func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	base := selectProvider(cfg, f.logger)
	limited := providers.NewRateLimitedProvider(base, cfg.DonorAPI.RatePerSecond, cfg.DonorAPI.Burst, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), cfg.DonorAPI.RetryAttempts, 0)
}
