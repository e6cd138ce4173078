package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

// retryingProvider wraps a DataProvider with retry/backoff behavior and attempt metrics.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
// Rate-limited responses wait for the upstream Retry-After when one was sent; a hint longer
// than the maximum backoff ends the retries with the rate-limit error.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			exp := backoff.NewExponentialBackOff()
			exp.InitialInterval = initial
			exp.MaxInterval = maxBackoff
			exp.MaxElapsedTime = 0
			return exp
		},
	}
}

func (r *retryingProvider) FetchDashboard(ctx context.Context, userID string) (any, error) {
	return retry(ctx, r, "dashboard", func(ctx context.Context) (any, error) {
		return r.inner.FetchDashboard(ctx, userID)
	})
}

func (r *retryingProvider) FetchStats(ctx context.Context, userID string) (any, error) {
	return retry(ctx, r, "stats", func(ctx context.Context) (any, error) {
		return r.inner.FetchStats(ctx, userID)
	})
}

func (r *retryingProvider) FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	return retry(ctx, r, "appointments", func(ctx context.Context) ([]appointments.Appointment, error) {
		return r.inner.FetchAppointments(ctx, userID)
	})
}

func (r *retryingProvider) FetchEmergencies(ctx context.Context) ([]emergencies.Request, error) {
	return retry(ctx, r, "emergencies", r.inner.FetchEmergencies)
}

func (r *retryingProvider) FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	return retry(ctx, r, "featured_campaigns", r.inner.FetchFeaturedCampaigns)
}

func (r *retryingProvider) FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	return retry(ctx, r, "campaigns", r.inner.FetchCampaigns)
}

func retry[T any](ctx context.Context, r *retryingProvider, endpoint string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	if r.inner == nil {
		return result, ErrProviderUnavailable
	}

	policy := &retryAfterBackOff{BackOff: r.newBackOff()}
	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		val, err := fn(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			result = val
			return nil
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			if rlErr.RetryAfter > maxBackoff {
				return backoff.Permanent(err)
			}
			policy.retryAfter = rlErr.RetryAfter
		}
		// A deadline while the caller's context is still live is the per-attempt client timeout.
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return err
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"endpoint", endpoint,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
			"endpoint", endpoint,
			"attempts", attempt,
			"err", err,
		)
		var zero T
		return zero, err
	}
	return result, nil
}

// retryAfterBackOff prefers an upstream Retry-After hint over the wrapped policy for the next wait.
type retryAfterBackOff struct {
	backoff.BackOff
	retryAfter time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.retryAfter > 0 {
		next = min(b.retryAfter, maxBackoff)
		b.retryAfter = 0
	}
	return next
}
