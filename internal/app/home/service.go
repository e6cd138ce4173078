package home

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	domainhome "github.com/preston-bernstein/donor-home-service/internal/domain/home"
	"github.com/preston-bernstein/donor-home-service/internal/domain/stats"
	"github.com/preston-bernstein/donor-home-service/internal/logging"
	"github.com/preston-bernstein/donor-home-service/internal/metrics"
	"github.com/preston-bernstein/donor-home-service/internal/payload"
	"github.com/preston-bernstein/donor-home-service/internal/providers"
)

// Provider is the upstream surface the aggregator reads from.
type Provider interface {
	providers.StatsProvider
	providers.AppointmentProvider
	providers.EmergencyProvider
}

// FeaturedSource serves featured campaigns, typically through a cache.
type FeaturedSource interface {
	Featured(ctx context.Context) ([]campaigns.Campaign, error)
}

// Service assembles the home payload for a user.
type Service struct {
	provider Provider
	featured FeaturedSource
	resolver *stats.Resolver
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewService constructs a Service. A nil resolver uses the default clock and deferral interval.
func NewService(provider Provider, featured FeaturedSource, resolver *stats.Resolver, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	if resolver == nil {
		resolver = stats.NewResolver()
	}
	return &Service{
		provider: provider,
		featured: featured,
		resolver: resolver,
		logger:   logger,
		recorder: recorder,
	}
}

// HomeData fetches the dashboard bundle and then the authoritative stats, merging the two.
// When the dashboard is unavailable the payload is rebuilt from the individual endpoints
// and marked degraded; the dashboard error is returned only if every one of them fails too.
func (s *Service) HomeData(ctx context.Context, userID string) (domainhome.Data, error) {
	logger := s.log(ctx, userID)

	dashboard, err := s.provider.FetchDashboard(ctx, userID)
	if err != nil {
		logging.Warn(logger, "dashboard fetch failed, rebuilding from individual endpoints", "err", err)
		return s.decompose(ctx, userID, err)
	}

	obj, _ := payload.Object(dashboard)
	base := s.resolver.Normalize(dashboardStats(obj))
	merged := s.mergeStats(ctx, userID, base)

	var (
		appts    []appointments.Appointment
		requests []emergencies.Request
		featured []campaigns.Campaign
	)
	embeddedAppts, hasAppts := embeddedList(obj, domainhome.AppointmentKeys, "appointments")
	embeddedRequests, hasRequests := embeddedList(obj, domainhome.EmergencyKeys, "emergencies")
	embeddedCampaigns, hasCampaigns := embeddedList(obj, domainhome.CampaignKeys, "campaigns")

	g, gctx := errgroup.WithContext(ctx)
	if hasAppts {
		appts = appointments.FromRecords(embeddedAppts)
	} else {
		g.Go(func() error {
			appts = s.optionalAppointments(gctx, userID)
			return nil
		})
	}
	if hasRequests {
		requests = emergencies.FromRecords(embeddedRequests)
	} else {
		g.Go(func() error {
			requests = s.optionalEmergencies(gctx, userID)
			return nil
		})
	}
	if hasCampaigns {
		featured = campaigns.FromRecords(embeddedCampaigns)
	} else {
		g.Go(func() error {
			featured = s.optionalFeatured(gctx, userID)
			return nil
		})
	}
	_ = g.Wait()

	return domainhome.NewData(merged, appts, requests, featured), nil
}

// Stats returns the authoritative stats record with eligibility settled. Upstream failures are returned.
func (s *Service) Stats(ctx context.Context, userID string) (stats.Stats, error) {
	raw, err := s.provider.FetchStats(ctx, userID)
	if err != nil {
		return stats.Stats{}, err
	}
	return s.resolve(ctx, userID, s.resolver.Normalize(raw)), nil
}

// Appointments returns a user's upcoming appointments.
func (s *Service) Appointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	list, err := s.provider.FetchAppointments(ctx, userID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []appointments.Appointment{}
	}
	return list, nil
}

// Emergencies returns active emergency requests.
func (s *Service) Emergencies(ctx context.Context) ([]emergencies.Request, error) {
	list, err := s.provider.FetchEmergencies(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []emergencies.Request{}
	}
	return list, nil
}

// Fallback returns the payload served when aggregation failed outright: the default
// record with eligibility settled, empty lists and the degraded flag set.
func (s *Service) Fallback() domainhome.Data {
	s.recorder.RecordHomeDegraded(metrics.ReasonFallback)
	data := domainhome.NewData(s.resolver.Enhance(s.resolver.Default()), nil, nil, nil)
	data.Degraded = true
	return data
}

// mergeStats fetches the authoritative record after the dashboard and overlays it on base.
// Eligibility always comes from the authoritative record; if it cannot be fetched the
// dashboard record is resolved on its own.
func (s *Service) mergeStats(ctx context.Context, userID string, base stats.Stats) stats.Stats {
	raw, err := s.provider.FetchStats(ctx, userID)
	if err != nil {
		logging.Warn(s.log(ctx, userID), "authoritative stats fetch failed, using dashboard stats", "err", err)
		return s.resolve(ctx, userID, base)
	}
	authoritative := s.resolve(ctx, userID, s.resolver.Normalize(raw))
	return stats.Merge(base, authoritative)
}

func (s *Service) resolve(ctx context.Context, userID string, record stats.Stats) stats.Stats {
	out, source := s.resolver.Resolve(record)
	s.recorder.RecordEligibilitySource(string(source))
	if logger := s.log(ctx, userID); logger != nil {
		logger.Debug("eligibility resolved", logging.FieldSource, string(source), "eligible", out.Eligible())
	}
	return out
}

// decompose fetches stats, appointments and emergencies concurrently and waits for all of them.
func (s *Service) decompose(ctx context.Context, userID string, dashboardErr error) (domainhome.Data, error) {
	var (
		record      stats.Stats
		statsErr    error
		appts       []appointments.Appointment
		apptsErr    error
		requests    []emergencies.Request
		requestsErr error
		featured    []campaigns.Campaign
	)

	var g errgroup.Group
	g.Go(func() error {
		raw, err := s.provider.FetchStats(ctx, userID)
		if err != nil {
			statsErr = err
			return nil
		}
		record = s.resolve(ctx, userID, s.resolver.Normalize(raw))
		return nil
	})
	g.Go(func() error {
		appts, apptsErr = s.provider.FetchAppointments(ctx, userID)
		return nil
	})
	g.Go(func() error {
		requests, requestsErr = s.provider.FetchEmergencies(ctx)
		return nil
	})
	g.Go(func() error {
		featured = s.optionalFeatured(ctx, userID)
		return nil
	})
	_ = g.Wait()

	if statsErr != nil && apptsErr != nil && requestsErr != nil {
		logging.Error(s.log(ctx, userID), "home data unavailable", dashboardErr)
		return domainhome.Data{}, dashboardErr
	}

	logger := s.log(ctx, userID)
	if statsErr != nil {
		logging.Warn(logger, "stats unavailable, serving default record", "err", statsErr)
		record = s.resolve(ctx, userID, s.resolver.Default())
	}
	if apptsErr != nil {
		logging.Warn(logger, "appointments unavailable", "err", apptsErr)
		appts = nil
	}
	if requestsErr != nil {
		logging.Warn(logger, "emergencies unavailable", "err", requestsErr)
		requests = nil
	}

	s.recorder.RecordHomeDegraded(metrics.ReasonPartial)
	data := domainhome.NewData(record, appts, requests, featured)
	data.Degraded = true
	return data, nil
}

func (s *Service) optionalAppointments(ctx context.Context, userID string) []appointments.Appointment {
	list, err := s.provider.FetchAppointments(ctx, userID)
	if err != nil {
		logging.Warn(s.log(ctx, userID), "appointments unavailable", "err", err)
		return nil
	}
	return list
}

func (s *Service) optionalEmergencies(ctx context.Context, userID string) []emergencies.Request {
	list, err := s.provider.FetchEmergencies(ctx)
	if err != nil {
		logging.Warn(s.log(ctx, userID), "emergencies unavailable", "err", err)
		return nil
	}
	return list
}

func (s *Service) optionalFeatured(ctx context.Context, userID string) []campaigns.Campaign {
	if s.featured == nil {
		return nil
	}
	list, err := s.featured.Featured(ctx)
	if err != nil {
		logging.Warn(s.log(ctx, userID), "featured campaigns unavailable", "err", err)
		return nil
	}
	return list
}

func (s *Service) log(ctx context.Context, userID string) *slog.Logger {
	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return nil
	}
	return logger.With(logging.FieldUserID, userID)
}

// dashboardStats returns the stats section of the dashboard bundle, or the bundle itself
// when the backend sent the stats flat.
func dashboardStats(obj map[string]any) any {
	if obj == nil {
		return nil
	}
	if section, ok := payload.Lookup(obj, stats.DashboardStatsKeys...); ok {
		return section
	}
	return obj
}

func embeddedList(obj map[string]any, keys []string, entity string) ([]any, bool) {
	if obj == nil {
		return nil, false
	}
	v, ok := payload.Lookup(obj, keys...)
	if !ok {
		return nil, false
	}
	return payload.UnwrapList(v, entity)
}
