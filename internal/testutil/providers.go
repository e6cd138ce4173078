package testutil

import (
	"context"
	"sync"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
)

// Endpoint names recorded by StubProvider.
const (
	EndpointDashboard    = "dashboard"
	EndpointStats        = "stats"
	EndpointAppointments = "appointments"
	EndpointEmergencies  = "emergencies"
	EndpointFeatured     = "featured"
	EndpointCampaigns    = "campaigns"
)

// StubProvider is a configurable data provider double. It is safe for concurrent use
// and records the order in which endpoints were called.
type StubProvider struct {
	Dashboard       any
	DashboardErr    error
	Stats           any
	StatsErr        error
	Appointments    []appointments.Appointment
	AppointmentsErr error
	Emergencies     []emergencies.Request
	EmergenciesErr  error
	Featured        []campaigns.Campaign
	FeaturedErr     error
	Campaigns       []campaigns.Campaign
	CampaignsErr    error

	// Notify, when set, is closed on the first call to any endpoint.
	Notify chan struct{}

	mu    sync.Mutex
	calls []string
}

// FailingProvider returns a StubProvider whose every endpoint fails with err.
func FailingProvider(err error) *StubProvider {
	return &StubProvider{
		DashboardErr:    err,
		StatsErr:        err,
		AppointmentsErr: err,
		EmergenciesErr:  err,
		FeaturedErr:     err,
		CampaignsErr:    err,
	}
}

func (s *StubProvider) FetchDashboard(ctx context.Context, userID string) (any, error) {
	s.record(EndpointDashboard)
	return s.Dashboard, s.DashboardErr
}

func (s *StubProvider) FetchStats(ctx context.Context, userID string) (any, error) {
	s.record(EndpointStats)
	return s.Stats, s.StatsErr
}

func (s *StubProvider) FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	s.record(EndpointAppointments)
	return s.Appointments, s.AppointmentsErr
}

func (s *StubProvider) FetchEmergencies(ctx context.Context) ([]emergencies.Request, error) {
	s.record(EndpointEmergencies)
	return s.Emergencies, s.EmergenciesErr
}

func (s *StubProvider) FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	s.record(EndpointFeatured)
	return s.Featured, s.FeaturedErr
}

func (s *StubProvider) FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	s.record(EndpointCampaigns)
	return s.Campaigns, s.CampaignsErr
}

// Calls returns how many times the endpoint was called.
func (s *StubProvider) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == endpoint {
			n++
		}
	}
	return n
}

// CallOrder returns the endpoints in the order they were called.
func (s *StubProvider) CallOrder() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *StubProvider) record(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, endpoint)
	if s.Notify != nil && len(s.calls) == 1 {
		close(s.Notify)
	}
}
