package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	domainhome "github.com/preston-bernstein/donor-home-service/internal/domain/home"
	"github.com/preston-bernstein/donor-home-service/internal/domain/stats"
	"github.com/preston-bernstein/donor-home-service/internal/poller"
	"github.com/preston-bernstein/donor-home-service/internal/testutil"
)

type stubHome struct {
	data       domainhome.Data
	homeErr    error
	record     stats.Stats
	statsErr   error
	appts      []appointments.Appointment
	apptsErr   error
	requests   []emergencies.Request
	requestErr error

	lastUserID    string
	fallbackCalls int
}

func (s *stubHome) HomeData(ctx context.Context, userID string) (domainhome.Data, error) {
	_ = ctx
	s.lastUserID = userID
	return s.data, s.homeErr
}

func (s *stubHome) Fallback() domainhome.Data {
	s.fallbackCalls++
	data := domainhome.NewData(stats.NewResolver().Default(), nil, nil, nil)
	data.Degraded = true
	return data
}

func (s *stubHome) Stats(ctx context.Context, userID string) (stats.Stats, error) {
	_ = ctx
	s.lastUserID = userID
	return s.record, s.statsErr
}

func (s *stubHome) Appointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	_ = ctx
	s.lastUserID = userID
	return s.appts, s.apptsErr
}

func (s *stubHome) Emergencies(ctx context.Context) ([]emergencies.Request, error) {
	_ = ctx
	return s.requests, s.requestErr
}

type stubCampaigns struct {
	list []campaigns.Campaign
	err  error
}

func (s *stubCampaigns) Featured(ctx context.Context) ([]campaigns.Campaign, error) {
	_ = ctx
	return s.list, s.err
}

func newTestHandler(home *stubHome, camps *stubCampaigns, statusFn func() poller.Status) *Handler {
	if home == nil {
		home = &stubHome{}
	}
	if camps == nil {
		camps = &stubCampaigns{}
	}
	return NewHandler(home, camps, nil, statusFn)
}

func TestHealth(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := newTestHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	req = req.WithContext(ctx)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	for _, path := range []string{"/health", "/ready", "/users/u-1/home", "/campaigns/featured", "/emergencies"} {
		rr := testutil.Serve(h, http.MethodPost, path, nil)
		testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	}
}

func TestReady(t *testing.T) {
	t.Run("no status source", func(t *testing.T) {
		rr := testutil.Serve(newTestHandler(nil, nil, nil), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("ready", func(t *testing.T) {
		statusFn := func() poller.Status { return poller.Status{LastSuccess: time.Now()} }
		rr := testutil.Serve(newTestHandler(nil, nil, statusFn), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("failing", func(t *testing.T) {
		statusFn := func() poller.Status {
			return poller.Status{LastSuccess: time.Now(), ConsecutiveFailures: 5, LastError: "upstream down"}
		}
		rr := testutil.Serve(newTestHandler(nil, nil, statusFn), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		var resp map[string]string
		testutil.DecodeJSON(t, rr, &resp)
		if resp["error"] != "upstream down" {
			t.Fatalf("expected last error surfaced, got %q", resp["error"])
		}
	})

	t.Run("never refreshed", func(t *testing.T) {
		statusFn := func() poller.Status { return poller.Status{} }
		rr := testutil.Serve(newTestHandler(nil, nil, statusFn), http.MethodGet, "/ready", nil)
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		var resp map[string]string
		testutil.DecodeJSON(t, rr, &resp)
		if resp["error"] != "not ready" {
			t.Fatalf("expected generic message, got %q", resp["error"])
		}
	})
}

func TestHomeReturnsAggregatedData(t *testing.T) {
	record := stats.NewResolver().Default()
	record.UserID = "u-1"
	record.TotalDonations = 4
	home := &stubHome{data: domainhome.NewData(record, []appointments.Appointment{testutil.SampleAppointment("a-1")}, nil, nil)}
	h := newTestHandler(home, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/users/u-1/home", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainhome.Data
	testutil.DecodeJSON(t, rr, &resp)
	if home.lastUserID != "u-1" {
		t.Fatalf("expected user id passed through, got %q", home.lastUserID)
	}
	if resp.Stats.TotalDonations != 4 || len(resp.UpcomingAppointments) != 1 {
		t.Fatalf("unexpected payload %+v", resp)
	}
	if resp.Degraded {
		t.Fatal("expected healthy response to omit degraded")
	}
	if resp.EmergencyRequests == nil || resp.FeaturedCampaigns == nil {
		t.Fatal("expected empty lists rather than null")
	}
}

func TestHomeServesFallbackOnFailure(t *testing.T) {
	home := &stubHome{homeErr: errors.New("everything is down")}
	h := newTestHandler(home, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/users/u-1/home", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domainhome.Data
	testutil.DecodeJSON(t, rr, &resp)
	if !resp.Degraded {
		t.Fatal("expected degraded fallback payload")
	}
	if home.fallbackCalls != 1 {
		t.Fatalf("expected fallback to be requested once, got %d", home.fallbackCalls)
	}
}

func TestUserRoutesRejectInvalidIDs(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	for _, path := range []string{"/users/a%20b/home", "/users/a%20b/stats", "/users/%3Cscript%3E/appointments"} {
		rr := testutil.Serve(h, http.MethodGet, path, nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestStats(t *testing.T) {
	eligible := true
	record := stats.Stats{ID: "s-1", UserID: "u-1", TotalDonations: 2, EligibleToDonate: &eligible}
	h := newTestHandler(&stubHome{record: record}, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/users/u-1/stats", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp stats.Stats
	testutil.DecodeJSON(t, rr, &resp)
	if resp.ID != "s-1" || !resp.Eligible() {
		t.Fatalf("unexpected stats %+v", resp)
	}
}

func TestStatsUpstreamFailure(t *testing.T) {
	h := newTestHandler(&stubHome{statsErr: errors.New("boom")}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/users/u-1/stats", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := testutil.ServeRequest(h, req)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["requestId"] != "req-1" {
		t.Fatalf("expected request id in error body, got %+v", resp)
	}
}

func TestAppointments(t *testing.T) {
	home := &stubHome{appts: []appointments.Appointment{testutil.SampleAppointment("a-1"), testutil.SampleAppointment("a-2")}}
	rr := testutil.Serve(newTestHandler(home, nil, nil), http.MethodGet, "/users/u-9/appointments", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Appointments []appointments.Appointment `json:"appointments"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Appointments) != 2 || home.lastUserID != "u-9" {
		t.Fatalf("unexpected appointments response %+v", resp)
	}
}

func TestAppointmentsUpstreamTimeout(t *testing.T) {
	home := &stubHome{apptsErr: context.DeadlineExceeded}
	rr := testutil.Serve(newTestHandler(home, nil, nil), http.MethodGet, "/users/u-1/appointments", nil)
	testutil.AssertStatus(t, rr, http.StatusGatewayTimeout)
}

func TestFeaturedCampaigns(t *testing.T) {
	start := testutil.MustParseRFC3339("2024-05-01T10:00:00Z")
	camps := &stubCampaigns{list: []campaigns.Campaign{testutil.SampleCampaign("c-1", start)}}
	rr := testutil.Serve(newTestHandler(nil, camps, nil), http.MethodGet, "/campaigns/featured", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Campaigns []campaigns.Campaign `json:"campaigns"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Campaigns) != 1 || resp.Campaigns[0].ID != "c-1" {
		t.Fatalf("unexpected campaigns %+v", resp.Campaigns)
	}
}

func TestFeaturedCampaignsNeverNull(t *testing.T) {
	rr := testutil.Serve(newTestHandler(nil, &stubCampaigns{}, nil), http.MethodGet, "/campaigns/featured", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Body.String(); got != "{\"campaigns\":[]}\n" {
		t.Fatalf("expected empty list, got %s", got)
	}
}

func TestFeaturedCampaignsUpstreamFailure(t *testing.T) {
	camps := &stubCampaigns{err: errors.New("no list")}
	rr := testutil.Serve(newTestHandler(nil, camps, nil), http.MethodGet, "/campaigns/featured", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestEmergencies(t *testing.T) {
	home := &stubHome{requests: []emergencies.Request{testutil.SampleEmergency("e-1")}}
	rr := testutil.Serve(newTestHandler(home, nil, nil), http.MethodGet, "/emergencies", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Emergencies []emergencies.Request `json:"emergencies"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if len(resp.Emergencies) != 1 || resp.Emergencies[0].BloodType != "O-" {
		t.Fatalf("unexpected emergencies %+v", resp.Emergencies)
	}
}

func TestEmergenciesUpstreamFailure(t *testing.T) {
	home := &stubHome{requestErr: errors.New("down")}
	rr := testutil.Serve(newTestHandler(home, nil, nil), http.MethodGet, "/emergencies", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	rr := testutil.Serve(newTestHandler(nil, nil, nil), http.MethodGet, "/does-not-exist", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "not found" {
		t.Fatalf("unexpected body %+v", resp)
	}
}
