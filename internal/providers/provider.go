package providers

import (
	"context"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
)

// StatsProvider fetches raw stats payloads. Payloads are returned decoded but unnormalized;
// callers run them through the stats resolver.
type StatsProvider interface {
	// FetchDashboard returns the combined home bundle for a user.
	FetchDashboard(ctx context.Context, userID string) (any, error)
	// FetchStats returns the authoritative stats payload for a user.
	FetchStats(ctx context.Context, userID string) (any, error)
}

// AppointmentProvider fetches a user's upcoming appointments.
type AppointmentProvider interface {
	FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error)
}

// EmergencyProvider fetches active emergency blood requests.
type EmergencyProvider interface {
	FetchEmergencies(ctx context.Context) ([]emergencies.Request, error)
}

// CampaignProvider fetches donation campaigns.
type CampaignProvider interface {
	FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error)
	// FetchCampaigns returns every campaign and reports ErrNoList when no endpoint yields a list.
	FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	StatsProvider
	AppointmentProvider
	EmergencyProvider
	CampaignProvider
}
