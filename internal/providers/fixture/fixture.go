package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	"github.com/preston-bernstein/donor-home-service/internal/timeutil"
)

// Provider returns deterministic donor data useful for local testing and bootstrapping.
// Payloads deliberately mix the field spellings the real backend is known to send.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchDashboard returns a home bundle with a snake_case stats section and embedded lists.
func (p *Provider) FetchDashboard(ctx context.Context, userID string) (any, error) {
	_ = ctx
	now := p.now().UTC()
	return map[string]any{
		"stats": map[string]any{
			"user_id":               userID,
			"stats_id":              "dash-" + userID,
			"totalDonations":        "4",
			"totalPoints":           400,
			"streak":                2,
			"last_donation_date":    timeutil.FormatDate(now.AddDate(0, 0, -45)),
			"next_appointment_date": timeutil.FormatTimestamp(now.AddDate(0, 0, 10)),
			"next_appointment_id":   "fixture-appt-1",
		},
		"upcomingAppointments": map[string]any{
			"data": []any{p.appointmentRecord(now)},
		},
		"emergencies": p.emergencyRecords(now),
	}, nil
}

// FetchStats returns the authoritative stats record for a user.
func (p *Provider) FetchStats(ctx context.Context, userID string) (any, error) {
	_ = ctx
	now := p.now().UTC()
	return map[string]any{
		"userId":           userID,
		"id":               "stats-" + userID,
		"totalDonations":   4,
		"totalPoints":      420,
		"donationStreak":   2,
		"lastDonationDate": timeutil.FormatDate(now.AddDate(0, 0, -45)),
		"updatedAt":        timeutil.FormatTimestamp(now.Add(-time.Hour)),
	}, nil
}

// FetchAppointments returns the fixture user's single upcoming appointment.
func (p *Provider) FetchAppointments(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	_ = ctx
	_ = userID
	return appointments.FromRecords([]any{p.appointmentRecord(p.now().UTC())}), nil
}

// FetchEmergencies returns a deterministic set of emergency requests.
func (p *Provider) FetchEmergencies(ctx context.Context) ([]emergencies.Request, error) {
	_ = ctx
	return emergencies.FromRecords(p.emergencyRecords(p.now().UTC())), nil
}

// FetchFeaturedCampaigns filters the fixture campaign list the same way the backend fallback does.
func (p *Provider) FetchFeaturedCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	all, err := p.FetchCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return campaigns.SelectFeatured(all, p.now(), campaigns.FeaturedLimit), nil
}

// FetchCampaigns returns a deterministic set of campaigns, including ones that never feature.
func (p *Provider) FetchCampaigns(ctx context.Context) ([]campaigns.Campaign, error) {
	_ = ctx
	start := p.now().UTC().Truncate(time.Hour)
	records := []any{
		map[string]any{
			"id":         "fixture-campaign-1",
			"title":      "Downtown Blood Drive",
			"location":   "City Hall",
			"organizer":  "Red Cross",
			"startTime":  timeutil.FormatTimestamp(start.Add(48 * time.Hour)),
			"endTime":    timeutil.FormatTimestamp(start.Add(56 * time.Hour)),
			"isApproved": true,
		},
		map[string]any{
			"campaignId":     "fixture-campaign-2",
			"name":           "Campus Donor Day",
			"address":        "Student Union",
			"start_date":     timeutil.FormatTimestamp(start.Add(24 * time.Hour)),
			"approvalStatus": campaigns.ApprovalAccepted,
			"image_url":      "https://example.org/campus.png",
		},
		map[string]any{
			"id":             "fixture-campaign-3",
			"title":          "Pending Approval Drive",
			"startTime":      timeutil.FormatTimestamp(start.Add(72 * time.Hour)),
			"approvalStatus": "PENDING",
		},
		map[string]any{
			"id":         "fixture-campaign-4",
			"title":      "Last Month's Drive",
			"startTime":  timeutil.FormatTimestamp(start.AddDate(0, -1, 0)),
			"isApproved": true,
		},
	}
	return campaigns.FromRecords(records), nil
}

func (p *Provider) appointmentRecord(now time.Time) map[string]any {
	return map[string]any{
		"_id":             "fixture-appt-1",
		"campaignId":      "fixture-campaign-1",
		"campaignName":    "Downtown Blood Drive",
		"appointmentDate": timeutil.FormatTimestamp(now.AddDate(0, 0, 10)),
		"status":          "booked",
		"location":        "City Hall",
	}
}

func (p *Provider) emergencyRecords(now time.Time) []any {
	return []any{
		map[string]any{
			"id":          "fixture-emergency-1",
			"bloodType":   "o-",
			"hospital":    "General Hospital",
			"urgency":     "critical",
			"unitsNeeded": 6,
			"createdAt":   timeutil.FormatTimestamp(now.Add(-2 * time.Hour)),
		},
		map[string]any{
			"id":           "fixture-emergency-2",
			"blood_type":   "A+",
			"hospitalName": "St. Mary's",
			"quantity":     "2",
		},
	}
}
