package testutil

import (
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
)

// SampleCampaign returns an active, approved campaign starting at start.
func SampleCampaign(id string, start time.Time) campaigns.Campaign {
	return campaigns.Campaign{
		ID:        id,
		Title:     "Campaign " + id,
		Location:  "City Hall",
		StartTime: start.UTC().Format(time.RFC3339),
		Active:    true,
		Approved:  true,
	}
}

// SampleAppointment returns a scheduled appointment with the provided id.
func SampleAppointment(id string) appointments.Appointment {
	return appointments.Appointment{
		ID:         id,
		CampaignID: "c-1",
		Date:       "2024-03-01T09:00:00.000Z",
		Status:     appointments.StatusScheduled,
		Location:   "City Hall",
	}
}

// SampleEmergency returns an urgent O- request with the provided id.
func SampleEmergency(id string) emergencies.Request {
	return emergencies.Request{
		ID:          id,
		BloodType:   "O-",
		Hospital:    "General",
		Urgency:     "HIGH",
		UnitsNeeded: 3,
	}
}

// DashboardPayload builds a decoded dashboard bundle with a stats section and embedded lists.
func DashboardPayload(userID string, stats map[string]any) map[string]any {
	if stats == nil {
		stats = map[string]any{}
	}
	if _, ok := stats["userId"]; !ok {
		stats["userId"] = userID
	}
	return map[string]any{
		"stats": stats,
		"upcomingAppointments": []any{
			map[string]any{"id": "a-1", "appointmentDate": "2024-03-01T09:00:00Z", "status": "confirmed"},
		},
		"emergencyRequests": map[string]any{
			"data": []any{
				map[string]any{"id": "e-1", "bloodType": "o-", "urgency": "high", "unitsNeeded": 2},
			},
		},
	}
}
