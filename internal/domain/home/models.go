package home

import (
	"github.com/preston-bernstein/donor-home-service/internal/domain/appointments"
	"github.com/preston-bernstein/donor-home-service/internal/domain/campaigns"
	"github.com/preston-bernstein/donor-home-service/internal/domain/emergencies"
	"github.com/preston-bernstein/donor-home-service/internal/domain/stats"
)

// Keys the dashboard bundle uses for each embedded list.
var (
	AppointmentKeys = []string{"upcomingAppointments", "appointments"}
	EmergencyKeys   = []string{"emergencyRequests", "emergencies", "activeEmergencies"}
	CampaignKeys    = []string{"featuredCampaigns", "campaigns"}
)

// Data is the payload returned by /users/{id}/home.
type Data struct {
	Stats                stats.Stats                `json:"stats"`
	UpcomingAppointments []appointments.Appointment `json:"upcomingAppointments"`
	EmergencyRequests    []emergencies.Request      `json:"emergencyRequests"`
	FeaturedCampaigns    []campaigns.Campaign       `json:"featuredCampaigns"`
	Degraded             bool                       `json:"degraded,omitempty"`
}

// NewData builds a home payload, replacing nil lists with empty ones so clients never see null.
func NewData(s stats.Stats, appts []appointments.Appointment, requests []emergencies.Request, featured []campaigns.Campaign) Data {
	if appts == nil {
		appts = []appointments.Appointment{}
	}
	if requests == nil {
		requests = []emergencies.Request{}
	}
	if featured == nil {
		featured = []campaigns.Campaign{}
	}
	return Data{
		Stats:                s,
		UpcomingAppointments: appts,
		EmergencyRequests:    requests,
		FeaturedCampaigns:    featured,
	}
}
