package appointments

import (
	"strings"

	"github.com/preston-bernstein/donor-home-service/internal/payload"
)

// Status mirrors the appointment lifecycle states used by the app.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// Appointment is the canonical donation appointment shape.
type Appointment struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaignId,omitempty"`
	CampaignName string `json:"campaignName,omitempty"`
	Date         string `json:"date"`
	Status       Status `json:"status"`
	Location     string `json:"location,omitempty"`
}

var (
	idAliases       = []string{"id", "appointmentId", "appointment_id", "_id"}
	campaignAliases = []string{"campaignId", "campaign_id"}
	nameAliases     = []string{"campaignName", "campaign_name", "campaignTitle"}
	dateAliases     = []string{"appointmentDate", "appointment_date", "date", "scheduledAt", "scheduled_at"}
	statusAliases   = []string{"status", "appointmentStatus"}
	locationAliases = []string{"location", "address", "venue"}
)

// FromRecord maps one raw backend appointment record.
func FromRecord(obj map[string]any) Appointment {
	return Appointment{
		ID:           payload.LookupString(obj, idAliases...),
		CampaignID:   payload.LookupString(obj, campaignAliases...),
		CampaignName: payload.LookupString(obj, nameAliases...),
		Date:         payload.LookupString(obj, dateAliases...),
		Status:       mapStatus(payload.LookupString(obj, statusAliases...)),
		Location:     payload.LookupString(obj, locationAliases...),
	}
}

// FromRecords maps every object in items, skipping non-object entries.
func FromRecords(items []any) []Appointment {
	records := payload.Records(items)
	out := make([]Appointment, 0, len(records))
	for _, obj := range records {
		out = append(out, FromRecord(obj))
	}
	return out
}

func mapStatus(status string) Status {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "CONFIRMED", "BOOKED":
		return StatusConfirmed
	case "COMPLETED", "DONE", "ATTENDED":
		return StatusCompleted
	case "CANCELED", "CANCELLED":
		return StatusCanceled
	default:
		return StatusScheduled
	}
}
