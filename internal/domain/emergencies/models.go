package emergencies

import (
	"strings"

	"github.com/preston-bernstein/donor-home-service/internal/payload"
)

// Request is an open emergency blood request shown to donors.
type Request struct {
	ID          string `json:"id"`
	BloodType   string `json:"bloodType"`
	Hospital    string `json:"hospital,omitempty"`
	Urgency     string `json:"urgency"`
	UnitsNeeded int    `json:"unitsNeeded"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

const defaultUrgency = "NORMAL"

var (
	idAliases        = []string{"id", "requestId", "request_id", "_id"}
	bloodTypeAliases = []string{"bloodType", "blood_type", "bloodGroup"}
	hospitalAliases  = []string{"hospital", "hospitalName", "hospital_name", "location"}
	urgencyAliases   = []string{"urgency", "urgencyLevel", "priority"}
	unitsAliases     = []string{"unitsNeeded", "units_needed", "quantity"}
	createdAliases   = []string{"createdAt", "created_at"}
)

// FromRecord maps one raw backend emergency request.
func FromRecord(obj map[string]any) Request {
	urgency := strings.ToUpper(payload.LookupString(obj, urgencyAliases...))
	if urgency == "" {
		urgency = defaultUrgency
	}
	units := 0
	if v, ok := payload.Lookup(obj, unitsAliases...); ok {
		if f, ok := payload.Number(v); ok && f > 0 {
			units = int(f)
		}
	}
	return Request{
		ID:          payload.LookupString(obj, idAliases...),
		BloodType:   strings.ToUpper(payload.LookupString(obj, bloodTypeAliases...)),
		Hospital:    payload.LookupString(obj, hospitalAliases...),
		Urgency:     urgency,
		UnitsNeeded: units,
		CreatedAt:   payload.LookupString(obj, createdAliases...),
	}
}

// FromRecords maps every object in items, skipping non-object entries.
func FromRecords(items []any) []Request {
	records := payload.Records(items)
	out := make([]Request, 0, len(records))
	for _, obj := range records {
		out = append(out, FromRecord(obj))
	}
	return out
}
