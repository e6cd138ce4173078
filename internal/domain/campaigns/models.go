package campaigns

import (
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/payload"
	"github.com/preston-bernstein/donor-home-service/internal/timeutil"
)

// FeaturedLimit caps the featured campaign list shown on the home screen.
const FeaturedLimit = 5

// ApprovalAccepted is the approval status string the backend uses for approved campaigns.
const ApprovalAccepted = "ACCEPTED"

// Campaign is the canonical blood-drive campaign shape exposed by the service.
type Campaign struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Organizer   string `json:"organizer,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Active      bool   `json:"active"`
	Approved    bool   `json:"approved"`
}

var (
	idAliases          = []string{"id", "campaignId", "campaign_id", "_id"}
	titleAliases       = []string{"title", "name"}
	descriptionAliases = []string{"description", "details"}
	locationAliases    = []string{"location", "address", "venue"}
	organizerAliases   = []string{"organizer", "organizerName", "hospitalName"}
	startAliases       = []string{"startTime", "start_time", "startDate", "start_date"}
	endAliases         = []string{"endTime", "end_time", "endDate", "end_date"}
	imageAliases       = []string{"imageUrl", "image_url", "image"}
	activeAliases      = []string{"isActive", "active"}
	approvalKeys       = []string{"isApproved", "approvalStatus"}
)

// FromRecord maps one raw backend campaign record.
func FromRecord(obj map[string]any) Campaign {
	return Campaign{
		ID:          payload.LookupString(obj, idAliases...),
		Title:       payload.LookupString(obj, titleAliases...),
		Description: payload.LookupString(obj, descriptionAliases...),
		Location:    payload.LookupString(obj, locationAliases...),
		Organizer:   payload.LookupString(obj, organizerAliases...),
		StartTime:   payload.LookupString(obj, startAliases...),
		EndTime:     payload.LookupString(obj, endAliases...),
		ImageURL:    payload.LookupString(obj, imageAliases...),
		Active:      isActive(obj),
		Approved:    isApproved(obj),
	}
}

// FromRecords maps every object in items, skipping non-object entries.
func FromRecords(items []any) []Campaign {
	records := payload.Records(items)
	out := make([]Campaign, 0, len(records))
	for _, obj := range records {
		out = append(out, FromRecord(obj))
	}
	return out
}

// isActive defaults to true when the backend omits the flag.
func isActive(obj map[string]any) bool {
	v, ok := payload.Lookup(obj, activeAliases...)
	if !ok {
		return true
	}
	active, ok := payload.Bool(v)
	return ok && active
}

// isApproved accepts a boolean true or the ACCEPTED status under either approval key.
func isApproved(obj map[string]any) bool {
	for _, key := range approvalKeys {
		switch v := obj[key].(type) {
		case bool:
			if v {
				return true
			}
		case string:
			if strings.TrimSpace(v) == ApprovalAccepted {
				return true
			}
		}
	}
	return false
}

// SelectFeatured keeps upcoming, active, approved campaigns ordered by start time.
// Campaigns with an unreadable start time are dropped.
func SelectFeatured(list []Campaign, now time.Time, limit int) []Campaign {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	type dated struct {
		campaign Campaign
		start    time.Time
	}
	upcoming := make([]dated, 0, len(list))
	for _, c := range list {
		if !c.Active || !c.Approved {
			continue
		}
		start, ok := timeutil.ParseTimestamp(c.StartTime)
		if !ok || !start.After(now) {
			continue
		}
		upcoming = append(upcoming, dated{campaign: c, start: start})
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].start.Before(upcoming[j].start)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	out := make([]Campaign, 0, len(upcoming))
	for _, d := range upcoming {
		out = append(out, d.campaign)
	}
	return out
}
