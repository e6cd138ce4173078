package campaigns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func at(days int) string {
	return now.AddDate(0, 0, days).Format(time.RFC3339)
}

func TestFromRecordAliasesAndDefaults(t *testing.T) {
	c := FromRecord(map[string]any{
		"_id":            "c-1",
		"name":           "City Hall Drive",
		"start_date":     "2024-07-01T09:00:00Z",
		"approvalStatus": "ACCEPTED",
	})
	assert.Equal(t, "c-1", c.ID)
	assert.Equal(t, "City Hall Drive", c.Title)
	assert.Equal(t, "2024-07-01T09:00:00Z", c.StartTime)
	assert.True(t, c.Active, "active defaults to true")
	assert.True(t, c.Approved)
}

func TestApprovalToleratesBothKeysAndShapes(t *testing.T) {
	cases := []struct {
		record map[string]any
		want   bool
	}{
		{map[string]any{"isApproved": true}, true},
		{map[string]any{"isApproved": "ACCEPTED"}, true},
		{map[string]any{"approvalStatus": true}, true},
		{map[string]any{"approvalStatus": "ACCEPTED"}, true},
		{map[string]any{"approvalStatus": "PENDING"}, false},
		{map[string]any{"isApproved": false, "approvalStatus": "ACCEPTED"}, true},
		{map[string]any{"isApproved": "accepted"}, false},
		{map[string]any{}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FromRecord(tc.record).Approved, "%v", tc.record)
	}
}

func TestActiveFlag(t *testing.T) {
	assert.False(t, FromRecord(map[string]any{"isActive": false}).Active)
	assert.True(t, FromRecord(map[string]any{"active": "true"}).Active)
	assert.False(t, FromRecord(map[string]any{"isActive": "nope"}).Active)
}

func TestFromRecordsSkipsNonObjects(t *testing.T) {
	got := FromRecords([]any{map[string]any{"id": "a"}, "junk", nil, map[string]any{"id": "b"}})
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].ID)
}

func TestSelectFeaturedFiltersSortsAndCaps(t *testing.T) {
	list := []Campaign{
		{ID: "past", StartTime: at(-1), Active: true, Approved: true},
		{ID: "inactive", StartTime: at(2), Active: false, Approved: true},
		{ID: "pending", StartTime: at(2), Active: true, Approved: false},
		{ID: "bad-date", StartTime: "someday", Active: true, Approved: true},
		{ID: "d7", StartTime: at(7), Active: true, Approved: true},
		{ID: "d3", StartTime: at(3), Active: true, Approved: true},
		{ID: "d1", StartTime: at(1), Active: true, Approved: true},
		{ID: "d5", StartTime: at(5), Active: true, Approved: true},
		{ID: "d2", StartTime: at(2), Active: true, Approved: true},
		{ID: "d4", StartTime: at(4), Active: true, Approved: true},
		{ID: "d6", StartTime: at(6), Active: true, Approved: true},
	}

	got := SelectFeatured(list, now, FeaturedLimit)
	require.Len(t, got, 5)
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"d1", "d2", "d3", "d4", "d5"}, ids)
}

func TestSelectFeaturedDefaultsLimit(t *testing.T) {
	list := make([]Campaign, 0, 8)
	for i := 1; i <= 8; i++ {
		list = append(list, Campaign{ID: at(i), StartTime: at(i), Active: true, Approved: true})
	}
	assert.Len(t, SelectFeatured(list, now, 0), FeaturedLimit)
	assert.Empty(t, SelectFeatured(nil, now, 3))
}
