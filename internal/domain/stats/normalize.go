package stats

import (
	"math"
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/payload"
	"github.com/preston-bernstein/donor-home-service/internal/timeutil"
)

// DefaultDeferralDays is the whole-blood deferral interval between donations.
const DefaultDeferralDays = 120

// Resolver normalizes raw stats payloads and settles donor eligibility.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	now          func() time.Time
	deferralDays int
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithClock injects the time source used for eligibility decisions.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDeferralDays overrides the donation deferral interval. Non-positive values are ignored.
func WithDeferralDays(days int) Option {
	return func(r *Resolver) {
		if days > 0 {
			r.deferralDays = days
		}
	}
}

// NewResolver constructs a Resolver using the wall clock and the default deferral interval.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		now:          time.Now,
		deferralDays: DefaultDeferralDays,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DeferralDays returns the configured deferral interval.
func (r *Resolver) DeferralDays() int {
	return r.deferralDays
}

// Default returns the record used when no usable payload exists.
func (r *Resolver) Default() Stats {
	return Stats{
		ID:               defaultRecordID,
		UserID:           unknownUserID,
		EligibleToDonate: boolPtr(true),
		LastUpdated:      timeutil.FormatTimestamp(r.now()),
		syntheticID:      true,
	}
}

// Normalize maps a raw stats payload onto the canonical record. It never fails:
// anything that is not a JSON object yields the default record.
func (r *Resolver) Normalize(raw any) Stats {
	obj, ok := payload.Object(raw)
	if !ok {
		return r.Default()
	}

	userID := payload.LookupString(obj, userIDAliases...)
	if userID == "" {
		userID = unknownUserID
	}
	id := payload.LookupString(obj, recordIDAliases...)
	synthetic := id == ""
	if synthetic {
		id = recordIDPrefix + userID
	}

	s := Stats{
		ID:                  id,
		UserID:              userID,
		NextAppointmentDate: payload.LookupString(obj, nextAppointmentDateAliases...),
		NextAppointmentID:   payload.LookupString(obj, nextAppointmentIDAliases...),
		TotalDonations:      count(obj, totalDonationsAliases),
		TotalPoints:         count(obj, totalPointsAliases),
		DonationStreak:      count(obj, donationStreakAliases),
		LastDonationDate:    payload.LookupString(obj, lastDonationDateAliases...),
		NextEligibleDate:    payload.LookupString(obj, nextEligibleAliases...),
		LastUpdated:         r.lastUpdated(obj),
		explicitEligibility: payload.Has(obj, eligibilityAliases...),
		syntheticID:         synthetic,
		totals:              presentTotals(obj),
	}
	if eligible, ok := eligibilityFlag(obj); ok {
		s.EligibleToDonate = boolPtr(eligible)
	}
	return s
}

// eligibilityFlag returns the first eligibility alias holding a readable boolean.
// An unreadable value does not hide a readable fallback alias.
func eligibilityFlag(obj map[string]any) (bool, bool) {
	for _, key := range eligibilityAliases {
		v, ok := payload.Lookup(obj, key)
		if !ok {
			continue
		}
		if eligible, ok := payload.Bool(v); ok {
			return eligible, true
		}
	}
	return false, false
}

func presentTotals(obj map[string]any) totalFields {
	var t totalFields
	if _, ok := payload.Lookup(obj, totalDonationsAliases...); ok {
		t |= hasDonations
	}
	if _, ok := payload.Lookup(obj, totalPointsAliases...); ok {
		t |= hasPoints
	}
	if _, ok := payload.Lookup(obj, donationStreakAliases...); ok {
		t |= hasStreak
	}
	return t
}

func (r *Resolver) lastUpdated(obj map[string]any) string {
	if v := payload.LookupString(obj, lastUpdatedAliases...); v != "" {
		if _, ok := timeutil.ParseTimestamp(v); ok {
			return v
		}
	}
	return timeutil.FormatTimestamp(r.now())
}

// count reads a non-negative whole number; missing, invalid and negative input reads as 0.
func count(obj map[string]any, aliases []string) int {
	v, _ := payload.Lookup(obj, aliases...)
	f, ok := payload.Number(v)
	if !ok || f <= 0 {
		return 0
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}
