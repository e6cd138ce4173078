package stats

import (
	"time"

	"github.com/preston-bernstein/donor-home-service/internal/timeutil"
)

// step tries to settle eligibility. It reports false when it has nothing to go on,
// handing the record to the next step unchanged.
type step func(s Stats, now time.Time) (Stats, bool)

// Enhance settles EligibleToDonate and NextEligibleDate.
func (r *Resolver) Enhance(s Stats) Stats {
	out, _ := r.Resolve(s)
	return out
}

// Resolve runs the eligibility cascade and reports which step settled the record:
// an explicit flag, then a next eligible date, then the last donation date plus
// the deferral interval, then the eligible default.
func (r *Resolver) Resolve(s Stats) (Stats, Source) {
	now := r.now()
	cascade := []struct {
		source Source
		run    step
	}{
		{SourceExplicit, fromExplicitFlag},
		{SourceNextEligibleDate, fromNextEligibleDate},
		{SourceLastDonation, r.fromLastDonation},
	}
	for _, c := range cascade {
		if out, ok := c.run(s, now); ok {
			return out, c.source
		}
	}
	return eligibleByDefault(s), SourceDefault
}

func fromExplicitFlag(s Stats, _ time.Time) (Stats, bool) {
	if !s.explicitEligibility {
		return s, false
	}
	if s.EligibleToDonate == nil {
		// The payload owned the key but the value was unreadable.
		s.EligibleToDonate = boolPtr(false)
	}
	return s, true
}

func fromNextEligibleDate(s Stats, now time.Time) (Stats, bool) {
	date, ok := timeutil.ParseTimestamp(s.NextEligibleDate)
	if !ok {
		return s, false
	}
	return settle(s, now, date, s.NextEligibleDate), true
}

func (r *Resolver) fromLastDonation(s Stats, now time.Time) (Stats, bool) {
	last, ok := timeutil.ParseTimestamp(s.LastDonationDate)
	if !ok {
		return s, false
	}
	next := last.AddDate(0, 0, r.deferralDays)
	return settle(s, now, next, timeutil.FormatTimestamp(next)), true
}

func eligibleByDefault(s Stats) Stats {
	s.EligibleToDonate = boolPtr(true)
	s.NextEligibleDate = ""
	return s
}

// settle marks the donor eligible once now has reached date; otherwise it keeps
// the date so clients can show when the donor may return.
func settle(s Stats, now, date time.Time, display string) Stats {
	eligible := !now.Before(date)
	s.EligibleToDonate = boolPtr(eligible)
	if eligible {
		s.NextEligibleDate = ""
	} else {
		s.NextEligibleDate = display
	}
	return s
}
