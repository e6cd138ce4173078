package stats

// Merge overlays the authoritative stats record on the dashboard record.
// Fields the authoritative payload did not carry keep their dashboard value, while
// eligibility and the next eligible date always come from the authoritative record.
func Merge(dashboard, authoritative Stats) Stats {
	out := dashboard

	if !authoritative.syntheticID {
		out.ID = authoritative.ID
		out.syntheticID = false
	}
	if authoritative.UserID != unknownUserID {
		out.UserID = authoritative.UserID
		if out.syntheticID {
			out.ID = recordIDPrefix + out.UserID
		}
	}
	overlay(&out.NextAppointmentDate, authoritative.NextAppointmentDate)
	overlay(&out.NextAppointmentID, authoritative.NextAppointmentID)
	overlay(&out.LastDonationDate, authoritative.LastDonationDate)
	overlay(&out.LastUpdated, authoritative.LastUpdated)

	if authoritative.totals&hasDonations != 0 {
		out.TotalDonations = authoritative.TotalDonations
	}
	if authoritative.totals&hasPoints != 0 {
		out.TotalPoints = authoritative.TotalPoints
	}
	if authoritative.totals&hasStreak != 0 {
		out.DonationStreak = authoritative.DonationStreak
	}
	out.totals |= authoritative.totals

	out.EligibleToDonate = nil
	if authoritative.EligibleToDonate != nil {
		out.EligibleToDonate = boolPtr(*authoritative.EligibleToDonate)
	}
	out.NextEligibleDate = authoritative.NextEligibleDate
	out.explicitEligibility = authoritative.explicitEligibility
	return out
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
