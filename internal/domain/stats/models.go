package stats

// Stats is the canonical donor statistics record served to clients.
// EligibleToDonate stays nil until the record has been run through a Resolver.
type Stats struct {
	ID                  string `json:"id"`
	UserID              string `json:"userId"`
	NextAppointmentDate string `json:"nextAppointmentDate,omitempty"`
	NextAppointmentID   string `json:"nextAppointmentId,omitempty"`
	TotalDonations      int    `json:"totalDonations"`
	TotalPoints         int    `json:"totalPoints"`
	DonationStreak      int    `json:"donationStreak"`
	LastDonationDate    string `json:"lastDonationDate,omitempty"`
	EligibleToDonate    *bool  `json:"eligibleToDonate,omitempty"`
	NextEligibleDate    string `json:"nextEligibleDate,omitempty"`
	LastUpdated         string `json:"lastUpdated"`

	// explicitEligibility is set when the source payload owned an eligibility
	// property, even a false or null one.
	explicitEligibility bool
	syntheticID         bool
	// totals marks which of the count fields the source payload carried.
	totals              totalFields
}

type totalFields uint8

const (
	hasDonations totalFields = 1 << iota
	hasPoints
	hasStreak
)

// Source names the cascade step that settled a record's eligibility.
type Source string

const (
	SourceExplicit         Source = "explicit"
	SourceNextEligibleDate Source = "next_eligible_date"
	SourceLastDonation     Source = "last_donation"
	SourceDefault          Source = "default"
)

// Eligible reports the resolved flag; unresolved records read as not eligible.
func (s Stats) Eligible() bool {
	return s.EligibleToDonate != nil && *s.EligibleToDonate
}

// Resolved reports whether eligibility has been settled to a definite value.
func (s Stats) Resolved() bool {
	return s.EligibleToDonate != nil
}

// ExplicitEligibility reports whether the source payload carried its own flag.
func (s Stats) ExplicitEligibility() bool {
	return s.explicitEligibility
}

func boolPtr(v bool) *bool {
	return &v
}
