package stats

// Backend payloads name the same field several ways. Each table lists aliases
// in precedence order; later entries are fallbacks and never override.
var (
	userIDAliases              = []string{"userId", "user_id", "id"}
	recordIDAliases            = []string{"id", "statsId", "stats_id"}
	nextAppointmentDateAliases = []string{"nextAppointmentDate", "next_appointment_date"}
	nextAppointmentIDAliases   = []string{"nextAppointmentId", "next_appointment_id"}
	totalDonationsAliases      = []string{"totalDonations"}
	totalPointsAliases         = []string{"totalPoints"}
	donationStreakAliases      = []string{"donationStreak", "streak"}
	lastDonationDateAliases    = []string{"lastDonationDate", "last_donation_date"}
	eligibilityAliases         = []string{"eligibleToDonate", "eligible"}
	nextEligibleAliases        = []string{"nextEligibleDate", "nextEligible"}
	lastUpdatedAliases         = []string{"lastUpdated", "updatedAt"}
)

// Dashboard bundles carry the stats object under one of these keys.
var DashboardStatsKeys = []string{"stats", "userStats", "user_stats"}

const (
	defaultRecordID = "default"
	unknownUserID   = "unknown"
	recordIDPrefix  = "home-stats-"
)
