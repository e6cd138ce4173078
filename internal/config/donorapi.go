package config

// DonorAPIConfig controls how we talk to the donor backend.
type DonorAPIConfig struct {
	BaseURL       string
	Token         string
	Timeout       Duration
	RatePerSecond int
	Burst         int
	RetryAttempts int
}

func loadDonorAPI() DonorAPIConfig {
	return DonorAPIConfig{
		BaseURL:       envOrDefault(envDonorAPIBaseURL, defaultDonorAPIBaseURL),
		Token:         envOrDefault(envDonorAPIToken, ""),
		Timeout:       durationEnvOrDefault(envDonorAPITimeout, defaultDonorAPITimeout),
		RatePerSecond: intEnvOrDefault(envDonorAPIRate, defaultDonorAPIRate),
		Burst:         intEnvOrDefault(envDonorAPIBurst, defaultDonorAPIBurst),
		RetryAttempts: intEnvOrDefault(envDonorAPIAttempts, defaultDonorAPIAttempts),
	}
}
