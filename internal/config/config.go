package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	DeferralDays    int
	CampaignRefresh Duration
	DonorAPI        DonorAPIConfig
	Cache           CacheConfig
	Metrics         MetricsConfig
	Log             LogConfig
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real environment values win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return fromEnv(), nil
}

func fromEnv() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		DeferralDays:    intEnvOrDefault(envDeferralDays, defaultDeferralDays),
		CampaignRefresh: durationEnvOrDefault(envCampaignRefresh, defaultCampaignRefresh),
		DonorAPI:        loadDonorAPI(),
		Cache:           loadCache(),
		Metrics:         loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}
