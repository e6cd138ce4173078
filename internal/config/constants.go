package config

import "time"

const (
	envPort             = "PORT"
	envProvider         = "PROVIDER"
	envDeferralDays     = "DEFERRAL_DAYS"
	envCampaignRefresh  = "CAMPAIGN_REFRESH_INTERVAL"
	envCampaignCacheTTL = "CAMPAIGN_CACHE_TTL"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"

	envDonorAPIBaseURL  = "DONOR_API_BASE_URL"
	envDonorAPIToken    = "DONOR_API_TOKEN"
	envDonorAPITimeout  = "DONOR_API_TIMEOUT"
	envDonorAPIRate     = "DONOR_API_RATE_PER_SEC"
	envDonorAPIBurst    = "DONOR_API_BURST"
	envDonorAPIAttempts = "DONOR_API_RETRY_ATTEMPTS"

	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"

	defaultPort         = "4000"
	defaultProvider     = "fixture"
	defaultDeferralDays = 120
	// Featured campaigns change slowly; refresh well inside the cache TTL.
	defaultCampaignRefresh  = 5 * Duration(time.Minute)
	defaultCampaignCacheTTL = 15 * Duration(time.Minute)
	defaultMetricsPort      = "9090"
	defaultServiceName      = "donor-home-service"
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"

	defaultDonorAPIBaseURL  = "http://localhost:8080/api"
	defaultDonorAPITimeout  = 10 * Duration(time.Second)
	defaultDonorAPIRate     = 10
	defaultDonorAPIBurst    = 5
	defaultDonorAPIAttempts = 3
)
