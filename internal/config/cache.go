package config

// CacheConfig controls where featured campaigns are cached.
type CacheConfig struct {
	TTL   Duration
	Redis RedisConfig
}

// RedisConfig points at a Redis instance. An empty Addr selects the in-memory cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

func loadCache() CacheConfig {
	return CacheConfig{
		TTL: durationEnvOrDefault(envCampaignCacheTTL, defaultCampaignCacheTTL),
		Redis: RedisConfig{
			Addr:     envOrDefault(envRedisAddr, ""),
			Password: envOrDefault(envRedisPassword, ""),
			DB:       intEnvOrDefault(envRedisDB, 0),
		},
	}
}
