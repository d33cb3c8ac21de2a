package config

import "time"

// CacheConfig defines settings for the watchlist response cache. When
// Enabled is false or no Redis client is available, caching is disabled and
// every list request hits the database. TTL bounds staleness for entries
// that miss an invalidation (e.g. Redis restarted between write and read).
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: envBool("CACHE_ENABLED", true),
        TTL:     envDur("CACHE_TTL", 30*time.Second),
        Prefix:  envStr("CACHE_PREFIX", "watchlist"),
    }
}

func envDur(k string, d time.Duration) time.Duration {
    v := envStr(k, "")
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
