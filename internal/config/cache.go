package config

import (
	"strings"
	"time"
)

// Cache key strategies understood by the response cache.
const (
	CacheKeyRoute            = "route"
	CacheKeyRouteQuery       = "route_query"
	CacheKeyMethodRoute      = "method_route"
	CacheKeyMethodRouteQuery = "method_route_query"
)

// CacheConfig controls the Redis response cache in front of the listing
// pages.  Entries live for TTL at most and are dropped in bulk, by
// Prefix, whenever a venue, artist or show is written.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // upper-case HTTP methods eligible for caching
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int // larger responses are served but not stored
}

// LoadCacheConfig reads the CACHE_* variables.
func LoadCacheConfig() CacheConfig {
	c := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      map[string]bool{},
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  strings.ToLower(getenv("CACHE_KEY_STRATEGY", CacheKeyRouteQuery)),
		Prefix:       strings.TrimSuffix(getenv("CACHE_PREFIX", "fyyur:cache"), ":"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	for _, m := range splitList(getenv("CACHE_METHODS", "GET")) {
		c.Methods[strings.ToUpper(m)] = true
	}
	return c.normalize()
}

func (c CacheConfig) normalize() CacheConfig {
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	switch c.KeyStrategy {
	case CacheKeyRoute, CacheKeyRouteQuery, CacheKeyMethodRoute, CacheKeyMethodRouteQuery:
	default:
		c.KeyStrategy = CacheKeyRouteQuery
	}
	if c.MaxBodyBytes < 0 {
		c.MaxBodyBytes = 0
	}
	return c
}
