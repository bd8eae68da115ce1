package session

import "time"

// Config configures a Manager.
type Config struct {
	// IdleTimeout closes instances unused for this long.
	// Default: 30 minutes.
	IdleTimeout time.Duration

	// CleanupInterval is how often expired instances are collected.
	// Default: 30 seconds.
	CleanupInterval time.Duration

	// MaxInstances caps the number of live instances. When full, the least
	// recently used instance is closed to make room. Zero means no limit.
	MaxInstances int

	// MaxPerIP caps the live instances of one client address.
	// Zero means no limit.
	MaxPerIP int

	// EvictOnIPLimit closes the address's least recently used instance
	// instead of rejecting the new one.
	EvictOnIPLimit bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:     30 * time.Minute,
		CleanupInterval: 30 * time.Second,
		MaxInstances:    10000,
		MaxPerIP:        100,
		EvictOnIPLimit:  true,
	}
}

// withDefaults fills zero durations.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}
