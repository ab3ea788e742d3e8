package config

import (
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
)

// Config holds runtime settings for the BloodBuddy CLI.
//
// Location, when set, is used instead of asking for coordinates.
type Config struct {
	Storage         string
	DatabasePath    string
	DatabaseDSN     string
	RedisURL        string
	NearbyRadiusKm  float64
	Location        *geo.Location
	LocationTimeout time.Duration
	LogLevel        string
	OpenDialer      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Storage = "sqlite"
	c.DatabasePath = "bloodbuddy.db"
	c.NearbyRadiusKm = 10
	c.LocationTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
