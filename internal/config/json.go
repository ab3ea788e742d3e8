package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/dmitrijs2005/bloodbuddy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	Storage         string         `json:"storage"`
	DatabasePath    string         `json:"database_path"`
	DatabaseDSN     string         `json:"database_dsn"`
	RedisURL        string         `json:"redis_url"`
	NearbyRadiusKm  float64        `json:"nearby_radius_km"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	LocationTimeout timex.Duration `json:"location_timeout"`
	LogLevel        string         `json:"log_level"`
	OpenDialer      *bool          `json:"open_dialer"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. It panics
// on read or decode errors.
func parseJson(cfg *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Storage, jc.Storage)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisURL, jc.RedisURL)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.NearbyRadiusKm > 0 {
		cfg.NearbyRadiusKm = jc.NearbyRadiusKm
	}
	if jc.LocationTimeout.Duration > 0 {
		cfg.LocationTimeout = jc.LocationTimeout.Duration
	}
	if jc.OpenDialer != nil {
		cfg.OpenDialer = *jc.OpenDialer
	}
	if jc.Latitude != nil && jc.Longitude != nil {
		cfg.Location = &geo.Location{Lat: *jc.Latitude, Lng: *jc.Longitude}
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
