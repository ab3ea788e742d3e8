// Package config loads runtime configuration for the BloodBuddy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "storage": "postgres",
//	  "database_dsn": "postgres://bb:bb@localhost:5432/bloodbuddy",
//	  "nearby_radius_km": 10,
//	  "latitude": 12.9716,
//	  "longitude": 77.5946,
//	  "location_timeout": "10s",
//	  "log_level": "info",
//	  "open_dialer": true
//	}
//
// This package does not read environment variables.
package config
