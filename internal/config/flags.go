package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
)

var errPartialLocation = errors.New("both -lat and -lng are required")

// parseFlags populates Config fields from command-line flags:
//
//	-s string   storage backend: sqlite, postgres, redis or memory
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-r string   Redis URL
//	-k float    nearby radius in kilometers
//	-lat float  fixed latitude
//	-lng float  fixed longitude
//	-t int      location timeout (in seconds)
//	-l string   log level
//	-o          open the system dialer for calls
//
// os.Args is filtered to the flags known here first. Parse errors panic.
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:],
		[]string{"-s", "-f", "-d", "-r", "-k", "-lat", "-lng", "-t", "-l", "-o"},
		"-o")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "SQLite database file")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisURL, "r", cfg.RedisURL, "Redis URL")
	fs.Float64Var(&cfg.NearbyRadiusKm, "k", cfg.NearbyRadiusKm, "nearby radius (km)")
	lat := fs.String("lat", "", "fixed latitude")
	lng := fs.String("lng", "", "fixed longitude")
	timeout := fs.Int("t", int(cfg.LocationTimeout.Seconds()), "location timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.OpenDialer, "o", cfg.OpenDialer, "open the system dialer for calls")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LocationTimeout = time.Duration(*timeout) * time.Second

	if *lat == "" && *lng == "" {
		return
	}
	if *lat == "" || *lng == "" {
		panic(errPartialLocation)
	}
	la, err := strconv.ParseFloat(*lat, 64)
	if err != nil {
		panic(err)
	}
	ln, err := strconv.ParseFloat(*lng, 64)
	if err != nil {
		panic(err)
	}
	cfg.Location = &geo.Location{Lat: la, Lng: ln}
}
