package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/bloodbuddy/internal/geo"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-s", "postgres", "-d", "postgres://x", "-k", "12", "-t", "3",
				"-lat", "12.5", "-lng", "-77.25", "-l", "debug", "-o", "-f", "bb.db", "-r", "redis://r"},
			expected: &Config{
				Storage: "postgres", DatabasePath: "bb.db", DatabaseDSN: "postgres://x", RedisURL: "redis://r",
				NearbyRadiusKm: 12, Location: &geo.Location{Lat: 12.5, Lng: -77.25},
				LocationTimeout: 3 * time.Second, LogLevel: "debug", OpenDialer: true,
			},
		},
		{
			name:     "no flags keeps values",
			args:     []string{"cmd"},
			expected: &Config{Storage: "sqlite", LocationTimeout: 0},
		},
		{name: "bad timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
		{name: "lat without lng", args: []string{"cmd", "-lat", "12"}, expectPanic: true},
		{name: "bad lng", args: []string{"cmd", "-lat", "12", "-lng", "east"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{Storage: "sqlite"}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
