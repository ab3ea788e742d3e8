package storage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Set BLOODBUDDY_TEST_REDIS_URL (e.g. redis://localhost:6379/15) to run
// against a live server.
func TestRedisStore_Contract(t *testing.T) {
	url := os.Getenv("BLOODBUDDY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("BLOODBUDDY_TEST_REDIS_URL not set")
	}

	s, err := OpenRedis(context.Background(), url, "bloodbuddy_test:")
	require.NoError(t, err)
	defer s.Close()

	runStoreContract(t, s)
}

func TestOpenRedis_BadURL(t *testing.T) {
	_, err := OpenRedis(context.Background(), "not a url", "")
	require.ErrorContains(t, err, "parse redis URL")
}
