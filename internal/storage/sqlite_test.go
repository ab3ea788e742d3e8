package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) (*SQLStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "bloodbuddy.db")
	s, err := OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLiteStore_Contract(t *testing.T) {
	s, _ := openTestSQLite(t)
	runStoreContract(t, s)
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	defer s.Close()
	runStoreContract(t, s)
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTestSQLite(t)
	require.NoError(t, s.Set(ctx, "bloodbuddy_users", []byte(`[]`)))
	require.NoError(t, s.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err, "migrations must be idempotent on reopen")
	defer s2.Close()

	v, err := s2.Get(ctx, "bloodbuddy_users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
}

func TestSQLiteStore_ClosedDBErrorsWrapped(t *testing.T) {
	s, _ := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, s.Close())

	_, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	err = s.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")

	err = s.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")
}

func TestOpenSQLite_MigrationErrorClosesDB(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	}

	_, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	require.ErrorContains(t, err, "migrate sqlite: boom")
}
